package handler

import (
	"encoding/json"
	"net/http"

	"tigminoo/internal/accounts/service"
	"tigminoo/internal/accounts/validator"
	httputil "tigminoo/pkg/http"
	"tigminoo/pkg/logger"
	"tigminoo/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AccountHandler struct {
	service service.AccountService
	log     *logger.Logger
}

func NewAccountHandler(service service.AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log,
	}
}

type loginResponse struct {
	Token string        `json:"token"`
	User  model.Profile `json:"user"`
}

func (h *AccountHandler) RegisterClient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.register(w, r, model.RoleClient)
}

func (h *AccountHandler) RegisterHost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.register(w, r, model.RoleHost)
}

func (h *AccountHandler) register(w http.ResponseWriter, r *http.Request, role model.Role) {
	var input validator.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "register", "error", writeErr)
		}
		return
	}

	account, err := h.service.Register(r.Context(), role, &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "register", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, account.Profile()); err != nil {
		h.log.Error("failed to write created response", "handler", "register", "error", err)
	}
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input validator.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "error", writeErr)
		}
		return
	}

	signed, profile, err := h.service.Login(r.Context(), &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, loginResponse{Token: signed, User: profile}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *AccountHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/register/client", h.RegisterClient)
	router.POST("/api/v1/register/host", h.RegisterHost)
	router.POST("/api/v1/login", h.Login)
}
