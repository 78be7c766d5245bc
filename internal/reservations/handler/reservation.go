package handler

import (
	"encoding/json"
	"net/http"

	"tigminoo/internal/reservations/service"
	"tigminoo/internal/reservations/validator"
	apperrors "tigminoo/pkg/errors"
	httputil "tigminoo/pkg/http"
	"tigminoo/pkg/logger"
	"tigminoo/pkg/middleware"
	"tigminoo/pkg/model"
	"tigminoo/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	tokens  *token.Manager
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, tokens *token.Manager, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

type confirmPaymentInput struct {
	ReservationID string `json:"reservation_id"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok || claims.Role != model.RoleClient {
		h.writeErr(w, "Create", apperrors.Forbidden("Only clients can create reservations"))
		return
	}

	var input validator.CreateReservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeErr(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	reservation, err := h.service.Create(r.Context(), claims.ID, &input)
	if err != nil {
		h.writeErr(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ReservationHandler) ListByClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	clientID := ps.ByName("id")
	if !ok || claims.Role != model.RoleClient || claims.ID != clientID {
		h.writeErr(w, "ListByClient", apperrors.Forbidden("Access denied"))
		return
	}

	reservations, err := h.service.ListByClient(r.Context(), clientID)
	if err != nil {
		h.writeErr(w, "ListByClient", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByClient", "error", err)
	}
}

func (h *ReservationHandler) ReservedDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ranges, err := h.service.ReservedDates(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "ReservedDates", err)
		return
	}

	if err := httputil.WriteSuccess(w, ranges); err != nil {
		h.log.Error("failed to write success response", "handler", "ReservedDates", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok || claims.Role != model.RoleClient {
		h.writeErr(w, "Cancel", apperrors.Forbidden("Only clients can cancel reservations"))
		return
	}

	reservation, err := h.service.Cancel(r.Context(), claims.ID, ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *ReservationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input confirmPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeErr(w, "ConfirmPayment", apperrors.InvalidInput("Invalid request body"))
		return
	}
	if input.ReservationID == "" {
		h.writeErr(w, "ConfirmPayment", apperrors.InvalidInput("reservation_id is required"))
		return
	}

	reservation, err := h.service.ConfirmPayment(r.Context(), input.ReservationID)
	if err != nil {
		h.writeErr(w, "ConfirmPayment", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmPayment", "error", err)
	}
}

func (h *ReservationHandler) writeErr(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", middleware.Authenticated(h.tokens, h.Create))
	router.GET("/api/v1/reservations/client/:id", middleware.Authenticated(h.tokens, h.ListByClient))
	router.GET("/api/v1/reservations/listing/:id", h.ReservedDates)
	router.PUT("/api/v1/reservations/id/:id/cancel", middleware.Authenticated(h.tokens, h.Cancel))
	router.POST("/api/v1/payments", middleware.Authenticated(h.tokens, h.ConfirmPayment))
}
