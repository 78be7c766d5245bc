package handler

import (
	"encoding/json"
	"net/http"

	"tigminoo/internal/reviews/service"
	"tigminoo/internal/reviews/validator"
	apperrors "tigminoo/pkg/errors"
	httputil "tigminoo/pkg/http"
	"tigminoo/pkg/logger"
	"tigminoo/pkg/middleware"
	"tigminoo/pkg/model"
	"tigminoo/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type ReviewHandler struct {
	service service.ReviewService
	tokens  *token.Manager
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, tokens *token.Manager, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok || claims.Role != model.RoleClient {
		h.writeErr(w, "Create", apperrors.Forbidden("Only clients can post reviews"))
		return
	}

	var input validator.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeErr(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	review, err := h.service.Add(r.Context(), claims.ID, &input)
	if err != nil {
		h.writeErr(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ReviewHandler) ListByListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviews, err := h.service.ListByListing(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "ListByListing", err)
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByListing", "error", err)
	}
}

func (h *ReviewHandler) writeErr(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reviews", middleware.Authenticated(h.tokens, h.Create))
	router.GET("/api/v1/reviews/listing/:id", h.ListByListing)
}
