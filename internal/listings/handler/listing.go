package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tigminoo/internal/listings/service"
	"tigminoo/internal/listings/validator"
	apperrors "tigminoo/pkg/errors"
	httputil "tigminoo/pkg/http"
	"tigminoo/pkg/logger"
	"tigminoo/pkg/middleware"
	"tigminoo/pkg/model"
	"tigminoo/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type ListingHandler struct {
	service service.ListingService
	tokens  *token.Manager
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, tokens *token.Manager, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok || claims.Role != model.RoleHost {
		h.writeErr(w, "Create", apperrors.Forbidden("Only hosts can create listings"))
		return
	}

	var input validator.CreateListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeErr(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	listing, err := h.service.Create(r.Context(), claims.ID, &input)
	if err != nil {
		h.writeErr(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, listing); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	filter := model.ListingFilter{
		City:     query.Get("city"),
		Category: query.Get("category"),
	}

	if s := query.Get("max_price"); s != "" {
		maxPrice, err := strconv.ParseFloat(s, 64)
		if err != nil {
			h.writeErr(w, "Search", apperrors.InvalidInput("invalid max_price parameter: "+s))
			return
		}
		filter.MaxPrice = maxPrice
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeErr(w, "Search", err)
		return
	}

	listings, total, err := h.service.Search(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeErr(w, "Search", err)
		return
	}

	if err := httputil.WritePaginated(w, listings, total, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "error", err)
	}
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listing, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, listing); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *ListingHandler) ListByHost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	hostID := ps.ByName("id")
	if !ok || claims.Role != model.RoleHost || claims.ID != hostID {
		h.writeErr(w, "ListByHost", apperrors.Forbidden("Access denied"))
		return
	}

	listings, err := h.service.ListByHost(r.Context(), hostID)
	if err != nil {
		h.writeErr(w, "ListByHost", err)
		return
	}

	if err := httputil.WriteSuccess(w, listings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByHost", "error", err)
	}
}

func (h *ListingHandler) writeErr(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/listings", h.Search)
	router.GET("/api/v1/listings/id/:id", h.GetByID)
	router.GET("/api/v1/listings/host/:id", middleware.Authenticated(h.tokens, h.ListByHost))
	router.POST("/api/v1/listings", middleware.Authenticated(h.tokens, h.Create))
}
