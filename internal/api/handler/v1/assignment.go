package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/request"
	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/response"
	"github.com/vocoteam/eventparts-api/internal/api/middleware"
	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/service"
)

type AssignmentService interface {
	GetAssignments(ctx context.Context, eventID uint, orderCode string) (domain.AssignmentSet, map[domain.PartType][]domain.EventPart, error)
	ReplaceAssignments(ctx context.Context, eventID uint, orderCode string, picks map[domain.PartType]uint) error
	OrderInfo(ctx context.Context, eventID uint, orderCode string) (domain.AssignmentSet, domain.Settings, error)
	PublicOrderInfo(ctx context.Context, eventID uint, orderCode string) (domain.AssignmentSet, domain.Settings, bool, error)
	Placeholders(ctx context.Context, eventID uint, orderCode string) (map[string]string, error)
}

type AssignmentHandler struct {
	svc AssignmentService
}

func NewAssignmentHandler(svc AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		svc: svc,
	}
}

// HandleGetAssignments godoc
// @Summary      Get the order's part selection and the selectable choices
// @Tags         assignments
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        code           path  string  true  "order code"
// @Success      200  {object}  response.AssignmentsResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/orders/{code}/eventparts [get]
func (h *AssignmentHandler) HandleGetAssignments(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	set, choices, err := h.svc.GetAssignments(ctx.Request.Context(), event.ID, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetAssignments -> h.svc.GetAssignments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	converted := make(map[string][]domain.EventPart, len(choices))
	for partType, parts := range choices {
		converted[string(partType)] = parts
	}

	ctx.JSON(http.StatusOK, response.AssignmentsResponse{
		Assignments: set,
		Choices:     converted,
	})
}

// HandleReplaceAssignments godoc
// @Summary      Replace the order's part selection
// @Description  Clears every existing assignment of the order, then assigns one part per non-empty slot.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        code           path  string  true  "order code"
// @Param        request        body  request.AssignEventPartsRequest true "request body"
// @Success      200  {object}  response.AssignmentsResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/orders/{code}/eventparts [put]
func (h *AssignmentHandler) HandleReplaceAssignments(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	var req request.AssignEventPartsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	code := ctx.Param("code")

	err := h.svc.ReplaceAssignments(ctx.Request.Context(), event.ID, code, req.Picks())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
		case errors.Is(err, service.ErrEventPartNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventPartNotFound))
		case errors.Is(err, service.ErrPartTypeMismatch):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrPartTypeMismatch))
		default:
			err = fmt.Errorf("v1.HandleReplaceAssignments -> h.svc.ReplaceAssignments -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	set, _, err := h.svc.GetAssignments(ctx.Request.Context(), event.ID, code)
	if err != nil {
		err = fmt.Errorf("v1.HandleReplaceAssignments -> h.svc.GetAssignments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AssignmentsResponse{
		Assignments: set,
	})
}

// HandleGetOrderInfo godoc
// @Summary      Staff view of the order's slots
// @Tags         assignments
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        code           path  string  true  "order code"
// @Success      200  {object}  response.OrderInfoResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/orders/{code}/info [get]
func (h *AssignmentHandler) HandleGetOrderInfo(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	set, settings, err := h.svc.OrderInfo(ctx.Request.Context(), event.ID, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrderInfo -> h.svc.OrderInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.OrderInfoResponse{
		Assignments: set,
		TypeNames:   typeNameMap(settings),
	})
}

// HandleGetPublicOrderInfo godoc
// @Summary      Customer view of the order's slots
// @Description  Renders nothing (204) unless the event exposes part information publicly.
// @Tags         assignments
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        code           path  string  true  "order code"
// @Success      200  {object}  response.PublicOrderInfoResponse
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/orders/{code}/public-info [get]
func (h *AssignmentHandler) HandleGetPublicOrderInfo(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	set, settings, public, err := h.svc.PublicOrderInfo(ctx.Request.Context(), event.ID, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetPublicOrderInfo -> h.svc.PublicOrderInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !public {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, response.PublicOrderInfoResponse{
		PublicName:        settings.PublicName.Plain(),
		PublicDescription: settings.PublicDescription.Plain(),
		Assignments:       set,
		TypeNames:         typeNameMap(settings),
	})
}

// HandleGetPlaceholders godoc
// @Summary      Ticket and mail placeholder values for the order
// @Tags         assignments
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        code           path  string  true  "order code"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/orders/{code}/placeholders [get]
func (h *AssignmentHandler) HandleGetPlaceholders(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	placeholders, err := h.svc.Placeholders(ctx.Request.Context(), event.ID, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetPlaceholders -> h.svc.Placeholders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, placeholders)
}

func typeNameMap(settings domain.Settings) map[string]string {
	names := make(map[string]string, len(domain.PartTypes))
	for _, partType := range domain.PartTypes {
		names[string(partType)] = settings.TypeName(partType)
	}
	return names
}
