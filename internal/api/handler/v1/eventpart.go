package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/request"
	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/response"
	"github.com/vocoteam/eventparts-api/internal/api/middleware"
	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/service"
)

type EventPartService interface {
	CreateEventPart(ctx context.Context, part domain.EventPart, copyFromID, userID uint) (domain.EventPart, error)
	UpdateEventPart(ctx context.Context, part domain.EventPart, userID uint) (domain.EventPart, error)
	DeleteEventPart(ctx context.Context, eventID, id, userID uint) error
	GetEventPart(ctx context.Context, eventID, id uint) (domain.EventPart, error)
	ListEventParts(ctx context.Context, eventID uint, page, pageSize int) ([]domain.EventPart, int64, error)
	TypeName(ctx context.Context, eventID uint, t domain.PartType) string
	ParticipantPositions(ctx context.Context, eventID, partID uint) ([]domain.OrderPosition, error)
	UsedPlaces(ctx context.Context, eventID, partID uint) (int, error)
	ContactInfo(ctx context.Context, eventID, partID uint) (domain.ContactInfo, error)
	ContactTable(ctx context.Context, eventID, partID uint) (string, bool, error)
	ProjectList(ctx context.Context, event domain.Event, partID uint) (string, []byte, error)
}

type EventPartHandler struct {
	svc EventPartService
}

func NewEventPartHandler(svc EventPartService) *EventPartHandler {
	return &EventPartHandler{
		svc: svc,
	}
}

func (h *EventPartHandler) typeNames(ctx *gin.Context, eventID uint) map[string]string {
	names := make(map[string]string, len(domain.PartTypes))
	for _, partType := range domain.PartTypes {
		names[string(partType)] = h.svc.TypeName(ctx.Request.Context(), eventID, partType)
	}
	return names
}

// HandleListEventParts godoc
// @Summary      List the event's parts
// @Tags         eventparts
// @Produce      json
// @Param        organizerSlug  path   string  true  "organizer slug"
// @Param        eventSlug      path   string  true  "event slug"
// @Param        page           query  int     false "page number"
// @Param        page_size      query  int     false "page size"
// @Success      200  {object}  response.ListEventPartsResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts [get]
func (h *EventPartHandler) HandleListEventParts(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	parts, total, err := h.svc.ListEventParts(ctx.Request.Context(), event.ID, page, pageSize)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEventParts -> h.svc.ListEventParts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ListEventPartsResponse{
		EventParts: parts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TypeNames:  h.typeNames(ctx, event.ID),
	})
}

// HandleCreateEventPart godoc
// @Summary      Create an event part
// @Tags         eventparts
// @Accept       json
// @Produce      json
// @Param        organizerSlug  path   string  true  "organizer slug"
// @Param        eventSlug      path   string  true  "event slug"
// @Param        copy_from      query  int     false "seed values from this part"
// @Param        request        body   request.CreateEventPartRequest true "request body"
// @Success      201  {object}  domain.EventPart
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts [post]
func (h *EventPartHandler) HandleCreateEventPart(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	var req request.CreateEventPartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	copyFromID, _ := strconv.ParseUint(ctx.Query("copy_from"), 10, 32)

	part := domain.EventPart{
		EventID:     event.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Capacity:    req.Capacity,
		Type:        domain.PartType(req.Type),
	}

	created, err := h.svc.CreateEventPart(ctx.Request.Context(), part, uint(copyFromID), ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		if errors.Is(err, service.ErrPartNameRequired) || errors.Is(err, service.ErrPartTypeInvalid) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEventPart -> h.svc.CreateEventPart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetEventPart godoc
// @Summary      Get an event part with its usage
// @Tags         eventparts
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Success      200  {object}  response.EventPartResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID} [get]
func (h *EventPartHandler) HandleGetEventPart(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	part, err := h.svc.GetEventPart(ctx.Request.Context(), event.ID, partID)
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetEventPart -> h.svc.GetEventPart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	usedPlaces, err := h.svc.UsedPlaces(ctx.Request.Context(), event.ID, partID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEventPart -> h.svc.UsedPlaces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventPartResponse{
		EventPart:  part,
		TypeName:   h.svc.TypeName(ctx.Request.Context(), event.ID, part.Type),
		UsedPlaces: usedPlaces,
	})
}

// HandleUpdateEventPart godoc
// @Summary      Update an event part
// @Tags         eventparts
// @Accept       json
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Param        request        body  request.UpdateEventPartRequest true "request body"
// @Success      200  {object}  domain.EventPart
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID} [put]
func (h *EventPartHandler) HandleUpdateEventPart(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	var req request.UpdateEventPartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part := domain.EventPart{
		ID:          partID,
		EventID:     event.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Capacity:    req.Capacity,
		Type:        domain.PartType(req.Type),
	}

	updated, err := h.svc.UpdateEventPart(ctx.Request.Context(), part, ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEventPart -> h.svc.UpdateEventPart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEventPart godoc
// @Summary      Delete an event part and its assignments
// @Tags         eventparts
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID} [delete]
func (h *EventPartHandler) HandleDeleteEventPart(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	err := h.svc.DeleteEventPart(ctx.Request.Context(), event.ID, partID, ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEventPart -> h.svc.DeleteEventPart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListParticipants godoc
// @Summary      List the part's participant positions
// @Tags         eventparts
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Success      200  {object}  response.ParticipantsResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID}/participants [get]
func (h *EventPartHandler) HandleListParticipants(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	participants, err := h.svc.ParticipantPositions(ctx.Request.Context(), event.ID, partID)
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.ParticipantPositions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ParticipantsResponse{
		Participants: participants,
		UsedPlaces:   len(participants),
	})
}

// HandleGetContactInfo godoc
// @Summary      Contact rows of the part's assigned orders
// @Tags         eventparts
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Success      200  {object}  domain.ContactInfo
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID}/contacts [get]
func (h *EventPartHandler) HandleGetContactInfo(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	info, err := h.svc.ContactInfo(ctx.Request.Context(), event.ID, partID)
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetContactInfo -> h.svc.ContactInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleGetContactTable godoc
// @Summary      Contact rows rendered as an HTML table for mail bodies
// @Tags         eventparts
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Success      200  {object}  response.ContactTableResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID}/contact-table [get]
func (h *EventPartHandler) HandleGetContactTable(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	html, degraded, err := h.svc.ContactTable(ctx.Request.Context(), event.ID, partID)
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetContactTable -> h.svc.ContactTable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ContactTableResponse{
		HTML:     html,
		Degraded: degraded,
	})
}

// HandleExportProjectList godoc
// @Summary      Download the part's participant list as CSV
// @Tags         eventparts
// @Produce      text/csv
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        partID         path  int     true  "event part ID"
// @Success      200  {string}  string "CSV data"
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/eventparts/{partID}/export [get]
func (h *EventPartHandler) HandleExportProjectList(ctx *gin.Context) {
	event, partID, ok := h.eventAndPartID(ctx)
	if !ok {
		return
	}

	filename, data, err := h.svc.ProjectList(ctx.Request.Context(), event, partID)
	if err != nil {
		if errors.Is(err, service.ErrEventPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleExportProjectList -> h.svc.ProjectList -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *EventPartHandler) eventAndPartID(ctx *gin.Context) (domain.Event, uint, bool) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return domain.Event{}, 0, false
	}

	partID, err := strconv.ParseUint(ctx.Param("partID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event part ID")))
		return domain.Event{}, 0, false
	}

	return event, uint(partID), true
}
