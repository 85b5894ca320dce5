package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/response"
	"github.com/vocoteam/eventparts-api/internal/api/middleware"
	"github.com/vocoteam/eventparts-api/internal/domain"
)

type EventLogService interface {
	ListByEvent(ctx context.Context, eventID uint, page, pageSize int) ([]domain.LogEntry, error)
	ListByObject(ctx context.Context, eventID uint, objectType string, objectID uint) ([]domain.LogEntry, error)
}

type EventUserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type EventHandler struct {
	logSvc  EventLogService
	userSvc EventUserService
}

func NewEventHandler(logSvc EventLogService, userSvc EventUserService) *EventHandler {
	return &EventHandler{
		logSvc:  logSvc,
		userSvc: userSvc,
	}
}

// HandleListLogs godoc
// @Summary      List the event's audit log entries
// @Tags         events
// @Produce      json
// @Param        organizerSlug  path   string  true  "organizer slug"
// @Param        eventSlug      path   string  true  "event slug"
// @Param        page           query  int     false "page number"
// @Param        page_size      query  int     false "page size"
// @Param        object_type    query  string  false "filter by object type"
// @Param        object_id      query  int     false "filter by object id"
// @Success      200  {array}   response.LogEntryResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/logs [get]
func (h *EventHandler) HandleListLogs(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	var entries []domain.LogEntry
	var err error

	objectType := ctx.Query("object_type")
	if objectType != "" {
		objectID, _ := strconv.ParseUint(ctx.Query("object_id"), 10, 32)
		entries, err = h.logSvc.ListByObject(ctx.Request.Context(), event.ID, objectType, uint(objectID))
	} else {
		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
		entries, err = h.logSvc.ListByEvent(ctx.Request.Context(), event.ID, page, pageSize)
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListLogs -> h.logSvc -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	converted := make([]response.LogEntryResponse, len(entries))
	for i, entry := range entries {
		converted[i] = response.NewLogEntryResponse(entry)
	}

	ctx.JSON(http.StatusOK, converted)
}

// HandleGetNavigation godoc
// @Summary      Staff navigation entries for the event
// @Description  The parts list entry is always present; the settings entry only for users who may change settings.
// @Tags         events
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Success      200  {array}   response.NavigationEntry
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/navigation [get]
func (h *EventHandler) HandleGetNavigation(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	base := fmt.Sprintf("/api/v1/organizers/%s/events/%s", event.OrganizerSlug, event.Slug)

	nav := []response.NavigationEntry{
		{
			Label: "Eventparts",
			URL:   base + "/eventparts",
			Icon:  "forward",
		},
	}

	user, err := h.userSvc.GetUser(ctx.Request.Context(), ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetNavigation -> h.userSvc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if user.HasCapability(domain.CapChangeSettings) {
		nav = append(nav, response.NavigationEntry{
			Label: "Eventparts",
			URL:   base + "/settings",
		})
	}

	ctx.JSON(http.StatusOK, nav)
}
