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
)

// postambleCSS is the stylesheet fragment appended to the customer-facing
// stylesheet when part information is public.
const postambleCSS = `.eventpart-panel { border: 1px solid #ddd; border-radius: 4px; padding: 12px; margin-bottom: 12px; }
.eventpart-panel h4 { margin-top: 0; }
.eventpart-type { font-weight: bold; color: #555; }
`

type SettingsService interface {
	GetSettings(ctx context.Context, eventID uint) (domain.Settings, error)
	UpdateSettings(ctx context.Context, eventID uint, settings domain.Settings, userID uint) (domain.Settings, error)
	StylesheetVersion() uint64
}

type SettingsHandler struct {
	svc SettingsService
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

// HandleGetSettings godoc
// @Summary      Get the event's event-parts settings
// @Tags         settings
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Success      200  {object}  domain.Settings
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/settings [get]
func (h *SettingsHandler) HandleGetSettings(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	settings, err := h.svc.GetSettings(ctx.Request.Context(), event.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSettings -> h.svc.GetSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleUpdateSettings godoc
// @Summary      Update the event's event-parts settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        organizerSlug  path  string  true  "organizer slug"
// @Param        eventSlug      path  string  true  "event slug"
// @Param        request        body  request.UpdateSettingsRequest true "request body"
// @Success      200  {object}  domain.Settings
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizers/{organizerSlug}/events/{eventSlug}/settings [put]
func (h *SettingsHandler) HandleUpdateSettings(ctx *gin.Context) {
	event, ok := middleware.EventFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("event missing from context")))
		return
	}

	var req request.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.UpdateSettings(ctx.Request.Context(), event.ID, req.ToDomain(), ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateSettings -> h.svc.UpdateSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleGetPostamble godoc
// @Summary      The plugin stylesheet postamble
// @Tags         settings
// @Produce      text/css
// @Success      200  {string}  string "CSS"
// @Router       /static/eventparts/postamble.css [get]
func (h *SettingsHandler) HandleGetPostamble(ctx *gin.Context) {
	ctx.Header("ETag", fmt.Sprintf("%q", fmt.Sprintf("eventparts-%d", h.svc.StylesheetVersion())))
	ctx.Data(http.StatusOK, "text/css; charset=utf-8", []byte(postambleCSS))
}
