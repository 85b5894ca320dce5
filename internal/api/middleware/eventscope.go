package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/response"
	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/service"
)

// CtxKeyEvent is where EventScope stores the resolved event.
const CtxKeyEvent = "event"

type EventResolver interface {
	ResolveEvent(ctx context.Context, organizerSlug, eventSlug string) (domain.Event, error)
}

// EventScope resolves the organizer/event slug pair of the URL and stores
// the event in the gin context. Everything below such a route is scoped to
// that event.
func EventScope(svc EventResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		organizerSlug := ctx.Param("organizerSlug")
		eventSlug := ctx.Param("eventSlug")

		event, err := svc.ResolveEvent(ctx.Request.Context(), organizerSlug, eventSlug)
		if err != nil {
			if errors.Is(err, service.ErrEventNotFound) {
				response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
				ctx.Abort()
				return
			}

			err = fmt.Errorf("middleware.EventScope -> svc.ResolveEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			ctx.Abort()
			return
		}

		ctx.Set(CtxKeyEvent, event)
		ctx.Next()
	}
}

// EventFromContext returns the event put there by EventScope.
func EventFromContext(ctx *gin.Context) (domain.Event, bool) {
	value, ok := ctx.Get(CtxKeyEvent)
	if !ok {
		return domain.Event{}, false
	}

	event, ok := value.(domain.Event)
	return event, ok
}
