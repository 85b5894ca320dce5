package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vocoteam/eventparts-api/internal/api/handler/v1/response"
	"github.com/vocoteam/eventparts-api/internal/domain"
)

type CapabilityUserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireCapability rejects requests whose authenticated user lacks the
// capability. Must run after VerifyJWT.
func RequireCapability(svc CapabilityUserService, capability string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint(CtxKeyUserID)
		if userID == 0 {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("not authenticated")))
			ctx.Abort()
			return
		}

		user, err := svc.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			err = fmt.Errorf("middleware.RequireCapability -> svc.GetUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			ctx.Abort()
			return
		}

		if !user.HasCapability(capability) {
			response.RenderErr(ctx, response.ErrPermissionDenied())
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
