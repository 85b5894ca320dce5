package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type fakeUserService struct {
	user domain.User
	err  error
}

func (f *fakeUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	return f.user, f.err
}

func capabilityTestRouter(svc CapabilityUserService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected",
		func(ctx *gin.Context) {
			if userID != 0 {
				ctx.Set(CtxKeyUserID, userID)
			}
		},
		RequireCapability(svc, domain.CapChangeSettings),
		func(ctx *gin.Context) {
			ctx.String(http.StatusOK, "ok")
		},
	)
	return router
}

func TestRequireCapability(t *testing.T) {
	testCases := []struct {
		name       string
		userID     uint
		user       domain.User
		wantStatus int
	}{
		{
			name:       "user has capability",
			userID:     1,
			user:       domain.User{ID: 1, Capabilities: []string{domain.CapChangeSettings}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user lacks capability",
			userID:     1,
			user:       domain.User{ID: 1, Capabilities: []string{domain.CapViewOrders}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "not authenticated",
			userID:     0,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := capabilityTestRouter(&fakeUserService{user: tc.user}, tc.userID)

			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}
