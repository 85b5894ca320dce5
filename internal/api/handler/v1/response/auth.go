package response

import (
	"github.com/vocoteam/eventparts-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
