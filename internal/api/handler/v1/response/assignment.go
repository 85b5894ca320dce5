package response

import (
	"github.com/vocoteam/eventparts-api/internal/domain"
)

type AssignmentsResponse struct {
	Assignments domain.AssignmentSet          `json:"assignments"`
	Choices     map[string][]domain.EventPart `json:"choices,omitempty"`
}

type OrderInfoResponse struct {
	Assignments domain.AssignmentSet `json:"assignments"`
	TypeNames   map[string]string    `json:"type_names"`
}

type PublicOrderInfoResponse struct {
	PublicName        string               `json:"public_name"`
	PublicDescription string               `json:"public_description"`
	Assignments       domain.AssignmentSet `json:"assignments"`
	TypeNames         map[string]string    `json:"type_names"`
}
