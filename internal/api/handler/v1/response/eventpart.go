package response

import (
	"github.com/vocoteam/eventparts-api/internal/domain"
)

type ListEventPartsResponse struct {
	EventParts []domain.EventPart `json:"eventparts"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	// TypeNames carries the event's configured display name per part type
	// for UI labeling.
	TypeNames map[string]string `json:"type_names"`
}

type EventPartResponse struct {
	domain.EventPart
	TypeName   string `json:"type_name"`
	UsedPlaces int    `json:"used_places"`
}

type ContactTableResponse struct {
	HTML     string `json:"html"`
	Degraded bool   `json:"degraded"`
}

type ParticipantsResponse struct {
	Participants []domain.OrderPosition `json:"participants"`
	UsedPlaces   int                    `json:"used_places"`
}
