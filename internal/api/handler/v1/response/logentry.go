package response

import (
	"time"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type LogEntryResponse struct {
	ID          uint                   `json:"id"`
	ObjectType  string                 `json:"object_type"`
	ObjectID    uint                   `json:"object_id"`
	ActionType  string                 `json:"action_type"`
	DisplayText string                 `json:"display_text"`
	Data        map[string]interface{} `json:"data"`
	UserID      uint                   `json:"user_id"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewLogEntryResponse resolves the staff-facing text per action type;
// unknown types fall back to the raw action type.
func NewLogEntryResponse(entry domain.LogEntry) LogEntryResponse {
	text := entry.DisplayText()
	if text == "" {
		text = entry.ActionType
	}

	return LogEntryResponse{
		ID:          entry.ID,
		ObjectType:  entry.ObjectType,
		ObjectID:    entry.ObjectID,
		ActionType:  entry.ActionType,
		DisplayText: text,
		Data:        entry.Data,
		UserID:      entry.UserID,
		CreatedAt:   entry.CreatedAt,
	}
}

type NavigationEntry struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Icon   string `json:"icon,omitempty"`
	Active bool   `json:"active"`
}
