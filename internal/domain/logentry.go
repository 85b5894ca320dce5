package domain

import "time"

// Audit action types recorded by this service.
const (
	ActionEventPartAdded   = "eventparts.eventpart.added"
	ActionEventPartChanged = "eventparts.eventpart.changed"
	ActionEventPartDeleted = "eventparts.eventpart.deleted"
	ActionSettingsPublic   = "eventparts.public"
	ActionSettingsPrivate  = "eventparts.not_public"
)

type LogEntry struct {
	ID         uint                   `json:"id"`
	EventID    uint                   `json:"event_id"`
	ObjectType string                 `json:"object_type"`
	ObjectID   uint                   `json:"object_id"`
	ActionType string                 `json:"action_type"`
	Data       map[string]interface{} `json:"data"`
	UserID     uint                   `json:"user_id"`
	CreatedAt  time.Time              `json:"created_at"`
}

// DisplayText renders an entry's action type as staff-facing text.
// Unknown action types come back empty so callers can fall back to the raw
// type.
func (e LogEntry) DisplayText() string {
	switch e.ActionType {
	case ActionEventPartAdded:
		return "The event part has been created."
	case ActionEventPartChanged:
		return "The event part has been changed."
	case ActionEventPartDeleted:
		return "The event part has been deleted."
	case ActionSettingsPublic:
		return "Event part information is switched to public and is shown in the customers order view."
	case ActionSettingsPrivate:
		return "Event part information is no longer shown in the customers order view."
	}
	return ""
}
