package domain

import "time"

type PartType string

const (
	PartTypeStart  PartType = "start"
	PartTypeMiddle PartType = "middle"
	PartTypeEnd    PartType = "end"
)

// PartTypes lists the valid types in display order.
var PartTypes = []PartType{PartTypeStart, PartTypeMiddle, PartTypeEnd}

func (t PartType) IsValid() bool {
	return t == PartTypeStart || t == PartTypeMiddle || t == PartTypeEnd
}

// LocalizedString maps a locale code ("en", "de", ...) to a translation.
type LocalizedString map[string]string

// Plain returns the best plain-text rendition: English if present,
// otherwise any translation, otherwise "".
func (s LocalizedString) Plain() string {
	if v, ok := s["en"]; ok {
		return v
	}
	for _, v := range s {
		return v
	}
	return ""
}

// EventPart is a named phase of an event (e.g. an opening hike or a closing
// ceremony). Capacity is informational only and never enforced.
type EventPart struct {
	ID          uint            `json:"id"`
	EventID     uint            `json:"event_id"`
	Name        string          `json:"name"`
	Description LocalizedString `json:"description"`
	Category    string          `json:"category"`
	Capacity    int             `json:"capacity"`
	Type        PartType        `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AssignmentSet is an order's pick per part type. A nil slot means the order
// has no part of that type. One part per type is a storage-level invariant.
type AssignmentSet struct {
	Start  *EventPart `json:"start"`
	Middle *EventPart `json:"middle"`
	End    *EventPart `json:"end"`
}

func (a AssignmentSet) ByType(t PartType) *EventPart {
	switch t {
	case PartTypeStart:
		return a.Start
	case PartTypeMiddle:
		return a.Middle
	case PartTypeEnd:
		return a.End
	}
	return nil
}

// Contact is one assigned order's contact row: the attendee data of the
// order's leader position plus the order's participant headcount.
type Contact struct {
	OrderCode    string `json:"order_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Participants int    `json:"participants"`
}

// ContactInfo is a best-effort aggregate. Degraded is set when the
// computation hit an error and the list is only partial.
type ContactInfo struct {
	Contacts []Contact `json:"contacts"`
	Degraded bool      `json:"degraded"`
}
