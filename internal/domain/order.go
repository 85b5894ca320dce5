package domain

import "time"

// Order statuses mirror the ticketing platform's lifecycle. The service only
// ever distinguishes canceled from everything else.
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusExpired  = "expired"
	OrderStatusCanceled = "canceled"
)

type Event struct {
	ID            uint   `json:"id"`
	OrganizerSlug string `json:"organizer_slug"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
}

type Order struct {
	Code      string    `json:"code"`
	EventID   uint      `json:"event_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID        uint   `json:"id"`
	EventID   uint   `json:"event_id"`
	Name      string `json:"name"`
	Admission bool   `json:"admission"`
}

type OrderPosition struct {
	ID            uint   `json:"id"`
	OrderCode     string `json:"order_code"`
	ItemID        uint   `json:"item_id"`
	Item          Item   `json:"item"`
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
	Canceled      bool   `json:"canceled"`
}

type Question struct {
	ID         uint   `json:"id"`
	EventID    uint   `json:"event_id"`
	Identifier string `json:"identifier"`
	Text       string `json:"text"`
}
