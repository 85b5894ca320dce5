package domain

import "time"

// Capabilities gate the staff API. They follow the ticketing platform's
// permission names.
const (
	CapChangeItems    = "can_change_items"
	CapViewOrders     = "can_view_orders"
	CapChangeSettings = "can_change_settings"
)

type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Name         string    `json:"name"`
	Capabilities []string  `json:"capabilities"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) HasCapability(cap string) bool {
	for _, c := range u.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}
