package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventPartRequest struct {
	Name        string            `json:"name"`
	Description map[string]string `json:"description"`
	Category    string            `json:"category"`
	Capacity    int               `json:"capacity"`
	Type        string            `json:"type"`
}

// Validate leaves name/type optional: a copy_from reference may fill them in
// and the service rejects the request when they end up empty anyway.
func (req *CreateEventPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(0, 200)),
		validation.Field(&req.Category, validation.Length(0, 200)),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.Type, validation.In("start", "middle", "end")),
	)
}

type UpdateEventPartRequest struct {
	Name        string            `json:"name"`
	Description map[string]string `json:"description"`
	Category    string            `json:"category"`
	Capacity    int               `json:"capacity"`
	Type        string            `json:"type"`
}

func (req *UpdateEventPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Category, validation.Length(0, 200)),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.Type, validation.Required, validation.In("start", "middle", "end")),
	)
}
