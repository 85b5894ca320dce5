package request

import (
	"github.com/vocoteam/eventparts-api/internal/domain"
)

// AssignEventPartsRequest replaces an order's selection. A nil slot means
// "no part of that type".
type AssignEventPartsRequest struct {
	Start  *uint `json:"start"`
	Middle *uint `json:"middle"`
	End    *uint `json:"end"`
}

func (req *AssignEventPartsRequest) Validate() error {
	return nil
}

// Picks flattens the request into the non-empty selections.
func (req *AssignEventPartsRequest) Picks() map[domain.PartType]uint {
	picks := map[domain.PartType]uint{}
	if req.Start != nil {
		picks[domain.PartTypeStart] = *req.Start
	}
	if req.Middle != nil {
		picks[domain.PartTypeMiddle] = *req.Middle
	}
	if req.End != nil {
		picks[domain.PartTypeEnd] = *req.End
	}
	return picks
}
