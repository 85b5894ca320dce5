package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

func TestCreateEventPartRequest_Validate(t *testing.T) {
	req := CreateEventPartRequest{Name: "Opening Hike", Type: "start", Capacity: 24}
	assert.NoError(t, req.Validate())

	// Name and type may stay empty, a copy_from source can supply them.
	assert.NoError(t, (&CreateEventPartRequest{}).Validate())

	assert.Error(t, (&CreateEventPartRequest{Name: "X", Type: "finale"}).Validate())
	assert.Error(t, (&CreateEventPartRequest{Name: "X", Type: "start", Capacity: -1}).Validate())
}

func TestUpdateEventPartRequest_Validate(t *testing.T) {
	req := UpdateEventPartRequest{Name: "Opening Hike", Type: "start"}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&UpdateEventPartRequest{Type: "start"}).Validate())
	assert.Error(t, (&UpdateEventPartRequest{Name: "X"}).Validate())
	assert.Error(t, (&UpdateEventPartRequest{Name: "X", Type: "finale"}).Validate())
}

func TestAssignEventPartsRequest_Picks(t *testing.T) {
	start, middle := uint(1), uint(2)

	req := AssignEventPartsRequest{Start: &start, Middle: &middle}
	assert.Equal(t, map[domain.PartType]uint{
		domain.PartTypeStart:  1,
		domain.PartTypeMiddle: 2,
	}, req.Picks())

	assert.Empty(t, (&AssignEventPartsRequest{}).Picks())
}
