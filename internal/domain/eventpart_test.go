package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartType_IsValid(t *testing.T) {
	assert.True(t, PartTypeStart.IsValid())
	assert.True(t, PartTypeMiddle.IsValid())
	assert.True(t, PartTypeEnd.IsValid())
	assert.False(t, PartType("finale").IsValid())
	assert.False(t, PartType("").IsValid())
}

func TestLocalizedString_Plain(t *testing.T) {
	assert.Equal(t, "Hike", LocalizedString{"en": "Hike", "de": "Wanderung"}.Plain())
	assert.Equal(t, "Wanderung", LocalizedString{"de": "Wanderung"}.Plain())
	assert.Equal(t, "", LocalizedString{}.Plain())
	assert.Equal(t, "", LocalizedString(nil).Plain())
}

func TestAssignmentSet_ByType(t *testing.T) {
	start := EventPart{ID: 1, Type: PartTypeStart}
	end := EventPart{ID: 3, Type: PartTypeEnd}
	set := AssignmentSet{Start: &start, End: &end}

	assert.Equal(t, &start, set.ByType(PartTypeStart))
	assert.Nil(t, set.ByType(PartTypeMiddle))
	assert.Equal(t, &end, set.ByType(PartTypeEnd))
	assert.Nil(t, set.ByType(PartType("finale")))
}
