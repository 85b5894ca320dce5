package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_DisplayText(t *testing.T) {
	assert.Equal(t, "The event part has been created.", LogEntry{ActionType: ActionEventPartAdded}.DisplayText())
	assert.Equal(t, "The event part has been deleted.", LogEntry{ActionType: ActionEventPartDeleted}.DisplayText())
	assert.Empty(t, LogEntry{ActionType: "eventparts.unknown"}.DisplayText())
}
