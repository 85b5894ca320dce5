package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository/dao"
)

type fakeSettingsDAO struct {
	rows  []dao.EventSetting
	saved map[string]string
	entry dao.LogEntry
}

func (f *fakeSettingsDAO) FindByEvent(_ context.Context, _ uint) ([]dao.EventSetting, error) {
	return f.rows, nil
}

func (f *fakeSettingsDAO) SaveAllWithLog(_ context.Context, _ uint, values map[string]string, entry dao.LogEntry) error {
	f.saved = values
	f.entry = entry
	return nil
}

func TestSettingsRepository_Get_Defaults(t *testing.T) {
	repo := NewSettingsRepository(&fakeSettingsDAO{})

	settings, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsRepository_Get_MergesStoredOverDefaults(t *testing.T) {
	repo := NewSettingsRepository(&fakeSettingsDAO{rows: []dao.EventSetting{
		{Key: "eventparts__public", Value: "true"},
		{Key: "eventparts__public_start_name", Value: `{"en":"Auftakt"}`},
		{Key: "eventparts__leader_item_id", Value: "99"},
		{Key: "eventparts__excluded_item_ids", Value: "[7]"},
	}})

	settings, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, settings.Public)
	assert.Equal(t, "Auftakt", settings.StartName.Plain())
	assert.Equal(t, uint(99), settings.LeaderItemID)
	assert.Equal(t, []uint{7}, settings.ExcludedItemIDs)

	// Untouched keys stay at their defaults.
	assert.Equal(t, "Middle", settings.MiddleName.Plain())
	assert.Equal(t, "CQEBCKRP", settings.QuestionMobile)
}

func TestSettingsRepository_Get_MalformedValueKeepsDefault(t *testing.T) {
	repo := NewSettingsRepository(&fakeSettingsDAO{rows: []dao.EventSetting{
		{Key: "eventparts__leader_item_id", Value: "not json"},
	}})

	settings, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings().LeaderItemID, settings.LeaderItemID)
}

func TestSettingsRepository_SaveWithLog(t *testing.T) {
	fake := &fakeSettingsDAO{}
	repo := NewSettingsRepository(fake)

	settings := domain.DefaultSettings()
	settings.Public = true
	settings.StartName = domain.LocalizedString{"en": "Auftakt"}

	err := repo.SaveWithLog(context.Background(), 1, settings, domain.LogEntry{
		EventID:    1,
		ObjectType: "event",
		ObjectID:   1,
		ActionType: domain.ActionSettingsPublic,
		UserID:     3,
	})
	require.NoError(t, err)

	assert.Len(t, fake.saved, 12)
	assert.Equal(t, "true", fake.saved["eventparts__public"])
	assert.Equal(t, `{"en":"Auftakt"}`, fake.saved["eventparts__public_start_name"])

	assert.Equal(t, domain.ActionSettingsPublic, fake.entry.ActionType)
	assert.Equal(t, "{}", fake.entry.Data)
	assert.Equal(t, uint(3), fake.entry.UserID)
}
