package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository/dao"
)

// Setting keys as stored in the per-event key/value table.
const (
	settingPublic            = "eventparts__public"
	settingPublicName        = "eventparts__public_name"
	settingPublicDescription = "eventparts__public_description"
	settingStartName         = "eventparts__public_start_name"
	settingMiddleName        = "eventparts__public_middle_name"
	settingEndName           = "eventparts__public_end_name"
	settingLeaderItemID      = "eventparts__leader_item_id"
	settingExcludedItemIDs   = "eventparts__excluded_item_ids"
	settingQuestionMobile    = "eventparts__question_mobile"
	settingQuestionDiet      = "eventparts__question_diet"
	settingQuestionAllergy   = "eventparts__question_allergy"
	settingQuestionBirthdate = "eventparts__question_birthdate"
)

type SettingsDAO interface {
	FindByEvent(ctx context.Context, eventID uint) ([]dao.EventSetting, error)
	SaveAllWithLog(ctx context.Context, eventID uint, values map[string]string, entry dao.LogEntry) error
}

type SettingsRepository struct {
	dao SettingsDAO
}

func NewSettingsRepository(dao SettingsDAO) *SettingsRepository {
	return &SettingsRepository{
		dao: dao,
	}
}

// Get returns the event's settings with defaults filled in for missing keys.
func (r *SettingsRepository) Get(ctx context.Context, eventID uint) (domain.Settings, error) {
	stored, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	settings := domain.DefaultSettings()
	for _, row := range stored {
		applySetting(&settings, row.Key, row.Value)
	}

	return settings, nil
}

func (r *SettingsRepository) SaveWithLog(ctx context.Context, eventID uint, settings domain.Settings, entry domain.LogEntry) error {
	values := map[string]string{
		settingPublic:            encodeSetting(settings.Public),
		settingPublicName:        encodeSetting(settings.PublicName),
		settingPublicDescription: encodeSetting(settings.PublicDescription),
		settingStartName:         encodeSetting(settings.StartName),
		settingMiddleName:        encodeSetting(settings.MiddleName),
		settingEndName:           encodeSetting(settings.EndName),
		settingLeaderItemID:      encodeSetting(settings.LeaderItemID),
		settingExcludedItemIDs:   encodeSetting(settings.ExcludedItemIDs),
		settingQuestionMobile:    encodeSetting(settings.QuestionMobile),
		settingQuestionDiet:      encodeSetting(settings.QuestionDiet),
		settingQuestionAllergy:   encodeSetting(settings.QuestionAllergy),
		settingQuestionBirthdate: encodeSetting(settings.QuestionBirthdate),
	}

	data := "{}"
	if entry.Data != nil {
		if encoded, err := json.Marshal(entry.Data); err == nil {
			data = string(encoded)
		}
	}

	daoEntry := dao.LogEntry{
		EventID:    entry.EventID,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		ActionType: entry.ActionType,
		Data:       data,
		UserID:     entry.UserID,
	}

	if err := r.dao.SaveAllWithLog(ctx, eventID, values, daoEntry); err != nil {
		return fmt.Errorf("r.dao.SaveAllWithLog -> %w", err)
	}

	return nil
}

func encodeSetting(v interface{}) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "null"
	}

	return string(encoded)
}

// applySetting decodes one stored value into its settings field. Malformed
// values keep the default.
func applySetting(settings *domain.Settings, key, value string) {
	raw := []byte(value)

	switch key {
	case settingPublic:
		_ = json.Unmarshal(raw, &settings.Public)
	case settingPublicName:
		_ = json.Unmarshal(raw, &settings.PublicName)
	case settingPublicDescription:
		_ = json.Unmarshal(raw, &settings.PublicDescription)
	case settingStartName:
		_ = json.Unmarshal(raw, &settings.StartName)
	case settingMiddleName:
		_ = json.Unmarshal(raw, &settings.MiddleName)
	case settingEndName:
		_ = json.Unmarshal(raw, &settings.EndName)
	case settingLeaderItemID:
		_ = json.Unmarshal(raw, &settings.LeaderItemID)
	case settingExcludedItemIDs:
		_ = json.Unmarshal(raw, &settings.ExcludedItemIDs)
	case settingQuestionMobile:
		_ = json.Unmarshal(raw, &settings.QuestionMobile)
	case settingQuestionDiet:
		_ = json.Unmarshal(raw, &settings.QuestionDiet)
	case settingQuestionAllergy:
		_ = json.Unmarshal(raw, &settings.QuestionAllergy)
	case settingQuestionBirthdate:
		_ = json.Unmarshal(raw, &settings.QuestionBirthdate)
	}
}
