package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type UpdateSettingsRequest struct {
	Public            bool              `json:"public"`
	PublicName        map[string]string `json:"public_name"`
	PublicDescription map[string]string `json:"public_description"`
	StartName         map[string]string `json:"public_start_name"`
	MiddleName        map[string]string `json:"public_middle_name"`
	EndName           map[string]string `json:"public_end_name"`
	LeaderItemID      uint              `json:"leader_item_id"`
	ExcludedItemIDs   []uint            `json:"excluded_item_ids"`
	QuestionMobile    string            `json:"question_mobile"`
	QuestionDiet      string            `json:"question_diet"`
	QuestionAllergy   string            `json:"question_allergy"`
	QuestionBirthdate string            `json:"question_birthdate"`
}

func (req *UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LeaderItemID, validation.Required),
		validation.Field(&req.QuestionMobile, validation.Length(0, 190)),
		validation.Field(&req.QuestionDiet, validation.Length(0, 190)),
		validation.Field(&req.QuestionAllergy, validation.Length(0, 190)),
		validation.Field(&req.QuestionBirthdate, validation.Length(0, 190)),
	)
}

func (req *UpdateSettingsRequest) ToDomain() domain.Settings {
	return domain.Settings{
		Public:            req.Public,
		PublicName:        req.PublicName,
		PublicDescription: req.PublicDescription,
		StartName:         req.StartName,
		MiddleName:        req.MiddleName,
		EndName:           req.EndName,
		LeaderItemID:      req.LeaderItemID,
		ExcludedItemIDs:   req.ExcludedItemIDs,
		QuestionMobile:    req.QuestionMobile,
		QuestionDiet:      req.QuestionDiet,
		QuestionAllergy:   req.QuestionAllergy,
		QuestionBirthdate: req.QuestionBirthdate,
	}
}
