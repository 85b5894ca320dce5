package domain

// Settings hold the per-event event-parts configuration. Values fall back to
// DefaultSettings when an event has no stored override for a key.
type Settings struct {
	Public            bool            `json:"public"`
	PublicName        LocalizedString `json:"public_name"`
	PublicDescription LocalizedString `json:"public_description"`
	StartName         LocalizedString `json:"public_start_name"`
	MiddleName        LocalizedString `json:"public_middle_name"`
	EndName           LocalizedString `json:"public_end_name"`

	// Catalog references, configurable per event instead of being baked-in
	// deployment constants.
	LeaderItemID      uint   `json:"leader_item_id"`
	ExcludedItemIDs   []uint `json:"excluded_item_ids"`
	QuestionMobile    string `json:"question_mobile"`
	QuestionDiet      string `json:"question_diet"`
	QuestionAllergy   string `json:"question_allergy"`
	QuestionBirthdate string `json:"question_birthdate"`
}

func DefaultSettings() Settings {
	return Settings{
		Public:            false,
		PublicName:        LocalizedString{"en": "Eventparts"},
		PublicDescription: LocalizedString{},
		StartName:         LocalizedString{"en": "Start"},
		MiddleName:        LocalizedString{"en": "Middle"},
		EndName:           LocalizedString{"en": "End"},
		LeaderItemID:      27,
		ExcludedItemIDs:   []uint{51, 45, 53},
		QuestionMobile:    "CQEBCKRP",
		QuestionDiet:      "ZN3NGADT",
		QuestionAllergy:   "J9TFC7NQ",
		QuestionBirthdate: "EQ3HTNKC",
	}
}

// TypeName resolves the configured display name for a part type.
func (s Settings) TypeName(t PartType) string {
	switch t {
	case PartTypeStart:
		return s.StartName.Plain()
	case PartTypeMiddle:
		return s.MiddleName.Plain()
	case PartTypeEnd:
		return s.EndName.Plain()
	}
	return ""
}

func (s Settings) IsExcludedItem(itemID uint) bool {
	for _, id := range s.ExcludedItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}
