package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&Item{},
		&Order{},
		&OrderPosition{},
		&Question{},
		&QuestionAnswer{},
		&EventPart{},
		&EventPartAssignment{},
		&EventSetting{},
		&LogEntry{},
	)
}
