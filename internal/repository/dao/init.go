package dao

import (
	"fmt"

	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Event{},
		&EventRegistration{},
		&Actuality{},
		&Publication{},
		&PublicationRequest{},
		&GalleryPhoto{},
		&FinancingRequest{},
		&TrainingRegistration{},
		&NewsletterSubscription{},
	)
	if err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	// At most one non-cancelled registration per event and email.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ` + activeRegistrationIndex + `
		ON event_registrations (event_id, LOWER(email))
		WHERE status <> 'cancelled'`).Error
	if err != nil {
		return fmt.Errorf("create %s -> %w", activeRegistrationIndex, err)
	}

	return nil
}

// dropAllTables is used by integration tests to start from an empty schema.
func dropAllTables(db *gorm.DB) error {
	var tableNames []string
	if err := db.Table("information_schema.tables").
		Where("table_schema = ?", "public").
		Pluck("table_name", &tableNames).Error; err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if err := db.Exec("DROP TABLE IF EXISTS " + tableName + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}
