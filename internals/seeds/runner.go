package seeds

import (
	"log"

	"gorm.io/gorm"
)

// Run executes every seeder in order. Each seeder is idempotent, so the
// runner is safe to call on every boot.
func Run(db *gorm.DB) error {
	steps := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"super user", SeedSuperUser},
		{"sms templates", SeedSMSTemplates},
	}
	for _, s := range steps {
		if err := s.fn(db); err != nil {
			log.Printf("[ERROR] seed %s: %v", s.name, err)
			return err
		}
		log.Printf("[INFO] seed %s: ok", s.name)
	}
	return nil
}
