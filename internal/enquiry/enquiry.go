// Package enquiry persists contact-form submissions.
package enquiry

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"homescape/server/internal/models"
)

// Store persists contact enquiries in SQLite.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewStore opens the enquiry database and runs migrations.
func NewStore(dbPath string, logger *logrus.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open enquiry database: %w", err)
	}

	if err := db.AutoMigrate(&models.ContactEnquiry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate enquiry schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Create saves a new enquiry and returns it with its assigned id.
func (s *Store) Create(e models.ContactEnquiry) (models.ContactEnquiry, error) {
	if err := s.db.Create(&e).Error; err != nil {
		return models.ContactEnquiry{}, fmt.Errorf("failed to save enquiry: %w", err)
	}
	s.logger.WithField("property_id", e.PropertyID).Info("Contact enquiry saved")
	return e, nil
}

// ListByProperty returns all enquiries for a listing, newest first.
func (s *Store) ListByProperty(propertyID int64) ([]models.ContactEnquiry, error) {
	var enquiries []models.ContactEnquiry
	err := s.db.
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&enquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	return enquiries, nil
}

// MarkSent records that the outbound SMS for an enquiry went through.
func (s *Store) MarkSent(id int64, smsStatus string) error {
	err := s.db.Model(&models.ContactEnquiry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent": true, "sms_status": smsStatus}).Error
	if err != nil {
		return fmt.Errorf("failed to mark enquiry sent: %w", err)
	}
	return nil
}
