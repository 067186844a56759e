package repository

import (
	"errors"
	"time"

	"github.com/codebusters-club/recruitment-api/internal/models"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when the conditional booking write finds the slot
// already booked.
var ErrSlotTaken = errors.New("slot is already booked")

// GormSlotRepository is a GORM implementation of SlotRepository
type GormSlotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &GormSlotRepository{db: db}
}

// CreateBatch inserts a batch of slots
func (r *GormSlotRepository) CreateBatch(slots []models.InterviewSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.Create(&slots).Error
}

// FindByID finds a slot by ID
func (r *GormSlotRepository) FindByID(id uint64) (*models.InterviewSlot, error) {
	var slot models.InterviewSlot
	if err := r.db.First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindByApplication finds the slot currently bound to an application
func (r *GormSlotRepository) FindByApplication(applicationID uint64) (*models.InterviewSlot, error) {
	var slot models.InterviewSlot
	if err := r.db.Where("application_id = ?", applicationID).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// Exists reports whether a slot with the given (date, startTime) pair exists
func (r *GormSlotRepository) Exists(date time.Time, startTime string) (bool, error) {
	var count int64
	err := r.db.Model(&models.InterviewSlot{}).
		Where("date = ? AND start_time = ?", date, startTime).
		Count(&count).Error
	return count > 0, err
}

// List retrieves slots sorted by (date, start_time)
func (r *GormSlotRepository) List(filter SlotFilter) ([]models.InterviewSlot, error) {
	var slots []models.InterviewSlot

	query := r.db.Preload("Application")
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.AvailableOnly {
		query = query.Where("is_booked = ?", false)
	}

	if err := query.Order("date ASC, start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ListAvailable lists unbooked slots sorted by (date, start_time)
func (r *GormSlotRepository) ListAvailable() ([]models.InterviewSlot, error) {
	var slots []models.InterviewSlot
	err := r.db.Where("is_booked = ?", false).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// ListBooked lists booked slots with their applications preloaded
func (r *GormSlotRepository) ListBooked() ([]models.InterviewSlot, error) {
	var slots []models.InterviewSlot
	err := r.db.Preload("Application").
		Where("is_booked = ?", true).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// CountAvailable counts unbooked slots
func (r *GormSlotRepository) CountAvailable() (int64, error) {
	var count int64
	err := r.db.Model(&models.InterviewSlot{}).
		Where("is_booked = ?", false).
		Count(&count).Error
	return count, err
}

// Book atomically books the slot and persists the application's interview
// fields in one transaction. The booking write is conditional on
// is_booked = false, so two racing callers cannot both claim the slot: the
// loser sees zero affected rows and gets ErrSlotTaken.
func (r *GormSlotRepository) Book(slotID uint64, app *models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InterviewSlot{}).
			Where("id = ? AND is_booked = ?", slotID, false).
			Updates(map[string]interface{}{
				"is_booked":      true,
				"application_id": app.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotTaken
		}

		return tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Updates(map[string]interface{}{
				"status":            app.Status,
				"interview_slot_id": app.InterviewSlotID,
				"interview_date":    app.InterviewDate,
				"interview_time":    app.InterviewTime,
				"interviewer":       app.Interviewer,
				"interview_link":    app.InterviewLink,
			}).Error
	})
}

// Release unbooks a slot and clears its application reference
func (r *GormSlotRepository) Release(slotID uint64) error {
	return r.db.Model(&models.InterviewSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"is_booked":      false,
			"application_id": nil,
		}).Error
}

// Update updates a slot
func (r *GormSlotRepository) Update(slot *models.InterviewSlot) error {
	return r.db.Save(slot).Error
}
