package repository

import (
	"github.com/codebusters-club/recruitment-api/internal/database"
	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/utils"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var app models.Application
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&app, id).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

// FindByEmail finds an application by its unique email
func (r *GormApplicationRepository) FindByEmail(email string) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("email = ?", email).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// List retrieves applications with filtering and pagination, newest first
func (r *GormApplicationRepository) List(filter ApplicationFilter) ([]models.Application, int64, error) {
	var apps []models.Application

	query := r.db.Model(&models.Application{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Offset: (filter.Page - 1) * filter.PageSize,
			Limit:  filter.PageSize,
		}))
	}

	if err := listQuery.Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListByStatus lists applications with the given status in id order.
// The id order is the "natural retrieval order" the assignment zipper
// depends on.
func (r *GormApplicationRepository) ListByStatus(status models.ApplicationStatus) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("status = ?", status).Order("id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAll returns every application, newest first
func (r *GormApplicationRepository) ListAll() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CountByStatus counts applications with the given status
func (r *GormApplicationRepository) CountByStatus(status models.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountGroupedByBranch returns per-branch application counts
func (r *GormApplicationRepository) CountGroupedByBranch() ([]GroupCount, error) {
	return r.countGrouped("branch")
}

// CountGroupedByRole returns per-role application counts
func (r *GormApplicationRepository) CountGroupedByRole() ([]GroupCount, error) {
	return r.countGrouped("role")
}

func (r *GormApplicationRepository) countGrouped(column string) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.Model(&models.Application{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// Count returns the total number of applications
func (r *GormApplicationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

// Update updates an application
func (r *GormApplicationRepository) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

// Delete permanently removes an application. Any slot booked for it is
// released first so the slot can be reassigned.
func (r *GormApplicationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InterviewSlot{}).
			Where("application_id = ?", id).
			Updates(map[string]interface{}{"is_booked": false, "application_id": nil}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Application{}, id).Error
	})
}
