package repository

import (
	"github.com/codebusters-club/recruitment-api/internal/models"
	"gorm.io/gorm"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *GormAssignmentRepository) Create(assignment *models.TaskAssignment) error {
	return r.db.Create(assignment).Error
}

// FindByID finds an assignment by ID with optional preloading
func (r *GormAssignmentRepository) FindByID(id uint64, preload ...string) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assignment, id).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// Exists reports whether an assignment for (taskID, applicationID) exists
func (r *GormAssignmentRepository) Exists(taskID, applicationID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND application_id = ?", taskID, applicationID).
		Count(&count).Error
	return count > 0, err
}

// ListByTask lists assignments of a task
func (r *GormAssignmentRepository) ListByTask(taskID uint64) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	err := r.db.Where("task_id = ?", taskID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByApplication lists assignments of an application
func (r *GormAssignmentRepository) ListByApplication(applicationID uint64) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	err := r.db.Preload("Task").
		Where("application_id = ?", applicationID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(assignment *models.TaskAssignment) error {
	return r.db.Save(assignment).Error
}

// Stats aggregates assignment counts and the average evaluation score
func (r *GormAssignmentRepository) Stats() (*AssignmentStats, error) {
	stats := &AssignmentStats{}

	if err := r.db.Model(&models.TaskAssignment{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	err := r.db.Model(&models.TaskAssignment{}).
		Where("status IN ?", []models.AssignmentStatus{
			models.AssignmentStatusSubmitted,
			models.AssignmentStatusEvaluated,
		}).
		Count(&stats.Submitted).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.TaskAssignment{}).
		Where("status = ?", models.AssignmentStatusEvaluated).
		Count(&stats.Evaluated).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.TaskAssignment{}).
		Where("status = ?", models.AssignmentStatusOverdue).
		Count(&stats.Overdue).Error
	if err != nil {
		return nil, err
	}

	var avg *float64
	err = r.db.Model(&models.TaskAssignment{}).
		Where("status = ?", models.AssignmentStatusEvaluated).
		Select("AVG(evaluation_score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageScore = *avg
	}

	return stats, nil
}
