package repository

import (
	"time"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

// GroupCount is a (value, count) aggregation row.
type GroupCount struct {
	Key   string `json:"key" gorm:"column:label"`
	Count int64  `json:"count" gorm:"column:count"`
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(app *models.Application) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Application, error)

	// FindByEmail finds an application by its unique email
	FindByEmail(email string) (*models.Application, error)

	// List retrieves applications with filtering and pagination,
	// newest first
	List(filter ApplicationFilter) ([]models.Application, int64, error)

	// ListByStatus lists applications with the given status in id order
	ListByStatus(status models.ApplicationStatus) ([]models.Application, error)

	// ListAll returns every application, newest first
	ListAll() ([]models.Application, error)

	// CountByStatus counts applications with the given status
	CountByStatus(status models.ApplicationStatus) (int64, error)

	// CountGroupedByBranch returns per-branch application counts
	CountGroupedByBranch() ([]GroupCount, error)

	// CountGroupedByRole returns per-role application counts
	CountGroupedByRole() ([]GroupCount, error)

	// Count returns the total number of applications
	Count() (int64, error)

	// Update updates an application
	Update(app *models.Application) error

	// Delete permanently removes an application and frees any interview
	// slot booked for it; the email becomes reusable
	Delete(id uint64) error
}

// ApplicationFilter holds filtering options for listing applications
type ApplicationFilter struct {
	Status   *models.ApplicationStatus
	Branch   string
	Year     string
	Role     string
	Page     int
	PageSize int
}

// SlotRepository defines the interface for interview slot data access
type SlotRepository interface {
	// CreateBatch inserts a batch of slots
	CreateBatch(slots []models.InterviewSlot) error

	// FindByID finds a slot by ID
	FindByID(id uint64) (*models.InterviewSlot, error)

	// FindByApplication finds the slot currently bound to an application
	FindByApplication(applicationID uint64) (*models.InterviewSlot, error)

	// Exists reports whether a slot with the given (date, startTime)
	// pair exists
	Exists(date time.Time, startTime string) (bool, error)

	// List retrieves slots sorted by (date, start_time)
	List(filter SlotFilter) ([]models.InterviewSlot, error)

	// ListAvailable lists unbooked slots sorted by (date, start_time)
	ListAvailable() ([]models.InterviewSlot, error)

	// ListBooked lists booked slots with their applications preloaded,
	// sorted by (date, start_time)
	ListBooked() ([]models.InterviewSlot, error)

	// CountAvailable counts unbooked slots
	CountAvailable() (int64, error)

	// Book atomically books the slot for the application and persists the
	// application's interview fields in the same transaction. Returns
	// ErrSlotTaken if the slot was booked in the meantime.
	Book(slotID uint64, app *models.Application) error

	// Release unbooks a slot and clears its application reference
	Release(slotID uint64) error

	// Update updates a slot
	Update(slot *models.InterviewSlot) error
}

// SlotFilter holds filtering options for listing slots
type SlotFilter struct {
	Date          *time.Time
	AvailableOnly bool
}

// TaskRepository defines the interface for task catalog data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task and all of its assignments in one transaction
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Difficulty *models.TaskDifficulty
	Category   *models.TaskCategory
	ActiveOnly bool
	Page       int
	PageSize   int
}

// AssignmentRepository defines the interface for task assignment data access
type AssignmentRepository interface {
	// Create creates a new assignment
	Create(assignment *models.TaskAssignment) error

	// FindByID finds an assignment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TaskAssignment, error)

	// Exists reports whether an assignment for (taskID, applicationID)
	// exists
	Exists(taskID, applicationID uint64) (bool, error)

	// ListByTask lists assignments of a task
	ListByTask(taskID uint64) ([]models.TaskAssignment, error)

	// ListByApplication lists assignments of an application
	ListByApplication(applicationID uint64) ([]models.TaskAssignment, error)

	// Update updates an assignment
	Update(assignment *models.TaskAssignment) error

	// Stats aggregates assignment counts and the average evaluation score
	Stats() (*AssignmentStats, error)
}

// AssignmentStats summarizes the assignment pipeline.
type AssignmentStats struct {
	Total        int64   `json:"total"`
	Submitted    int64   `json:"submitted"`
	Evaluated    int64   `json:"evaluated"`
	Overdue      int64   `json:"overdue"`
	AverageScore float64 `json:"average_score"`
}
