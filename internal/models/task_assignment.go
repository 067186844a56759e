package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "Assigned"
	AssignmentStatusInProgress AssignmentStatus = "In Progress"
	AssignmentStatusSubmitted  AssignmentStatus = "Submitted"
	AssignmentStatusEvaluated  AssignmentStatus = "Evaluated"
	AssignmentStatusOverdue    AssignmentStatus = "Overdue"
)

// Submission holds the candidate's solution payload.
type Submission struct {
	Code          string         `gorm:"type:text" json:"code,omitempty"`
	Language      string         `gorm:"type:varchar(20)" json:"language,omitempty"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	ExecutionTime int64          `json:"execution_time,omitempty"` // milliseconds
	MemoryUsed    float64        `json:"memory_used,omitempty"`    // MB
	TestResults   TestResultList `gorm:"type:text" json:"test_results,omitempty"`
}

// Evaluation holds the admin's review of a submission.
type Evaluation struct {
	Score        *int       `json:"score,omitempty"`
	Feedback     string     `gorm:"type:text" json:"feedback,omitempty"`
	EvaluatedBy  string     `gorm:"type:varchar(100)" json:"evaluated_by,omitempty"`
	EvaluatedAt  *time.Time `json:"evaluated_at,omitempty"`
	PassingScore int        `gorm:"default:60" json:"passing_score,omitempty"`
}

// TaskAssignment links one task to one application; the pair is unique.
// Candidate name/email are a snapshot taken at assignment time.
type TaskAssignment struct {
	ID            uint64 `gorm:"primarykey" json:"id"`
	TaskID        uint64 `gorm:"not null;uniqueIndex:idx_assignments_task_app" json:"task_id"`
	ApplicationID uint64 `gorm:"not null;uniqueIndex:idx_assignments_task_app" json:"application_id"`

	CandidateName  string `gorm:"type:varchar(255);not null" json:"candidate_name"`
	CandidateEmail string `gorm:"type:varchar(255);not null" json:"candidate_email"`

	AssignedBy string    `gorm:"type:varchar(100)" json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
	DueDate    time.Time `gorm:"not null;index" json:"due_date"`

	Status AssignmentStatus `gorm:"type:varchar(20);not null;default:'Assigned';index" json:"status"`

	Submission Submission `gorm:"embedded;embeddedPrefix:submission_" json:"submission"`
	Evaluation Evaluation `gorm:"embedded;embeddedPrefix:evaluation_" json:"evaluation"`

	// Declared cap is 3; the counter is informational and not enforced as a
	// hard rejection.
	Attempts int    `gorm:"not null;default:0" json:"attempts"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task        Task        `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
}
