package dto

import (
	"time"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

// TaskDTO represents a catalog task in API responses
type TaskDTO struct {
	ID          uint64                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Difficulty  models.TaskDifficulty `json:"difficulty"`
	Category    models.TaskCategory   `json:"category"`

	TimeLimit int `json:"time_limit"`
	MaxScore  int `json:"max_score"`

	ProblemStatement string              `json:"problem_statement,omitempty"`
	Constraints      string              `json:"constraints,omitempty"`
	Examples         models.ExampleList  `json:"examples,omitempty"`
	TestCases        models.TestCaseList `json:"test_cases,omitempty"`
	Tags             models.StringList   `json:"tags,omitempty"`

	CreatedBy string `json:"created_by,omitempty"`
	IsActive  bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Assignments []AssignmentDTO `json:"assignments,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID         uint64                `json:"id"`
	Title      string                `json:"title"`
	Difficulty models.TaskDifficulty `json:"difficulty"`
	Category   models.TaskCategory   `json:"category"`
	TimeLimit  int                   `json:"time_limit"`
	MaxScore   int                   `json:"max_score"`
	IsActive   bool                  `json:"is_active"`
	CreatedAt  time.Time             `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// AssignmentDTO represents a task assignment in API responses. Hidden test
// case expectations never appear here; candidates see pass/fail only.
type AssignmentDTO struct {
	ID            uint64 `json:"id"`
	TaskID        uint64 `json:"task_id"`
	ApplicationID uint64 `json:"application_id"`

	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`

	AssignedBy string    `json:"assigned_by,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
	DueDate    time.Time `json:"due_date"`

	Status models.AssignmentStatus `json:"status"`

	Submission *SubmissionDTO `json:"submission,omitempty"`
	Evaluation *EvaluationDTO `json:"evaluation,omitempty"`

	Attempts int    `json:"attempts"`
	Notes    string `json:"notes,omitempty"`

	Task *TaskListItemDTO `json:"task,omitempty"`
}

// SubmissionDTO represents a recorded submission
type SubmissionDTO struct {
	Language      string                `json:"language"`
	SubmittedAt   *time.Time            `json:"submitted_at"`
	ExecutionTime int64                 `json:"execution_time"`
	MemoryUsed    float64               `json:"memory_used"`
	TestResults   models.TestResultList `json:"test_results,omitempty"`
}

// EvaluationDTO represents a recorded evaluation
type EvaluationDTO struct {
	Score        *int       `json:"score"`
	Feedback     string     `json:"feedback,omitempty"`
	EvaluatedBy  string     `json:"evaluated_by,omitempty"`
	EvaluatedAt  *time.Time `json:"evaluated_at"`
	PassingScore int        `json:"passing_score"`
}

// AssignmentResultDTO summarizes an assign fan-out
type AssignmentResultDTO struct {
	Created []AssignmentDTO `json:"created"`
	Skipped int             `json:"skipped"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		Difficulty:       task.Difficulty,
		Category:         task.Category,
		TimeLimit:        task.TimeLimit,
		MaxScore:         task.MaxScore,
		ProblemStatement: task.ProblemStatement,
		Constraints:      task.Constraints,
		Examples:         task.Examples,
		TestCases:        task.TestCases,
		Tags:             task.Tags,
		CreatedBy:        task.CreatedBy,
		IsActive:         task.IsActive,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = make([]AssignmentDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignments[i] = ToAssignmentDTO(assignment)
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to its list form
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:         task.ID,
		Title:      task.Title,
		Difficulty: task.Difficulty,
		Category:   task.Category,
		TimeLimit:  task.TimeLimit,
		MaxScore:   task.MaxScore,
		IsActive:   task.IsActive,
		CreatedAt:  task.CreatedAt,
	}
}

// ToAssignmentDTO converts a TaskAssignment model to AssignmentDTO
func ToAssignmentDTO(assignment models.TaskAssignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:             assignment.ID,
		TaskID:         assignment.TaskID,
		ApplicationID:  assignment.ApplicationID,
		CandidateName:  assignment.CandidateName,
		CandidateEmail: assignment.CandidateEmail,
		AssignedBy:     assignment.AssignedBy,
		AssignedAt:     assignment.AssignedAt,
		DueDate:        assignment.DueDate,
		Status:         assignment.Status,
		Attempts:       assignment.Attempts,
		Notes:          assignment.Notes,
	}

	if assignment.Submission.SubmittedAt != nil {
		dto.Submission = &SubmissionDTO{
			Language:      assignment.Submission.Language,
			SubmittedAt:   assignment.Submission.SubmittedAt,
			ExecutionTime: assignment.Submission.ExecutionTime,
			MemoryUsed:    assignment.Submission.MemoryUsed,
			TestResults:   assignment.Submission.TestResults,
		}
	}

	if assignment.Evaluation.EvaluatedAt != nil {
		dto.Evaluation = &EvaluationDTO{
			Score:        assignment.Evaluation.Score,
			Feedback:     assignment.Evaluation.Feedback,
			EvaluatedBy:  assignment.Evaluation.EvaluatedBy,
			EvaluatedAt:  assignment.Evaluation.EvaluatedAt,
			PassingScore: assignment.Evaluation.PassingScore,
		}
	}

	// Include the task if preloaded
	if assignment.Task.ID != 0 {
		task := ToTaskListItemDTO(assignment.Task)
		dto.Task = &task
	}

	return dto
}
