package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/codebusters-club/recruitment-api/internal/constants"
	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrNoApplicationsToAssign = errors.New("no applications eligible for assignment")
	ErrAlreadySubmitted       = errors.New("assignment has already been submitted")
	ErrSubmissionOverdue      = errors.New("submission deadline has passed")
	ErrNotSubmitted           = errors.New("assignment has not been submitted yet")
	ErrInvalidScore           = errors.New("score must be between 0 and the task's max score")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// TaskService handles the coding-task catalog and the assignment pipeline.
type TaskService struct {
	taskRepo       repository.TaskRepository
	assignmentRepo repository.AssignmentRepository
	appRepo        repository.ApplicationRepository
	notifier       Notifier
	runner         Runner
	aiService      *AIService
	now            func() time.Time
}

// NewTaskService creates a new TaskService. notifier and aiService may be
// nil; runner falls back to SimulatedRunner when nil.
func NewTaskService(
	taskRepo repository.TaskRepository,
	assignmentRepo repository.AssignmentRepository,
	appRepo repository.ApplicationRepository,
	notifier Notifier,
	runner Runner,
	aiService *AIService,
) *TaskService {
	if runner == nil {
		runner = SimulatedRunner{}
	}
	return &TaskService{
		taskRepo:       taskRepo,
		assignmentRepo: assignmentRepo,
		appRepo:        appRepo,
		notifier:       notifier,
		runner:         runner,
		aiService:      aiService,
		now:            time.Now,
	}
}

// CreateTaskInput represents a new catalog entry.
type CreateTaskInput struct {
	Title            string
	Description      string
	Difficulty       models.TaskDifficulty
	Category         models.TaskCategory
	TimeLimit        int
	MaxScore         int
	ProblemStatement string
	Constraints      string
	Examples         models.ExampleList
	TestCases        models.TestCaseList
	Tags             models.StringList
	CreatedBy        string
}

// CreateTask adds a task to the catalog, filling in catalog defaults.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	task := &models.Task{
		Title:            input.Title,
		Description:      input.Description,
		Difficulty:       input.Difficulty,
		Category:         input.Category,
		TimeLimit:        input.TimeLimit,
		MaxScore:         input.MaxScore,
		ProblemStatement: input.ProblemStatement,
		Constraints:      input.Constraints,
		Examples:         input.Examples,
		TestCases:        input.TestCases,
		Tags:             input.Tags,
		CreatedBy:        input.CreatedBy,
		IsActive:         true,
	}

	if task.Difficulty == "" {
		task.Difficulty = models.DifficultyMedium
	}
	if task.Category == "" {
		task.Category = models.CategoryProgramming
	}
	if task.TimeLimit <= 0 {
		task.TimeLimit = constants.DefaultTimeLimit
	}
	if task.MaxScore <= 0 {
		task.MaxScore = constants.DefaultMaxScore
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	Difficulty       *models.TaskDifficulty
	Category         *models.TaskCategory
	TimeLimit        *int
	MaxScore         *int
	ProblemStatement *string
	Constraints      *string
	Examples         *models.ExampleList
	TestCases        *models.TestCaseList
	Tags             *models.StringList
	IsActive         *bool
}

// UpdateTask applies a partial update to a catalog task.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Difficulty != nil {
		task.Difficulty = *input.Difficulty
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.TimeLimit != nil {
		task.TimeLimit = *input.TimeLimit
	}
	if input.MaxScore != nil {
		task.MaxScore = *input.MaxScore
	}
	if input.ProblemStatement != nil {
		task.ProblemStatement = *input.ProblemStatement
	}
	if input.Constraints != nil {
		task.Constraints = *input.Constraints
	}
	if input.Examples != nil {
		task.Examples = *input.Examples
	}
	if input.TestCases != nil {
		task.TestCases = *input.TestCases
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task and all of its assignments.
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetTask returns one task with its assignments preloaded.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Assignments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns catalog tasks matching the filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// AssignTasksInput fans one task out to a set of applications.
type AssignTasksInput struct {
	TaskID         uint64
	ApplicationIDs []uint64
	AssignedBy     string
	DueDate        time.Time
	Notes          string
}

// Assign creates one assignment per application. Applications that already
// hold this task, and ids that resolve to no application, are skipped
// silently; the skip count is returned alongside the created assignments.
func (s *TaskService) Assign(input AssignTasksInput) ([]models.TaskAssignment, int, error) {
	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTaskNotFound
		}
		return nil, 0, fmt.Errorf("failed to find task: %w", err)
	}

	var created []models.TaskAssignment
	skipped := 0

	for _, appID := range input.ApplicationIDs {
		exists, err := s.assignmentRepo.Exists(input.TaskID, appID)
		if err != nil {
			return created, skipped, fmt.Errorf("failed to check assignment: %w", err)
		}
		if exists {
			skipped++
			continue
		}

		app, err := s.appRepo.FindByID(appID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("skipping assignment: application %d not found", appID)
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("failed to find application: %w", err)
		}

		assignment := models.TaskAssignment{
			TaskID:         task.ID,
			ApplicationID:  app.ID,
			CandidateName:  app.Name,
			CandidateEmail: app.Email,
			AssignedBy:     input.AssignedBy,
			AssignedAt:     s.now(),
			DueDate:        input.DueDate,
			Status:         models.AssignmentStatusAssigned,
			Notes:          input.Notes,
		}
		assignment.Evaluation.PassingScore = constants.DefaultPassingScore

		if err := s.assignmentRepo.Create(&assignment); err != nil {
			return created, skipped, fmt.Errorf("failed to create assignment: %w", err)
		}
		created = append(created, assignment)

		if s.notifier != nil {
			if err := s.notifier.SendTaskAssigned(&assignment, task); err != nil {
				log.Printf("failed to send task assignment email to %s: %v", app.Email, err)
			}
		}
	}

	if len(created) == 0 && skipped == 0 {
		return nil, 0, ErrNoApplicationsToAssign
	}

	return created, skipped, nil
}

// GetAssignment returns one assignment with its task preloaded.
func (s *TaskService) GetAssignment(id uint64) (*models.TaskAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id, "Task")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// ListAssignmentsByTask lists a task's assignments.
func (s *TaskService) ListAssignmentsByTask(taskID uint64) ([]models.TaskAssignment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return s.assignmentRepo.ListByTask(taskID)
}

// ListAssignmentsByApplication lists an application's assignments.
func (s *TaskService) ListAssignmentsByApplication(applicationID uint64) ([]models.TaskAssignment, error) {
	return s.assignmentRepo.ListByApplication(applicationID)
}

// Submit records a candidate's solution on an assignment. A submission after
// the due date marks the assignment Overdue and is rejected; a second
// submission on an already submitted or evaluated assignment is rejected.
// The attempt counter is informational and carries no hard cap.
func (s *TaskService) Submit(id uint64, code, language string) (*models.TaskAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id, "Task")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	switch assignment.Status {
	case models.AssignmentStatusSubmitted, models.AssignmentStatusEvaluated:
		return nil, ErrAlreadySubmitted
	}

	now := s.now()
	if now.After(assignment.DueDate) {
		assignment.Status = models.AssignmentStatusOverdue
		if err := s.assignmentRepo.Update(assignment); err != nil {
			return nil, fmt.Errorf("failed to mark assignment overdue: %w", err)
		}
		return nil, ErrSubmissionOverdue
	}

	assignment.Submission.Code = code
	assignment.Submission.Language = language
	assignment.Submission.SubmittedAt = &now
	assignment.Attempts++

	result, err := s.runner.Run(&assignment.Task, code, language)
	if err != nil {
		log.Printf("failed to run submission for assignment %d: %v", assignment.ID, err)
	} else {
		assignment.Submission.TestResults = result.TestResults
		assignment.Submission.ExecutionTime = result.ExecutionTime
		assignment.Submission.MemoryUsed = result.MemoryUsed
	}

	assignment.Status = models.AssignmentStatusSubmitted
	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	return assignment, nil
}

// Evaluate scores a submitted assignment. Evaluation requires status
// Submitted; the score must fall within [0, task.MaxScore].
func (s *TaskService) Evaluate(id uint64, score int, feedback, evaluatedBy string) (*models.TaskAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id, "Task")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if assignment.Status != models.AssignmentStatusSubmitted {
		return nil, ErrNotSubmitted
	}

	maxScore := assignment.Task.MaxScore
	if maxScore <= 0 {
		maxScore = constants.DefaultMaxScore
	}
	if score < 0 || score > maxScore {
		return nil, ErrInvalidScore
	}

	now := s.now()
	assignment.Evaluation.Score = &score
	assignment.Evaluation.Feedback = feedback
	assignment.Evaluation.EvaluatedBy = evaluatedBy
	assignment.Evaluation.EvaluatedAt = &now
	assignment.Status = models.AssignmentStatusEvaluated

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to record evaluation: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendTaskEvaluated(assignment); err != nil {
			log.Printf("failed to send evaluation email to %s: %v", assignment.CandidateEmail, err)
		}
	}

	return assignment, nil
}

// Stats summarizes the assignment pipeline.
func (s *TaskService) Stats() (*repository.AssignmentStats, error) {
	stats, err := s.assignmentRepo.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate assignment stats: %w", err)
	}
	return stats, nil
}

// GenerateTaskDrafts drafts catalog tasks from free-form text via the AI
// service.
func (s *TaskService) GenerateTaskDrafts(ctx context.Context, text string) ([]GeneratedTaskDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	return s.aiService.GenerateTaskDrafts(ctx, text)
}
