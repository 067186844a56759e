package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codebusters-club/recruitment-api/internal/dto"
	apierrors "github.com/codebusters-club/recruitment-api/internal/errors"
	"github.com/codebusters-club/recruitment-api/internal/middleware"
	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"github.com/codebusters-club/recruitment-api/internal/services"
	"github.com/codebusters-club/recruitment-api/internal/utils"
)

// TaskHandler coordinates task and assignment HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask adds a task to the catalog.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateRequest struct {
		Title            string              `json:"title" binding:"required,min=3,max=255"`
		Description      string              `json:"description" binding:"required"`
		Difficulty       string              `json:"difficulty"`
		Category         string              `json:"category"`
		TimeLimit        int                 `json:"time_limit"`
		MaxScore         int                 `json:"max_score"`
		ProblemStatement string              `json:"problem_statement"`
		Constraints      string              `json:"constraints"`
		Examples         models.ExampleList  `json:"examples"`
		TestCases        models.TestCaseList `json:"test_cases"`
		Tags             models.StringList   `json:"tags"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	createdBy, _ := middleware.GetAdminID(c)

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Difficulty:       models.TaskDifficulty(req.Difficulty),
		Category:         models.TaskCategory(req.Category),
		TimeLimit:        req.TimeLimit,
		MaxScore:         req.MaxScore,
		ProblemStatement: req.ProblemStatement,
		Constraints:      req.Constraints,
		Examples:         req.Examples,
		TestCases:        req.TestCases,
		Tags:             req.Tags,
		CreatedBy:        createdBy,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns catalog tasks with filtering and pagination.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		ActiveOnly: c.Query("active") == "true",
		Page:       params.Page,
		PageSize:   params.Limit,
	}

	if d := c.Query("difficulty"); d != "" {
		difficulty := models.TaskDifficulty(d)
		filter.Difficulty = &difficulty
	}
	if cat := c.Query("category"); cat != "" {
		category := models.TaskCategory(cat)
		filter.Category = &category
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	items := make([]dto.TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskListItemDTO(task)
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:      items,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: totalPages(total, params.Limit),
	})
}

// GetTask returns one task with its assignments.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a catalog task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Title            *string                `json:"title"`
		Description      *string                `json:"description"`
		Difficulty       *models.TaskDifficulty `json:"difficulty"`
		Category         *models.TaskCategory   `json:"category"`
		TimeLimit        *int                   `json:"time_limit"`
		MaxScore         *int                   `json:"max_score"`
		ProblemStatement *string                `json:"problem_statement"`
		Constraints      *string                `json:"constraints"`
		Examples         *models.ExampleList    `json:"examples"`
		TestCases        *models.TestCaseList   `json:"test_cases"`
		Tags             *models.StringList     `json:"tags"`
		IsActive         *bool                  `json:"is_active"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Difficulty:       req.Difficulty,
		Category:         req.Category,
		TimeLimit:        req.TimeLimit,
		MaxScore:         req.MaxScore,
		ProblemStatement: req.ProblemStatement,
		Constraints:      req.Constraints,
		Examples:         req.Examples,
		TestCases:        req.TestCases,
		Tags:             req.Tags,
		IsActive:         req.IsActive,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task and all of its assignments.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// Assign fans a task out to a set of applications.
func (h *TaskHandler) Assign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		ApplicationIDs []uint64  `json:"application_ids" binding:"required,min=1"`
		DueDate        time.Time `json:"due_date" binding:"required"`
		Notes          string    `json:"notes"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignedBy, _ := middleware.GetAdminID(c)

	created, skipped, err := h.taskService.Assign(services.AssignTasksInput{
		TaskID:         id,
		ApplicationIDs: req.ApplicationIDs,
		AssignedBy:     assignedBy,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	result := dto.AssignmentResultDTO{
		Created: make([]dto.AssignmentDTO, len(created)),
		Skipped: skipped,
	}
	for i, assignment := range created {
		result.Created[i] = dto.ToAssignmentDTO(assignment)
	}

	c.JSON(http.StatusCreated, result)
}

// ListAssignments lists a task's assignments.
func (h *TaskHandler) ListAssignments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignments, err := h.taskService.ListAssignmentsByTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.AssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		items[i] = dto.ToAssignmentDTO(assignment)
	}

	c.JSON(http.StatusOK, gin.H{"assignments": items})
}

// ListApplicationAssignments lists the assignments held by an application.
func (h *TaskHandler) ListApplicationAssignments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignments, err := h.taskService.ListAssignmentsByApplication(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.AssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		items[i] = dto.ToAssignmentDTO(assignment)
	}

	c.JSON(http.StatusOK, gin.H{"assignments": items})
}

// GetAssignment returns one assignment. This endpoint is public: candidates
// open their assignment through a mailed link.
func (h *TaskHandler) GetAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignment, err := h.taskService.GetAssignment(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// Submit records a candidate's solution.
func (h *TaskHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type SubmitRequest struct {
		Code     string `json:"code" binding:"required"`
		Language string `json:"language" binding:"required"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.taskService.Submit(id, req.Code, req.Language)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// Evaluate scores a submitted assignment.
func (h *TaskHandler) Evaluate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type EvaluateRequest struct {
		Score    *int   `json:"score" binding:"required"`
		Feedback string `json:"feedback"`
	}

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	evaluatedBy, _ := middleware.GetAdminID(c)

	assignment, err := h.taskService.Evaluate(id, *req.Score, req.Feedback, evaluatedBy)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// Stats summarizes the assignment pipeline.
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.taskService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to aggregate stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Generate drafts catalog tasks from free-form text via the AI service.
func (h *TaskHandler) Generate(c *gin.Context) {
	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.GenerateTaskDrafts(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadySubmitted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSubmissionOverdue),
		errors.Is(err, services.ErrNotSubmitted):
		apierrors.PreconditionFailed(c, err.Error())
	case errors.Is(err, services.ErrInvalidScore),
		errors.Is(err, services.ErrNoApplicationsToAssign):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
