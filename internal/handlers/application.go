package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codebusters-club/recruitment-api/internal/dto"
	apierrors "github.com/codebusters-club/recruitment-api/internal/errors"
	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"github.com/codebusters-club/recruitment-api/internal/services"
	"github.com/codebusters-club/recruitment-api/internal/utils"
)

// ApplicationHandler coordinates application-related HTTP handlers.
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
	}
}

// Create accepts a public application form submission.
func (h *ApplicationHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name               string   `json:"name" binding:"required,min=2,max=255"`
		Email              string   `json:"email" binding:"required,email"`
		Phone              string   `json:"phone"`
		Branch             string   `json:"branch" binding:"required"`
		Year               string   `json:"year" binding:"required"`
		RollNumber         string   `json:"roll_number"`
		CGPA               float64  `json:"cgpa" binding:"omitempty,min=0,max=10"`
		Role               string   `json:"role" binding:"required"`
		ResumeLink         string   `json:"resume_link"`
		PortfolioLink      string   `json:"portfolio_link"`
		GithubLink         string   `json:"github_link"`
		LinkedinLink       string   `json:"linkedin_link"`
		PreviousExperience string   `json:"previous_experience"`
		Skills             []string `json:"skills"`
		WhyJoinClub        string   `json:"why_join_club"`
		Expectations       string   `json:"expectations"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.Create(services.CreateApplicationInput{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Branch:             req.Branch,
		Year:               req.Year,
		RollNumber:         req.RollNumber,
		CGPA:               req.CGPA,
		Role:               req.Role,
		ResumeLink:         req.ResumeLink,
		PortfolioLink:      req.PortfolioLink,
		GithubLink:         req.GithubLink,
		LinkedinLink:       req.LinkedinLink,
		PreviousExperience: req.PreviousExperience,
		Skills:             req.Skills,
		WhyJoinClub:        req.WhyJoinClub,
		Expectations:       req.Expectations,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// List returns applications with filtering and pagination.
func (h *ApplicationHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.ApplicationFilter{
		Branch:   c.Query("branch"),
		Year:     c.Query("year"),
		Role:     c.Query("role"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ApplicationStatus(statusStr)
		if !models.ValidStatus(status) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}

	apps, total, err := h.appService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch applications")
		return
	}

	items := make([]dto.ApplicationListItemDTO, len(apps))
	for i, app := range apps {
		items[i] = dto.ToApplicationListItemDTO(app)
	}

	c.JSON(http.StatusOK, dto.ApplicationListResponse{
		Applications: items,
		Page:         params.Page,
		PageSize:     params.Limit,
		TotalCount:   total,
		TotalPages:   totalPages(total, params.Limit),
	})
}

// Get returns one application.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	app, err := h.appService.Get(id)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// Update applies a partial admin update to an application.
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Name           *string  `json:"name"`
		Phone          *string  `json:"phone"`
		RollNumber     *string  `json:"roll_number"`
		CGPA           *float64 `json:"cgpa"`
		AdminNotes     *string  `json:"admin_notes"`
		InternalRating *int     `json:"internal_rating"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.Update(id, services.UpdateApplicationInput{
		Name:           req.Name,
		Phone:          req.Phone,
		RollNumber:     req.RollNumber,
		CGPA:           req.CGPA,
		AdminNotes:     req.AdminNotes,
		InternalRating: req.InternalRating,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// UpdateStatus moves one application to a new status.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type StatusRequest struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.UpdateStatus(id, req.Status)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// BulkUpdateStatus moves a set of applications to a new status, reporting
// per-item outcomes.
func (h *ApplicationHandler) BulkUpdateStatus(c *gin.Context) {
	type BulkStatusRequest struct {
		IDs    []uint64                 `json:"ids" binding:"required,min=1"`
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}

	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	results, err := h.appService.BulkUpdateStatus(req.IDs, req.Status)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Delete removes an application.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.appService.Delete(id); err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Application deleted successfully",
	})
}

// Stats returns the dashboard overview.
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.appService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to aggregate stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Export streams all applications as a CSV download.
func (h *ApplicationHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("applications-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.appService.ExportCSV(c.Writer); err != nil {
		apierrors.InternalError(c, "Failed to export applications")
		return
	}
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidRating):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
