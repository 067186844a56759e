package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codebusters-club/recruitment-api/internal/dto"
	apierrors "github.com/codebusters-club/recruitment-api/internal/errors"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"github.com/codebusters-club/recruitment-api/internal/services"
)

// InterviewHandler coordinates interview-related HTTP handlers.
type InterviewHandler struct {
	interviewService *services.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviewService *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// ListSlots returns interview slots, optionally filtered by date or
// availability.
func (h *InterviewHandler) ListSlots(c *gin.Context) {
	filter := repository.SlotFilter{
		AvailableOnly: c.Query("available") == "true",
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}

	slots, err := h.interviewService.ListSlots(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch slots")
		return
	}

	items := make([]dto.InterviewSlotDTO, len(slots))
	for i, slot := range slots {
		items[i] = dto.ToInterviewSlotDTO(slot)
	}

	c.JSON(http.StatusOK, gin.H{"slots": items})
}

// CreateSlots creates slots over a date range from explicit time windows.
func (h *InterviewHandler) CreateSlots(c *gin.Context) {
	type WindowRequest struct {
		Start       string `json:"start" binding:"required"`
		End         string `json:"end" binding:"required"`
		Interviewer string `json:"interviewer"`
	}
	type CreateSlotsRequest struct {
		StartDate string          `json:"start_date" binding:"required"`
		EndDate   string          `json:"end_date" binding:"required"`
		Windows   []WindowRequest `json:"windows"`
	}

	var req CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		apierrors.BadRequest(c, "end_date must not precede start_date")
		return
	}

	windows := make([]services.TimeWindow, len(req.Windows))
	for i, w := range req.Windows {
		windows[i] = services.TimeWindow{
			Start:       w.Start,
			End:         w.End,
			Interviewer: w.Interviewer,
		}
	}

	slots, err := h.interviewService.CreateSlots(start, end, windows)
	if err != nil {
		apierrors.InternalError(c, "Failed to create slots")
		return
	}

	items := make([]dto.InterviewSlotDTO, len(slots))
	for i, slot := range slots {
		items[i] = dto.ToInterviewSlotDTO(slot)
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": len(items),
		"slots":   items,
	})
}

// AutoProvision tops up the free-slot pool to cover all shortlisted
// applications.
func (h *InterviewHandler) AutoProvision(c *gin.Context) {
	type ProvisionRequest struct {
		DaysAhead   int `json:"days_ahead"`
		SlotsPerDay int `json:"slots_per_day"`
	}

	// Body is optional; zero values fall back to the defaults.
	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = ProvisionRequest{}
	}

	created, err := h.interviewService.AutoProvision(req.DaysAhead, req.SlotsPerDay)
	if err != nil {
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
	})
}

// AutoAssign pairs every shortlisted application with a free slot.
func (h *InterviewHandler) AutoAssign(c *gin.Context) {
	pairings, err := h.interviewService.AutoAssign()
	if err != nil {
		// Partial progress is reported alongside the failure.
		if len(pairings) > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"assigned": dto.ToPairingDTOs(pairings),
				"error":    err.Error(),
			})
			return
		}
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assigned": dto.ToPairingDTOs(pairings),
	})
}

// Reschedule moves an application's interview to a different free slot.
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type RescheduleRequest struct {
		SlotID uint64 `json:"slot_id" binding:"required"`
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	slot, err := h.interviewService.Reschedule(id, req.SlotID)
	if err != nil {
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewSlotDTO(*slot))
}

// Export streams booked interviews as a CSV download.
func (h *InterviewHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("interviews-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.interviewService.ExportCSV(c.Writer); err != nil {
		apierrors.InternalError(c, "Failed to export interviews")
		return
	}
}

func respondInterviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrSlotNotFound),
		errors.Is(err, services.ErrNoScheduledInterview):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSlotUnavailable):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNoShortlistedApplications),
		errors.Is(err, services.ErrInsufficientCapacity):
		apierrors.PreconditionFailed(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
