package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/codebusters-club/recruitment-api/internal/constants"
	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrEmailTaken          = errors.New("application with this email already exists")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidRating       = errors.New("internal rating must be between 1 and 5")
)

// ApplicationService handles application lifecycle business logic, including
// the status transition engine.
type ApplicationService struct {
	appRepo    repository.ApplicationRepository
	interviews *InterviewService
}

// NewApplicationService creates a new ApplicationService. interviews may be
// nil, in which case the shortlist transition skips slot provisioning.
func NewApplicationService(appRepo repository.ApplicationRepository, interviews *InterviewService) *ApplicationService {
	return &ApplicationService{
		appRepo:    appRepo,
		interviews: interviews,
	}
}

// CreateApplicationInput represents a submitted application form.
type CreateApplicationInput struct {
	Name               string
	Email              string
	Phone              string
	Branch             string
	Year               string
	RollNumber         string
	CGPA               float64
	Role               string
	ResumeLink         string
	PortfolioLink      string
	GithubLink         string
	LinkedinLink       string
	PreviousExperience string
	Skills             []string
	WhyJoinClub        string
	Expectations       string
}

// Create stores a new application in status Applied. Email is the natural
// key: a second application with the same email is rejected.
func (s *ApplicationService) Create(input CreateApplicationInput) (*models.Application, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if _, err := s.appRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	app := &models.Application{
		Name:               input.Name,
		Email:              email,
		Phone:              input.Phone,
		Branch:             input.Branch,
		Year:               input.Year,
		RollNumber:         input.RollNumber,
		CGPA:               input.CGPA,
		Role:               input.Role,
		ResumeLink:         input.ResumeLink,
		PortfolioLink:      input.PortfolioLink,
		GithubLink:         input.GithubLink,
		LinkedinLink:       input.LinkedinLink,
		PreviousExperience: input.PreviousExperience,
		Skills:             input.Skills,
		WhyJoinClub:        input.WhyJoinClub,
		Expectations:       input.Expectations,
		Status:             models.StatusApplied,
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// List returns applications matching the filter, newest first.
func (s *ApplicationService) List(filter repository.ApplicationFilter) ([]models.Application, int64, error) {
	apps, total, err := s.appRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, total, nil
}

// Get returns one application.
func (s *ApplicationService) Get(id uint64) (*models.Application, error) {
	app, err := s.appRepo.FindByID(id, "InterviewSlot")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// UpdateApplicationInput represents a partial admin update.
type UpdateApplicationInput struct {
	Name           *string
	Phone          *string
	RollNumber     *string
	CGPA           *float64
	AdminNotes     *string
	InternalRating *int
}

// Update applies a partial update to an application.
func (s *ApplicationService) Update(id uint64, input UpdateApplicationInput) (*models.Application, error) {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if input.Name != nil {
		app.Name = *input.Name
	}
	if input.Phone != nil {
		app.Phone = *input.Phone
	}
	if input.RollNumber != nil {
		app.RollNumber = *input.RollNumber
	}
	if input.CGPA != nil {
		app.CGPA = *input.CGPA
	}
	if input.AdminNotes != nil {
		app.AdminNotes = *input.AdminNotes
	}
	if input.InternalRating != nil {
		if *input.InternalRating < 1 || *input.InternalRating > 5 {
			return nil, ErrInvalidRating
		}
		app.InternalRating = input.InternalRating
	}

	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return app, nil
}

// UpdateStatus sets an application's status. Any status may move to any
// other status; there is deliberately no adjacency graph (admin override
// flexibility). When the new status is Shortlisted, slot provisioning is
// triggered after the write; a provisioning failure is logged and swallowed,
// never failing the status update itself.
func (s *ApplicationService) UpdateStatus(id uint64, status models.ApplicationStatus) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	app.Status = status
	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if status == models.StatusShortlisted && s.interviews != nil {
		if _, err := s.interviews.EnsureCapacity(constants.DefaultDaysAhead, constants.DefaultSlotsPerDay); err != nil {
			log.Printf("failed to auto-provision interview slots: %v", err)
		}
	}

	return app, nil
}

// StatusUpdateResult reports the outcome of one item of a bulk update.
type StatusUpdateResult struct {
	ID    uint64 `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkUpdateStatus applies UpdateStatus to each id independently. One
// failing id does not block the others; the caller gets a per-item result.
func (s *ApplicationService) BulkUpdateStatus(ids []uint64, status models.ApplicationStatus) ([]StatusUpdateResult, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	results := make([]StatusUpdateResult, 0, len(ids))
	for _, id := range ids {
		result := StatusUpdateResult{ID: id, OK: true}
		if _, err := s.UpdateStatus(id, status); err != nil {
			result.OK = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return results, nil
}

// Delete removes an application.
func (s *ApplicationService) Delete(id uint64) error {
	if _, err := s.appRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to find application: %w", err)
	}

	if err := s.appRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	return nil
}

// ApplicationStats is the dashboard overview.
type ApplicationStats struct {
	Overview struct {
		Total       int64 `json:"total"`
		Applied     int64 `json:"applied"`
		Shortlisted int64 `json:"shortlisted"`
		Selected    int64 `json:"selected"`
		Rejected    int64 `json:"rejected"`
	} `json:"overview"`
	BranchStats []repository.GroupCount `json:"branch_stats"`
	RoleStats   []repository.GroupCount `json:"role_stats"`
}

// Stats aggregates the dashboard counters.
func (s *ApplicationService) Stats() (*ApplicationStats, error) {
	stats := &ApplicationStats{}

	var err error
	if stats.Overview.Total, err = s.appRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	if stats.Overview.Applied, err = s.appRepo.CountByStatus(models.StatusApplied); err != nil {
		return nil, fmt.Errorf("failed to count applied: %w", err)
	}
	if stats.Overview.Shortlisted, err = s.appRepo.CountByStatus(models.StatusShortlisted); err != nil {
		return nil, fmt.Errorf("failed to count shortlisted: %w", err)
	}
	if stats.Overview.Selected, err = s.appRepo.CountByStatus(models.StatusSelected); err != nil {
		return nil, fmt.Errorf("failed to count selected: %w", err)
	}
	if stats.Overview.Rejected, err = s.appRepo.CountByStatus(models.StatusRejected); err != nil {
		return nil, fmt.Errorf("failed to count rejected: %w", err)
	}

	if stats.BranchStats, err = s.appRepo.CountGroupedByBranch(); err != nil {
		return nil, fmt.Errorf("failed to group by branch: %w", err)
	}
	if stats.RoleStats, err = s.appRepo.CountGroupedByRole(); err != nil {
		return nil, fmt.Errorf("failed to group by role: %w", err)
	}

	return stats, nil
}

// ExportCSV writes all applications as CSV.
func (s *ApplicationService) ExportCSV(w io.Writer) error {
	apps, err := s.appRepo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Name", "Email", "Phone", "Branch", "Year", "Role", "Status",
		"Skills", "Experience", "GitHub", "LinkedIn", "Portfolio",
		"Why Join", "Applied Date",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, app := range apps {
		record := []string{
			app.Name, app.Email, app.Phone, app.Branch, app.Year,
			app.Role, string(app.Status),
			strings.Join(app.Skills, "; "),
			app.PreviousExperience,
			app.GithubLink, app.LinkedinLink, app.PortfolioLink,
			app.WhyJoinClub,
			app.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
