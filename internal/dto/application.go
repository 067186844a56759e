package dto

import (
	"time"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	Branch     string  `json:"branch"`
	Year       string  `json:"year"`
	RollNumber string  `json:"roll_number,omitempty"`
	CGPA       float64 `json:"cgpa,omitempty"`

	Role          string `json:"role"`
	ResumeLink    string `json:"resume_link,omitempty"`
	PortfolioLink string `json:"portfolio_link,omitempty"`
	GithubLink    string `json:"github_link,omitempty"`
	LinkedinLink  string `json:"linkedin_link,omitempty"`

	PreviousExperience string   `json:"previous_experience,omitempty"`
	Skills             []string `json:"skills"`
	WhyJoinClub        string   `json:"why_join_club,omitempty"`
	Expectations       string   `json:"expectations,omitempty"`

	Status models.ApplicationStatus `json:"status"`

	InterviewSlotID *uint64           `json:"interview_slot_id,omitempty"`
	InterviewSlot   *InterviewSlotDTO `json:"interview_slot,omitempty"`
	InterviewDate   *time.Time        `json:"interview_date,omitempty"`
	InterviewTime   string            `json:"interview_time,omitempty"`
	Interviewer     string            `json:"interviewer,omitempty"`
	InterviewLink   string            `json:"interview_link,omitempty"`

	AdminNotes     string `json:"admin_notes,omitempty"`
	InternalRating *int   `json:"internal_rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationListItemDTO represents an application in list responses
// (minimal data)
type ApplicationListItemDTO struct {
	ID        uint64                   `json:"id"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	Branch    string                   `json:"branch"`
	Year      string                   `json:"year"`
	Role      string                   `json:"role"`
	Status    models.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

// ApplicationListResponse represents a paginated list of applications
type ApplicationListResponse struct {
	Applications []ApplicationListItemDTO `json:"applications"`
	Page         int                      `json:"page"`
	PageSize     int                      `json:"page_size"`
	TotalCount   int64                    `json:"total_count"`
	TotalPages   int                      `json:"total_pages"`
}

// ToApplicationDTO converts an Application model to ApplicationDTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:                 app.ID,
		Name:               app.Name,
		Email:              app.Email,
		Phone:              app.Phone,
		Branch:             app.Branch,
		Year:               app.Year,
		RollNumber:         app.RollNumber,
		CGPA:               app.CGPA,
		Role:               app.Role,
		ResumeLink:         app.ResumeLink,
		PortfolioLink:      app.PortfolioLink,
		GithubLink:         app.GithubLink,
		LinkedinLink:       app.LinkedinLink,
		PreviousExperience: app.PreviousExperience,
		Skills:             app.Skills,
		WhyJoinClub:        app.WhyJoinClub,
		Expectations:       app.Expectations,
		Status:             app.Status,
		InterviewSlotID:    app.InterviewSlotID,
		InterviewDate:      app.InterviewDate,
		InterviewTime:      app.InterviewTime,
		Interviewer:        app.Interviewer,
		InterviewLink:      app.InterviewLink,
		AdminNotes:         app.AdminNotes,
		InternalRating:     app.InternalRating,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
	}

	// Include the bound slot if preloaded
	if app.InterviewSlot != nil {
		slot := ToInterviewSlotDTO(*app.InterviewSlot)
		dto.InterviewSlot = &slot
	}

	return dto
}

// ToApplicationListItemDTO converts an Application model to its list form
func ToApplicationListItemDTO(app models.Application) ApplicationListItemDTO {
	return ApplicationListItemDTO{
		ID:        app.ID,
		Name:      app.Name,
		Email:     app.Email,
		Branch:    app.Branch,
		Year:      app.Year,
		Role:      app.Role,
		Status:    app.Status,
		CreatedAt: app.CreatedAt,
	}
}
