package models

import "time"

type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "Applied"
	StatusUnderReview        ApplicationStatus = "Under Review"
	StatusShortlisted        ApplicationStatus = "Shortlisted"
	StatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	StatusSelected           ApplicationStatus = "Selected"
	StatusRejected           ApplicationStatus = "Rejected"
)

// ValidStatus reports whether s is one of the known recruitment statuses.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusShortlisted,
		StatusInterviewScheduled, StatusSelected, StatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID uint64 `gorm:"primarykey" json:"id"`

	// Basic info
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone string `gorm:"type:varchar(20)" json:"phone"`

	// Academic info
	Branch     string  `gorm:"type:varchar(100);not null;index" json:"branch"`
	Year       string  `gorm:"type:varchar(20);not null;index" json:"year"`
	RollNumber string  `gorm:"type:varchar(50)" json:"roll_number"`
	CGPA       float64 `json:"cgpa"`

	// Application info
	Role          string `gorm:"type:varchar(100);not null;index" json:"role"`
	ResumeLink    string `json:"resume_link"`
	PortfolioLink string `json:"portfolio_link"`
	GithubLink    string `json:"github_link"`
	LinkedinLink  string `json:"linkedin_link"`

	// Experience & skills
	PreviousExperience string     `gorm:"type:text" json:"previous_experience"`
	Skills             StringList `gorm:"type:text" json:"skills"`
	WhyJoinClub        string     `gorm:"type:text" json:"why_join_club"`
	Expectations       string     `gorm:"type:text" json:"expectations"`

	Status ApplicationStatus `gorm:"type:varchar(30);not null;default:'Applied';index" json:"status"`

	// Interview binding. Date/time/interviewer/link are denormalized copies
	// of the bound slot, kept for display.
	InterviewSlotID *uint64        `json:"interview_slot_id"`
	InterviewSlot   *InterviewSlot `gorm:"foreignKey:InterviewSlotID" json:"interview_slot,omitempty"`
	InterviewDate   *time.Time     `json:"interview_date"`
	InterviewTime   string         `gorm:"type:varchar(15)" json:"interview_time"`
	Interviewer     string         `gorm:"type:varchar(100)" json:"interviewer"`
	InterviewLink   string         `json:"interview_link"`

	// Admin metadata
	AdminNotes     string `gorm:"type:text" json:"admin_notes"`
	InternalRating *int   `json:"internal_rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
