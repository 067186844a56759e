package constants

// Session
const (
	SessionCookieName = "recruitment_session"
	ContextKeyAdmin   = "admin_club_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Interview scheduling defaults
const (
	DefaultDaysAhead   = 7
	DefaultSlotsPerDay = 6
	DefaultInterviewer = "TBD"
)

// Task assignment defaults
const (
	DefaultPassingScore   = 60
	DefaultTimeLimit      = 60
	DefaultMaxScore       = 100
	MaxSubmissionAttempts = 3
)

// MaxAIGeneratedTasks caps how many task drafts a single AI call may yield.
const MaxAIGeneratedTasks = 20
