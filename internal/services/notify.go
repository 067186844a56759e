package services

import (
	"log"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

// Notifier sends candidate-facing emails. All sends are best-effort: the
// engines log failures and never unwind the state change that triggered
// the notification.
type Notifier interface {
	SendInterviewScheduled(app *models.Application, slot *models.InterviewSlot) error
	SendTaskAssigned(assignment *models.TaskAssignment, task *models.Task) error
	SendTaskEvaluated(assignment *models.TaskAssignment) error
}

// Calendar creates calendar events for scheduled interviews and returns a
// shareable link. Best-effort, like Notifier.
type Calendar interface {
	CreateEvent(app *models.Application, slot *models.InterviewSlot) (string, error)
}

// LogNotifier is the fallback Notifier when SMTP is not configured. It only
// logs what would have been sent.
type LogNotifier struct{}

func (LogNotifier) SendInterviewScheduled(app *models.Application, slot *models.InterviewSlot) error {
	log.Printf("notify (log only): interview scheduled for %s on %s %s", app.Email, slot.Date.Format("2006-01-02"), slot.StartTime)
	return nil
}

func (LogNotifier) SendTaskAssigned(assignment *models.TaskAssignment, task *models.Task) error {
	log.Printf("notify (log only): task %q assigned to %s", task.Title, assignment.CandidateEmail)
	return nil
}

func (LogNotifier) SendTaskEvaluated(assignment *models.TaskAssignment) error {
	log.Printf("notify (log only): evaluation sent to %s", assignment.CandidateEmail)
	return nil
}
