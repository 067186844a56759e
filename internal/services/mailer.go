package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/codebusters-club/recruitment-api/internal/config"
	"github.com/codebusters-club/recruitment-api/internal/models"
)

// SMTPMailer is the production Notifier. It sends plain-text mail over SMTP
// with PLAIN auth.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates a mailer from SMTP configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: auth,
		from: cfg.EmailFrom,
	}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

func (m *SMTPMailer) SendInterviewScheduled(app *models.Application, slot *models.InterviewSlot) error {
	body := fmt.Sprintf(`Dear %s,

Congratulations! Your interview for the %s position at CodeBusters Club has been scheduled.

Interview details:
  Date:        %s
  Time:        %s - %s
  Interviewer: %s
`,
		app.Name, app.Role,
		slot.Date.Format("Monday, 02 Jan 2006"),
		slot.StartTime, slot.EndTime,
		slot.Interviewer,
	)
	if slot.MeetingLink != "" {
		body += fmt.Sprintf("  Meeting:     %s\n", slot.MeetingLink)
	}
	body += "\nPlease be prepared and join the interview on time. Good luck!\n\nBest regards,\nCodeBusters Club Team\n"

	return m.send(app.Email, "Interview Scheduled - CodeBusters Club", body)
}

func (m *SMTPMailer) SendTaskAssigned(assignment *models.TaskAssignment, task *models.Task) error {
	body := fmt.Sprintf(`Hello %s,

You've been assigned a task as part of the CodeBusters recruitment process.

Task details:
  Title:       %s
  Description: %s
  Due date:    %s

Please complete the task by the due date and submit your solution.
Best of luck!

CodeBusters Team
`,
		assignment.CandidateName,
		task.Title,
		task.Description,
		assignment.DueDate.Format("02 Jan 2006"),
	)

	return m.send(assignment.CandidateEmail, "CodeBusters - Task Assignment: "+task.Title, body)
}

func (m *SMTPMailer) SendTaskEvaluated(assignment *models.TaskAssignment) error {
	score := 0
	if assignment.Evaluation.Score != nil {
		score = *assignment.Evaluation.Score
	}
	body := fmt.Sprintf(`Hello %s,

Your submitted task has been evaluated by our team.

Evaluation results:
  Score:    %d/100
  Feedback: %s

Thank you for your submission. We'll be in touch regarding the next steps.

CodeBusters Team
`,
		assignment.CandidateName,
		score,
		assignment.Evaluation.Feedback,
	)

	return m.send(assignment.CandidateEmail, "CodeBusters - Task Evaluation: "+assignment.Task.Title, body)
}
