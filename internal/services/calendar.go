package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

// HTTPCalendar implements Calendar against a JSON calendar endpoint. Events
// are posted to <baseURL>/events; the response carries a shareable link.
type HTTPCalendar struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCalendar creates a calendar client for the given endpoint.
func NewHTTPCalendar(baseURL string) *HTTPCalendar {
	return &HTTPCalendar{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type calendarEvent struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees"`
	// Reminders in minutes before the event.
	Reminders []int `json:"reminders"`
}

type calendarEventResponse struct {
	HTMLLink string `json:"html_link"`
}

// CreateEvent creates an interview event and returns its shareable link.
func (cal *HTTPCalendar) CreateEvent(app *models.Application, slot *models.InterviewSlot) (string, error) {
	day := slot.Date.Format("2006-01-02")
	event := calendarEvent{
		Summary:     fmt.Sprintf("Interview: %s - %s", app.Name, app.Role),
		Description: fmt.Sprintf("Interview for %s (%s) for the %s position at CodeBusters Club.", app.Name, app.Email, app.Role),
		Start:       fmt.Sprintf("%sT%s:00", day, slot.StartTime),
		End:         fmt.Sprintf("%sT%s:00", day, slot.EndTime),
		Attendees:   []string{app.Email},
		Reminders:   []int{24 * 60, 30},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to encode event: %w", err)
	}

	resp, err := cal.client.Post(cal.baseURL+"/events", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar returned status %d", resp.StatusCode)
	}

	var out calendarEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode calendar response: %w", err)
	}

	return out.HTMLLink, nil
}
