package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/codebusters-club/recruitment-api/internal/constants"
	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoShortlistedApplications = errors.New("no shortlisted applications found")
	ErrInsufficientCapacity      = errors.New("not enough interview slots available")
	ErrSlotNotFound              = errors.New("interview slot not found")
	ErrSlotUnavailable           = errors.New("selected slot is not available")
	ErrNoScheduledInterview      = errors.New("no interview scheduled for this application")
)

// defaultTimeWindows is the canonical daily template: six 30-minute windows.
var defaultTimeWindows = []TimeWindow{
	{Start: "09:00", End: "09:30"},
	{Start: "10:00", End: "10:30"},
	{Start: "11:00", End: "11:30"},
	{Start: "14:00", End: "14:30"},
	{Start: "15:00", End: "15:30"},
	{Start: "16:00", End: "16:30"},
}

// TimeWindow is one bookable window within a day.
type TimeWindow struct {
	Start       string
	End         string
	Interviewer string
}

// Pairing records one application/slot match made by AutoAssign.
type Pairing struct {
	Application models.Application   `json:"application"`
	Slot        models.InterviewSlot `json:"slot"`
}

// InterviewService owns the slot pool: provisioning, the booking invariant,
// auto-assignment and rescheduling.
type InterviewService struct {
	appRepo  repository.ApplicationRepository
	slotRepo repository.SlotRepository
	notifier Notifier
	calendar Calendar

	// now is swappable for tests.
	now func() time.Time
}

// NewInterviewService creates a new InterviewService. notifier and calendar
// may be nil; the corresponding side effects are then skipped.
func NewInterviewService(appRepo repository.ApplicationRepository, slotRepo repository.SlotRepository, notifier Notifier, calendar Calendar) *InterviewService {
	return &InterviewService{
		appRepo:  appRepo,
		slotRepo: slotRepo,
		notifier: notifier,
		calendar: calendar,
		now:      time.Now,
	}
}

// dateOnly truncates t to midnight UTC; slots are keyed by day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// CreateSlots creates slots for every business day in [start, end] from the
// given time windows, skipping weekends and (date, startTime) pairs that
// already exist. Returns the created slots.
func (s *InterviewService) CreateSlots(start, end time.Time, windows []TimeWindow) ([]models.InterviewSlot, error) {
	if len(windows) == 0 {
		windows = defaultTimeWindows
	}

	var slots []models.InterviewSlot
	for day := dateOnly(start); !day.After(dateOnly(end)); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		for _, w := range windows {
			exists, err := s.slotRepo.Exists(day, w.Start)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing slot: %w", err)
			}
			if exists {
				continue
			}
			interviewer := w.Interviewer
			if interviewer == "" {
				interviewer = constants.DefaultInterviewer
			}
			slots = append(slots, models.InterviewSlot{
				Date:        day,
				StartTime:   w.Start,
				EndTime:     w.End,
				Interviewer: interviewer,
			})
		}
	}

	if err := s.slotRepo.CreateBatch(slots); err != nil {
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}

	return slots, nil
}

// EnsureCapacity tops up the free-slot pool so it covers every currently
// shortlisted application. Needed capacity is recomputed from live counts on
// every call, which makes the operation idempotent: a second call with no
// intervening changes creates nothing.
func (s *InterviewService) EnsureCapacity(daysAhead, slotsPerDay int) (int, error) {
	if daysAhead <= 0 {
		daysAhead = constants.DefaultDaysAhead
	}
	if slotsPerDay <= 0 || slotsPerDay > len(defaultTimeWindows) {
		slotsPerDay = constants.DefaultSlotsPerDay
	}

	shortlisted, err := s.appRepo.CountByStatus(models.StatusShortlisted)
	if err != nil {
		return 0, fmt.Errorf("failed to count shortlisted applications: %w", err)
	}

	free, err := s.slotRepo.CountAvailable()
	if err != nil {
		return 0, fmt.Errorf("failed to count available slots: %w", err)
	}

	needed := int(shortlisted - free)
	if needed <= 0 {
		return 0, nil
	}

	var slots []models.InterviewSlot
	day := dateOnly(s.now().AddDate(0, 0, daysAhead))
	for len(slots) < needed {
		if isWeekend(day) {
			day = day.AddDate(0, 0, 1)
			continue
		}
		for _, w := range defaultTimeWindows[:slotsPerDay] {
			if len(slots) >= needed {
				break
			}
			exists, err := s.slotRepo.Exists(day, w.Start)
			if err != nil {
				return 0, fmt.Errorf("failed to check existing slot: %w", err)
			}
			if exists {
				continue
			}
			slots = append(slots, models.InterviewSlot{
				Date:        day,
				StartTime:   w.Start,
				EndTime:     w.End,
				Interviewer: constants.DefaultInterviewer,
			})
		}
		day = day.AddDate(0, 0, 1)
	}

	if err := s.slotRepo.CreateBatch(slots); err != nil {
		return 0, fmt.Errorf("failed to create slots: %w", err)
	}

	return len(slots), nil
}

// AutoProvision is the operator-facing variant of EnsureCapacity: it errors
// when there is nothing to provision for.
func (s *InterviewService) AutoProvision(daysAhead, slotsPerDay int) (int, error) {
	shortlisted, err := s.appRepo.CountByStatus(models.StatusShortlisted)
	if err != nil {
		return 0, fmt.Errorf("failed to count shortlisted applications: %w", err)
	}
	if shortlisted == 0 {
		return 0, ErrNoShortlistedApplications
	}

	return s.EnsureCapacity(daysAhead, slotsPerDay)
}

// AutoAssign pairs every shortlisted application with a free slot: the i-th
// application in retrieval order gets the i-th earliest slot. Capacity is
// validated before any write; after that each pairing commits independently,
// so a mid-loop failure leaves earlier pairings in place.
func (s *InterviewService) AutoAssign() ([]Pairing, error) {
	apps, err := s.appRepo.ListByStatus(models.StatusShortlisted)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlisted applications: %w", err)
	}
	if len(apps) == 0 {
		return nil, ErrNoShortlistedApplications
	}

	slots, err := s.slotRepo.ListAvailable()
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	if len(slots) < len(apps) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCapacity, len(apps), len(slots))
	}

	pairings := make([]Pairing, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		slot := &slots[i]

		bindInterview(app, slot)
		if err := s.slotRepo.Book(slot.ID, app); err != nil {
			return pairings, fmt.Errorf("failed to book slot %d for application %d: %w", slot.ID, app.ID, err)
		}
		slot.IsBooked = true
		slot.ApplicationID = &app.ID

		s.notifyScheduled(app, slot)

		pairings = append(pairings, Pairing{Application: *app, Slot: *slot})
	}

	return pairings, nil
}

// Reschedule moves an application's interview to another free slot: the new
// slot is booked first, the old one released only once the booking sticks,
// and the candidate re-notified. A losing race on the new slot leaves the
// current booking untouched.
func (s *InterviewService) Reschedule(applicationID, newSlotID uint64) (*models.InterviewSlot, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	current, err := s.slotRepo.FindByApplication(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoScheduledInterview
		}
		return nil, fmt.Errorf("failed to find current slot: %w", err)
	}

	newSlot, err := s.slotRepo.FindByID(newSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find new slot: %w", err)
	}
	if newSlot.IsBooked {
		return nil, ErrSlotUnavailable
	}

	bindInterview(app, newSlot)
	if err := s.slotRepo.Book(newSlot.ID, app); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to book new slot: %w", err)
	}
	newSlot.IsBooked = true
	newSlot.ApplicationID = &app.ID

	if err := s.slotRepo.Release(current.ID); err != nil {
		return nil, fmt.Errorf("failed to release previous slot: %w", err)
	}

	s.notifyScheduled(app, newSlot)

	return newSlot, nil
}

// ListSlots retrieves slots, optionally filtered by date or availability.
func (s *InterviewService) ListSlots(filter repository.SlotFilter) ([]models.InterviewSlot, error) {
	slots, err := s.slotRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// ExportCSV writes all booked interviews as CSV.
func (s *InterviewService) ExportCSV(w io.Writer) error {
	slots, err := s.slotRepo.ListBooked()
	if err != nil {
		return fmt.Errorf("failed to list booked slots: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Candidate Name", "Email", "Role", "Branch", "Year",
		"Interview Date", "Start Time", "End Time", "Interviewer", "Meeting Link",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, slot := range slots {
		name, email, role, branch, year := "N/A", "N/A", "N/A", "N/A", "N/A"
		if slot.Application != nil {
			name = slot.Application.Name
			email = slot.Application.Email
			role = slot.Application.Role
			branch = slot.Application.Branch
			year = slot.Application.Year
		}
		meetingLink := slot.MeetingLink
		if meetingLink == "" {
			meetingLink = "TBD"
		}
		record := []string{
			name, email, role, branch, year,
			slot.Date.Format("2006-01-02"), slot.StartTime, slot.EndTime,
			slot.Interviewer, meetingLink,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// bindInterview copies the slot's display fields onto the application and
// flips its status. The caller persists via SlotRepository.Book.
func bindInterview(app *models.Application, slot *models.InterviewSlot) {
	date := slot.Date
	app.Status = models.StatusInterviewScheduled
	app.InterviewSlotID = &slot.ID
	app.InterviewDate = &date
	app.InterviewTime = slot.StartTime + " - " + slot.EndTime
	app.Interviewer = slot.Interviewer
	app.InterviewLink = slot.MeetingLink
}

// notifyScheduled fires the email and calendar side effects for a fresh
// booking. Failures are logged and swallowed.
func (s *InterviewService) notifyScheduled(app *models.Application, slot *models.InterviewSlot) {
	if s.notifier != nil {
		if err := s.notifier.SendInterviewScheduled(app, slot); err != nil {
			log.Printf("failed to send interview notification to %s: %v", app.Email, err)
		}
	}

	if s.calendar != nil {
		link, err := s.calendar.CreateEvent(app, slot)
		if err != nil {
			log.Printf("failed to create calendar event for %s: %v", app.Email, err)
			return
		}
		if slot.MeetingLink == "" && link != "" {
			slot.MeetingLink = link
			if err := s.slotRepo.Update(slot); err != nil {
				log.Printf("failed to store meeting link on slot %d: %v", slot.ID, err)
			}
		}
	}
}
