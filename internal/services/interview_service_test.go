package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
)

// fakeNotifier counts sends instead of dispatching emails.
type fakeNotifier struct {
	interviewEmails  int
	assignmentEmails int
	evaluationEmails int
}

func (f *fakeNotifier) SendInterviewScheduled(app *models.Application, slot *models.InterviewSlot) error {
	f.interviewEmails++
	return nil
}

func (f *fakeNotifier) SendTaskAssigned(assignment *models.TaskAssignment, task *models.Task) error {
	f.assignmentEmails++
	return nil
}

func (f *fakeNotifier) SendTaskEvaluated(assignment *models.TaskAssignment) error {
	f.evaluationEmails++
	return nil
}

// InterviewServiceTestSuite defines the test suite for InterviewService
type InterviewServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	appRepo  repository.ApplicationRepository
	slotRepo repository.SlotRepository
	notifier *fakeNotifier
	service  *InterviewService
}

// SetupTest runs before each test
func (suite *InterviewServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Application{},
		&models.InterviewSlot{},
	)
	suite.Require().NoError(err)

	suite.appRepo = repository.NewApplicationRepository(suite.db)
	suite.slotRepo = repository.NewSlotRepository(suite.db)
	suite.notifier = &fakeNotifier{}
	suite.service = NewInterviewService(suite.appRepo, suite.slotRepo, suite.notifier, nil)

	// Monday, so provisioning math is deterministic
	suite.service.now = func() time.Time {
		return time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	}
}

// TearDownTest runs after each test
func (suite *InterviewServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *InterviewServiceTestSuite) createApplication(email string, status models.ApplicationStatus) *models.Application {
	app := &models.Application{
		Name:   "Candidate " + email,
		Email:  email,
		Branch: "CSE",
		Year:   "3rd",
		Role:   "Backend Developer",
		Status: status,
	}
	suite.Require().NoError(suite.db.Create(app).Error)
	return app
}

func (suite *InterviewServiceTestSuite) createSlot(date time.Time, start, end string, booked bool) *models.InterviewSlot {
	slot := &models.InterviewSlot{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsBooked:    booked,
		Interviewer: "TBD",
	}
	suite.Require().NoError(suite.db.Create(slot).Error)
	return slot
}

func (suite *InterviewServiceTestSuite) countSlots() int64 {
	var count int64
	suite.db.Model(&models.InterviewSlot{}).Count(&count)
	return count
}

func (suite *InterviewServiceTestSuite) TestEnsureCapacity_CreatesNeededSlots() {
	suite.createApplication("a@example.com", models.StatusShortlisted)
	suite.createApplication("b@example.com", models.StatusShortlisted)
	suite.createApplication("c@example.com", models.StatusShortlisted)

	created, err := suite.service.EnsureCapacity(0, 0)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 3, created)
	assert.Equal(suite.T(), int64(3), suite.countSlots())

	// All slots land on business days at or after the scheduling horizon
	horizon := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	var slots []models.InterviewSlot
	suite.db.Find(&slots)
	for _, slot := range slots {
		assert.False(suite.T(), slot.Date.Before(horizon))
		assert.NotEqual(suite.T(), time.Saturday, slot.Date.Weekday())
		assert.NotEqual(suite.T(), time.Sunday, slot.Date.Weekday())
		assert.False(suite.T(), slot.IsBooked)
	}
}

func (suite *InterviewServiceTestSuite) TestEnsureCapacity_Idempotent() {
	suite.createApplication("a@example.com", models.StatusShortlisted)
	suite.createApplication("b@example.com", models.StatusShortlisted)

	created, err := suite.service.EnsureCapacity(0, 0)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, created)

	created, err = suite.service.EnsureCapacity(0, 0)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, created)
	assert.Equal(suite.T(), int64(2), suite.countSlots())
}

func (suite *InterviewServiceTestSuite) TestEnsureCapacity_CountsOnlyFreeSlots() {
	suite.createApplication("a@example.com", models.StatusShortlisted)
	suite.createApplication("b@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(day, "09:00", "09:30", true) // booked, does not count
	suite.createSlot(day, "10:00", "10:30", false)

	created, err := suite.service.EnsureCapacity(0, 0)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, created)
}

func (suite *InterviewServiceTestSuite) TestEnsureCapacity_SkipsWeekendHorizon() {
	// Saturday: the 7-day horizon lands on a Saturday too
	suite.service.now = func() time.Time {
		return time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)
	}
	suite.createApplication("a@example.com", models.StatusShortlisted)

	created, err := suite.service.EnsureCapacity(0, 0)

	suite.Require().NoError(err)
	suite.Require().Equal(1, created)

	var slot models.InterviewSlot
	suite.db.First(&slot)
	// Jan 10 and 11 are skipped; the slot lands on Monday Jan 12
	assert.Equal(suite.T(), time.Monday, slot.Date.Weekday())
	assert.Equal(suite.T(), 12, slot.Date.Day())
}

func (suite *InterviewServiceTestSuite) TestEnsureCapacity_SpillsToNextDay() {
	for i := 0; i < 8; i++ {
		suite.createApplication(string(rune('a'+i))+"@example.com", models.StatusShortlisted)
	}

	created, err := suite.service.EnsureCapacity(0, 0)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 8, created)

	// Six windows per day: 8 slots span two days
	var days []time.Time
	suite.db.Model(&models.InterviewSlot{}).Distinct("date").Order("date").Pluck("date", &days)
	suite.Require().Len(days, 2)
}

func (suite *InterviewServiceTestSuite) TestAutoProvision_NoShortlisted() {
	suite.createApplication("a@example.com", models.StatusApplied)

	_, err := suite.service.AutoProvision(0, 0)

	assert.ErrorIs(suite.T(), err, ErrNoShortlistedApplications)
	assert.Equal(suite.T(), int64(0), suite.countSlots())
}

func (suite *InterviewServiceTestSuite) TestCreateSlots_SkipsWeekendsAndDuplicates() {
	// Friday Jan 9 through Monday Jan 12
	start := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(start, "09:00", "09:30", false)

	windows := []TimeWindow{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
	}

	slots, err := suite.service.CreateSlots(start, end, windows)

	suite.Require().NoError(err)
	// Two business days x two windows, minus the pre-existing Friday 09:00
	assert.Len(suite.T(), slots, 3)
	assert.Equal(suite.T(), int64(4), suite.countSlots())
}

func (suite *InterviewServiceTestSuite) TestAutoAssign_InsufficientCapacity() {
	suite.createApplication("a@example.com", models.StatusShortlisted)
	suite.createApplication("b@example.com", models.StatusShortlisted)
	suite.createApplication("c@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(day, "09:00", "09:30", false)
	suite.createSlot(day, "10:00", "10:30", false)

	pairings, err := suite.service.AutoAssign()

	assert.ErrorIs(suite.T(), err, ErrInsufficientCapacity)
	assert.Empty(suite.T(), pairings)

	// The guard fires before any write: nothing is booked, nobody moves
	var booked int64
	suite.db.Model(&models.InterviewSlot{}).Where("is_booked = ?", true).Count(&booked)
	assert.Equal(suite.T(), int64(0), booked)

	var scheduled int64
	suite.db.Model(&models.Application{}).
		Where("status = ?", models.StatusInterviewScheduled).Count(&scheduled)
	assert.Equal(suite.T(), int64(0), scheduled)
	assert.Equal(suite.T(), 0, suite.notifier.interviewEmails)
}

func (suite *InterviewServiceTestSuite) TestAutoAssign_PairsInOrder() {
	appA := suite.createApplication("a@example.com", models.StatusShortlisted)
	appB := suite.createApplication("b@example.com", models.StatusShortlisted)

	// Created out of chronological order; assignment follows slot order
	day := time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)
	later := suite.createSlot(day, "10:00", "10:30", false)
	earlier := suite.createSlot(day, "09:00", "09:30", false)

	pairings, err := suite.service.AutoAssign()

	suite.Require().NoError(err)
	suite.Require().Len(pairings, 2)

	// Lowest application id takes the earliest slot
	assert.Equal(suite.T(), appA.ID, pairings[0].Application.ID)
	assert.Equal(suite.T(), earlier.ID, pairings[0].Slot.ID)
	assert.Equal(suite.T(), appB.ID, pairings[1].Application.ID)
	assert.Equal(suite.T(), later.ID, pairings[1].Slot.ID)

	var stored models.Application
	suite.Require().NoError(suite.db.First(&stored, appA.ID).Error)
	assert.Equal(suite.T(), models.StatusInterviewScheduled, stored.Status)
	suite.Require().NotNil(stored.InterviewSlotID)
	assert.Equal(suite.T(), earlier.ID, *stored.InterviewSlotID)
	assert.Equal(suite.T(), "09:00 - 09:30", stored.InterviewTime)

	var storedSlot models.InterviewSlot
	suite.Require().NoError(suite.db.First(&storedSlot, earlier.ID).Error)
	assert.True(suite.T(), storedSlot.IsBooked)
	suite.Require().NotNil(storedSlot.ApplicationID)
	assert.Equal(suite.T(), appA.ID, *storedSlot.ApplicationID)

	assert.Equal(suite.T(), 2, suite.notifier.interviewEmails)
}

func (suite *InterviewServiceTestSuite) TestAutoAssign_SucceedsAfterTopUp() {
	suite.createApplication("a@example.com", models.StatusShortlisted)
	suite.createApplication("b@example.com", models.StatusShortlisted)
	suite.createApplication("c@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(day, "09:00", "09:30", false)
	suite.createSlot(day, "10:00", "10:30", false)

	_, err := suite.service.AutoAssign()
	suite.Require().ErrorIs(err, ErrInsufficientCapacity)

	suite.createSlot(day, "11:00", "11:30", false)

	pairings, err := suite.service.AutoAssign()
	suite.Require().NoError(err)
	assert.Len(suite.T(), pairings, 3)
	assert.Equal(suite.T(), 3, suite.notifier.interviewEmails)

	var free int64
	suite.db.Model(&models.InterviewSlot{}).Where("is_booked = ?", false).Count(&free)
	assert.Equal(suite.T(), int64(0), free)
}

func (suite *InterviewServiceTestSuite) TestReschedule_MovesBooking() {
	app := suite.createApplication("a@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(day, "09:00", "09:30", false)

	_, err := suite.service.AutoAssign()
	suite.Require().NoError(err)

	newSlot := suite.createSlot(day, "14:00", "14:30", false)

	moved, err := suite.service.Reschedule(app.ID, newSlot.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), newSlot.ID, moved.ID)

	var old models.InterviewSlot
	suite.db.Where("start_time = ?", "09:00").First(&old)
	assert.False(suite.T(), old.IsBooked)
	assert.Nil(suite.T(), old.ApplicationID)

	var stored models.Application
	suite.db.First(&stored, app.ID)
	suite.Require().NotNil(stored.InterviewSlotID)
	assert.Equal(suite.T(), newSlot.ID, *stored.InterviewSlotID)
	assert.Equal(suite.T(), "14:00 - 14:30", stored.InterviewTime)
}

func (suite *InterviewServiceTestSuite) TestReschedule_TargetBooked() {
	app := suite.createApplication("a@example.com", models.StatusShortlisted)
	other := suite.createApplication("b@example.com", models.StatusInterviewScheduled)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(day, "09:00", "09:30", false)
	taken := suite.createSlot(day, "10:00", "10:30", true)
	taken.ApplicationID = &other.ID
	suite.db.Save(taken)

	_, err := suite.service.AutoAssign()
	suite.Require().NoError(err)

	_, err = suite.service.Reschedule(app.ID, taken.ID)
	assert.ErrorIs(suite.T(), err, ErrSlotUnavailable)
}

// contendedSlotRepo fails Book for one slot id, standing in for another
// admin grabbing the slot between the availability check and the booking.
type contendedSlotRepo struct {
	repository.SlotRepository
	takenID uint64
}

func (r *contendedSlotRepo) Book(slotID uint64, app *models.Application) error {
	if slotID == r.takenID {
		return repository.ErrSlotTaken
	}
	return r.SlotRepository.Book(slotID, app)
}

func (suite *InterviewServiceTestSuite) TestReschedule_LostRaceKeepsCurrentBooking() {
	app := suite.createApplication("a@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	oldSlot := suite.createSlot(day, "09:00", "09:30", false)
	target := suite.createSlot(day, "10:00", "10:30", false)

	_, err := suite.service.AutoAssign()
	suite.Require().NoError(err)

	suite.service.slotRepo = &contendedSlotRepo{SlotRepository: suite.slotRepo, takenID: target.ID}

	_, err = suite.service.Reschedule(app.ID, target.ID)
	suite.Require().ErrorIs(err, ErrSlotUnavailable)

	// The original booking survives the lost race intact
	var stored models.InterviewSlot
	suite.Require().NoError(suite.db.First(&stored, oldSlot.ID).Error)
	assert.True(suite.T(), stored.IsBooked)
	suite.Require().NotNil(stored.ApplicationID)
	assert.Equal(suite.T(), app.ID, *stored.ApplicationID)

	var storedApp models.Application
	suite.Require().NoError(suite.db.First(&storedApp, app.ID).Error)
	assert.Equal(suite.T(), models.StatusInterviewScheduled, storedApp.Status)
	suite.Require().NotNil(storedApp.InterviewSlotID)
	assert.Equal(suite.T(), oldSlot.ID, *storedApp.InterviewSlotID)
}

func (suite *InterviewServiceTestSuite) TestReschedule_NoInterviewScheduled() {
	app := suite.createApplication("a@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	slot := suite.createSlot(day, "09:00", "09:30", false)

	_, err := suite.service.Reschedule(app.ID, slot.ID)

	assert.ErrorIs(suite.T(), err, ErrNoScheduledInterview)
}

func (suite *InterviewServiceTestSuite) TestReschedule_ApplicationNotFound() {
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	slot := suite.createSlot(day, "09:00", "09:30", false)

	_, err := suite.service.Reschedule(9999, slot.ID)

	assert.ErrorIs(suite.T(), err, ErrApplicationNotFound)
}

func (suite *InterviewServiceTestSuite) TestExportCSV() {
	suite.createApplication("a@example.com", models.StatusShortlisted)
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	suite.createSlot(day, "09:00", "09:30", false)

	_, err := suite.service.AutoAssign()
	suite.Require().NoError(err)

	var buf bytes.Buffer
	suite.Require().NoError(suite.service.ExportCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	suite.Require().Len(lines, 2)
	assert.Contains(suite.T(), lines[0], "Candidate Name")
	assert.Contains(suite.T(), lines[1], "a@example.com")
	assert.Contains(suite.T(), lines[1], "2026-01-12")
}

func TestInterviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InterviewServiceTestSuite))
}
