package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	notifier *fakeNotifier
	service  *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Application{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	suite.notifier = &fakeNotifier{}
	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewAssignmentRepository(suite.db),
		repository.NewApplicationRepository(suite.db),
		suite.notifier,
		SimulatedRunner{},
		nil,
	)
	suite.service.now = func() time.Time {
		return time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	}
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createApplication(email string) *models.Application {
	app := &models.Application{
		Name:   "Candidate " + email,
		Email:  email,
		Branch: "CSE",
		Year:   "3rd",
		Role:   "Backend Developer",
		Status: models.StatusShortlisted,
	}
	suite.Require().NoError(suite.db.Create(app).Error)
	return app
}

func (suite *TaskServiceTestSuite) createTask(title string) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:       title,
		Description: "Test description",
		TestCases: models.TestCaseList{
			{Input: "1 2", ExpectedOutput: "3"},
			{Input: "5 7", ExpectedOutput: "12", IsHidden: true},
		},
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) assign(taskID uint64, appIDs ...uint64) []models.TaskAssignment {
	created, _, err := suite.service.Assign(AssignTasksInput{
		TaskID:         taskID,
		ApplicationIDs: appIDs,
		AssignedBy:     "CODEBUSTERS2025",
		DueDate:        time.Date(2026, 1, 10, 23, 59, 59, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return created
}

func (suite *TaskServiceTestSuite) TestCreateTask_AppliesDefaults() {
	task := suite.createTask("Two Sum")

	assert.Equal(suite.T(), models.DifficultyMedium, task.Difficulty)
	assert.Equal(suite.T(), models.CategoryProgramming, task.Category)
	assert.Equal(suite.T(), 60, task.TimeLimit)
	assert.Equal(suite.T(), 100, task.MaxScore)
	assert.True(suite.T(), task.IsActive)
}

func (suite *TaskServiceTestSuite) TestAssign_CreatesAssignments() {
	task := suite.createTask("Two Sum")
	appA := suite.createApplication("a@example.com")
	appB := suite.createApplication("b@example.com")

	created := suite.assign(task.ID, appA.ID, appB.ID)

	suite.Require().Len(created, 2)
	assert.Equal(suite.T(), appA.Name, created[0].CandidateName)
	assert.Equal(suite.T(), appA.Email, created[0].CandidateEmail)
	assert.Equal(suite.T(), models.AssignmentStatusAssigned, created[0].Status)
	assert.Equal(suite.T(), 2, suite.notifier.assignmentEmails)
}

func (suite *TaskServiceTestSuite) TestAssign_SkipsDuplicatesAndMissing() {
	task := suite.createTask("Two Sum")
	appA := suite.createApplication("a@example.com")
	suite.assign(task.ID, appA.ID)

	created, skipped, err := suite.service.Assign(AssignTasksInput{
		TaskID:         task.ID,
		ApplicationIDs: []uint64{appA.ID, 9999},
		DueDate:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().NoError(err)
	assert.Empty(suite.T(), created)
	assert.Equal(suite.T(), 2, skipped)

	// The original assignment is untouched
	var count int64
	suite.db.Model(&models.TaskAssignment{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TaskServiceTestSuite) TestAssign_TaskNotFound() {
	app := suite.createApplication("a@example.com")

	_, _, err := suite.service.Assign(AssignTasksInput{
		TaskID:         9999,
		ApplicationIDs: []uint64{app.ID},
		DueDate:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestSubmit_RecordsSolution() {
	task := suite.createTask("Two Sum")
	app := suite.createApplication("a@example.com")
	created := suite.assign(task.ID, app.ID)

	submitted, err := suite.service.Submit(created[0].ID, "print(a+b)", "python")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.AssignmentStatusSubmitted, submitted.Status)
	assert.Equal(suite.T(), 1, submitted.Attempts)
	suite.Require().NotNil(submitted.Submission.SubmittedAt)
	assert.Len(suite.T(), submitted.Submission.TestResults, 2)
	assert.True(suite.T(), submitted.Submission.TestResults[0].Passed)
}

func (suite *TaskServiceTestSuite) TestSubmit_AfterDeadline() {
	task := suite.createTask("Two Sum")
	app := suite.createApplication("a@example.com")
	created := suite.assign(task.ID, app.ID)

	suite.service.now = func() time.Time {
		return time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	}

	_, err := suite.service.Submit(created[0].ID, "print(a+b)", "python")

	assert.ErrorIs(suite.T(), err, ErrSubmissionOverdue)

	var stored models.TaskAssignment
	suite.db.First(&stored, created[0].ID)
	assert.Equal(suite.T(), models.AssignmentStatusOverdue, stored.Status)
	assert.Empty(suite.T(), stored.Submission.Code)
}

func (suite *TaskServiceTestSuite) TestSubmit_Twice() {
	task := suite.createTask("Two Sum")
	app := suite.createApplication("a@example.com")
	created := suite.assign(task.ID, app.ID)

	_, err := suite.service.Submit(created[0].ID, "print(a+b)", "python")
	suite.Require().NoError(err)

	_, err = suite.service.Submit(created[0].ID, "print(a*b)", "python")
	assert.ErrorIs(suite.T(), err, ErrAlreadySubmitted)
}

func (suite *TaskServiceTestSuite) TestEvaluate_RequiresSubmission() {
	task := suite.createTask("Two Sum")
	app := suite.createApplication("a@example.com")
	created := suite.assign(task.ID, app.ID)

	_, err := suite.service.Evaluate(created[0].ID, 80, "good", "CODEBUSTERS2025")

	assert.ErrorIs(suite.T(), err, ErrNotSubmitted)
}

func (suite *TaskServiceTestSuite) TestEvaluate_Success() {
	task := suite.createTask("Two Sum")
	app := suite.createApplication("a@example.com")
	created := suite.assign(task.ID, app.ID)

	_, err := suite.service.Submit(created[0].ID, "print(a+b)", "python")
	suite.Require().NoError(err)

	evaluated, err := suite.service.Evaluate(created[0].ID, 85, "solid work", "CODEBUSTERS2025")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.AssignmentStatusEvaluated, evaluated.Status)
	suite.Require().NotNil(evaluated.Evaluation.Score)
	assert.Equal(suite.T(), 85, *evaluated.Evaluation.Score)
	assert.Equal(suite.T(), "solid work", evaluated.Evaluation.Feedback)
	assert.Equal(suite.T(), 1, suite.notifier.evaluationEmails)
}

func (suite *TaskServiceTestSuite) TestEvaluate_ScoreOutOfRange() {
	task := suite.createTask("Two Sum")
	app := suite.createApplication("a@example.com")
	created := suite.assign(task.ID, app.ID)

	_, err := suite.service.Submit(created[0].ID, "print(a+b)", "python")
	suite.Require().NoError(err)

	_, err = suite.service.Evaluate(created[0].ID, 101, "", "CODEBUSTERS2025")
	assert.ErrorIs(suite.T(), err, ErrInvalidScore)

	_, err = suite.service.Evaluate(created[0].ID, -1, "", "CODEBUSTERS2025")
	assert.ErrorIs(suite.T(), err, ErrInvalidScore)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_CascadesAssignments() {
	task := suite.createTask("Two Sum")
	appA := suite.createApplication("a@example.com")
	appB := suite.createApplication("b@example.com")
	suite.assign(task.ID, appA.ID, appB.ID)

	suite.Require().NoError(suite.service.DeleteTask(task.ID))

	var count int64
	suite.db.Model(&models.TaskAssignment{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TaskServiceTestSuite) TestStats() {
	task := suite.createTask("Two Sum")
	appA := suite.createApplication("a@example.com")
	appB := suite.createApplication("b@example.com")
	created := suite.assign(task.ID, appA.ID, appB.ID)

	_, err := suite.service.Submit(created[0].ID, "print(a+b)", "python")
	suite.Require().NoError(err)
	_, err = suite.service.Evaluate(created[0].ID, 90, "", "CODEBUSTERS2025")
	suite.Require().NoError(err)

	stats, err := suite.service.Stats()

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), stats.Total)
	assert.Equal(suite.T(), int64(1), stats.Submitted)
	assert.Equal(suite.T(), int64(1), stats.Evaluated)
	assert.Equal(suite.T(), float64(90), stats.AverageScore)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
