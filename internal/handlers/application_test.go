package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"github.com/codebusters-club/recruitment-api/internal/services"
)

// ApplicationHandlerTestSuite defines the test suite for ApplicationHandler
type ApplicationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ApplicationHandler
}

// SetupTest runs before each test
func (suite *ApplicationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Application{},
		&models.InterviewSlot{},
	)
	suite.Require().NoError(err)

	appRepo := repository.NewApplicationRepository(suite.db)
	suite.handler = NewApplicationHandler(services.NewApplicationService(appRepo, nil))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ApplicationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ApplicationHandlerTestSuite) createContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func (suite *ApplicationHandlerTestSuite) createTestApplication(email string) *models.Application {
	app := &models.Application{
		Name:   "Candidate " + email,
		Email:  email,
		Branch: "CSE",
		Year:   "3rd",
		Role:   "Backend Developer",
		Status: models.StatusApplied,
	}
	suite.Require().NoError(suite.db.Create(app).Error)
	return app
}

func (suite *ApplicationHandlerTestSuite) TestCreate_Success() {
	body, _ := json.Marshal(gin.H{
		"name":   "Asha Rao",
		"email":  "asha@example.com",
		"branch": "CSE",
		"year":   "3rd",
		"role":   "Backend Developer",
		"skills": []string{"Go", "SQL"},
	})

	c, w := suite.createContext("POST", "/api/apply", body)
	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "asha@example.com", resp["email"])
	assert.Equal(suite.T(), string(models.StatusApplied), resp["status"])
}

func (suite *ApplicationHandlerTestSuite) TestCreate_MissingFields() {
	body, _ := json.Marshal(gin.H{
		"name": "Asha Rao",
	})

	c, w := suite.createContext("POST", "/api/apply", body)
	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestCreate_DuplicateEmail() {
	suite.createTestApplication("asha@example.com")

	body, _ := json.Marshal(gin.H{
		"name":   "Asha Rao",
		"email":  "asha@example.com",
		"branch": "CSE",
		"year":   "3rd",
		"role":   "Backend Developer",
	})

	c, w := suite.createContext("POST", "/api/apply", body)
	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestGet_NotFound() {
	c, w := suite.createContext("GET", "/api/applications/9999", nil)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.Get(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestGet_InvalidID() {
	c, w := suite.createContext("GET", "/api/applications/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.handler.Get(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestUpdateStatus_Success() {
	app := suite.createTestApplication("asha@example.com")

	body, _ := json.Marshal(gin.H{"status": "Shortlisted"})
	c, w := suite.createContext("PATCH", "/api/applications/1/status", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Application
	suite.db.First(&stored, app.ID)
	assert.Equal(suite.T(), models.StatusShortlisted, stored.Status)
}

func (suite *ApplicationHandlerTestSuite) TestUpdateStatus_InvalidStatus() {
	suite.createTestApplication("asha@example.com")

	body, _ := json.Marshal(gin.H{"status": "Hired"})
	c, w := suite.createContext("PATCH", "/api/applications/1/status", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestList_FiltersByStatus() {
	suite.createTestApplication("a@example.com")
	shortlisted := suite.createTestApplication("b@example.com")
	suite.db.Model(shortlisted).Update("status", models.StatusShortlisted)

	c, w := suite.createContext("GET", "/api/applications?status=Shortlisted", nil)
	suite.handler.List(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp struct {
		Applications []map[string]interface{} `json:"applications"`
		TotalCount   int64                    `json:"total_count"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Applications, 1)
	assert.Equal(suite.T(), "b@example.com", resp.Applications[0]["email"])
	assert.Equal(suite.T(), int64(1), resp.TotalCount)
}

func (suite *ApplicationHandlerTestSuite) TestBulkUpdateStatus() {
	appA := suite.createTestApplication("a@example.com")
	appB := suite.createTestApplication("b@example.com")

	body, _ := json.Marshal(gin.H{
		"ids":    []uint64{appA.ID, appB.ID, 9999},
		"status": "Under Review",
	})
	c, w := suite.createContext("PATCH", "/api/applications/bulk-status", body)

	suite.handler.BulkUpdateStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			ID uint64 `json:"id"`
			OK bool   `json:"ok"`
		} `json:"results"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Results, 3)
	assert.True(suite.T(), resp.Results[0].OK)
	assert.True(suite.T(), resp.Results[1].OK)
	assert.False(suite.T(), resp.Results[2].OK)
}

func TestApplicationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationHandlerTestSuite))
}
