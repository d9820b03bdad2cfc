package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/schedule-api/internal/auth"
	"github.com/yukikurage/schedule-api/internal/database"
	"github.com/yukikurage/schedule-api/internal/middleware"
	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/repository"
	"github.com/yukikurage/schedule-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HandlerTestSuite drives the handlers directly, without route guards
type HandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = database.Open("sqlite", "file::memory:", logger.Silent)
	suite.Require().NoError(err)
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	// Run migrations
	suite.Require().NoError(database.Migrate(suite.db, zap.NewNop()))

	tokens, err := auth.NewJWTManager("handler-secret", time.Hour)
	suite.Require().NoError(err)

	accountService := services.NewAccountService(repository.NewAccountRepository(suite.db), auth.NewBcryptHasher(4), tokens)
	eventService := services.NewEventService(repository.NewEventRepository(suite.db))
	taskService := services.NewTaskService(repository.NewTaskRepository(suite.db), accountService, eventService)

	accountHandler := NewAccountHandler(accountService)
	eventHandler := NewEventHandler(eventService)
	taskHandler := NewTaskHandler(taskService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.Use(middleware.ErrorHandler(zap.NewNop(), false))
	suite.router.POST("/accounts/register", accountHandler.Register)
	suite.router.POST("/accounts/login", accountHandler.Login)
	suite.router.GET("/accounts", accountHandler.ListAccounts)
	suite.router.GET("/accounts/:id", accountHandler.GetAccount)
	suite.router.PUT("/accounts/:id", accountHandler.UpdateAccount)
	suite.router.DELETE("/accounts/:id", accountHandler.DeleteAccount)
	suite.router.GET("/events", eventHandler.ListEvents)
	suite.router.POST("/events", eventHandler.CreateEvent)
	suite.router.GET("/events/upcoming", eventHandler.UpcomingEvents)
	suite.router.GET("/events/:id", eventHandler.GetEvent)
	suite.router.PUT("/events/:id", eventHandler.UpdateEvent)
	suite.router.DELETE("/events/:id", eventHandler.DeleteEvent)
	suite.router.GET("/tasks", taskHandler.ListTasks)
	suite.router.POST("/tasks", taskHandler.CreateTask)
	suite.router.GET("/tasks/select-data", taskHandler.SelectData)
	suite.router.GET("/tasks/event/:eventId", taskHandler.ListTasksByEvent)
	suite.router.GET("/tasks/account/:accountId", taskHandler.ListTasksByAccount)
	suite.router.GET("/tasks/:id", taskHandler.GetTask)
	suite.router.PUT("/tasks/:id", taskHandler.UpdateTask)
	suite.router.DELETE("/tasks/:id", taskHandler.DeleteTask)
}

// TearDownTest runs after each test
func (suite *HandlerTestSuite) TearDownTest() {
	suite.Require().NoError(database.Close(suite.db))
}

func (suite *HandlerTestSuite) request(method, url string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *HandlerTestSuite) createTestAccount(name, email string) *models.Account {
	account := &models.Account{Name: name, Email: email, PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.db.Create(account).Error)
	return account
}

func (suite *HandlerTestSuite) createTestEvent(title string, date time.Time) *models.Event {
	event := &models.Event{
		Title:       title,
		Description: "Test Description",
		Location:    "Room 1",
		Responsible: "Host",
		Date:        date.UTC(),
	}
	suite.Require().NoError(suite.db.Create(event).Error)
	return event
}

func (suite *HandlerTestSuite) TestRegisterAndLogin() {
	w, response := suite.request("POST", "/accounts/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "s3cret!pass",
	})
	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("ana@example.com", response["email"])
	suite.NotContains(response, "password_hash")

	w, response = suite.request("POST", "/accounts/login", gin.H{"email": "ana@example.com", "password": "s3cret!pass"})
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(response["token"])
	suite.Contains(response, "expires_at")
	account := response["account"].(map[string]interface{})
	suite.Equal("Ana", account["name"])

	w, response = suite.request("POST", "/accounts/login", gin.H{"email": "ana@example.com", "password": "wrong!pass1"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("invalid credentials", response["message"])
}

func (suite *HandlerTestSuite) TestRegisterDuplicateEmail() {
	suite.createTestAccount("Ana", "ana@example.com")

	w, response := suite.request("POST", "/accounts/register", gin.H{
		"name": "Other", "email": "ana@example.com", "password": "s3cret!pass",
	})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("fail", response["status"])
	suite.Equal("email already registered", response["message"])
}

func (suite *HandlerTestSuite) TestRegisterInvalidBody() {
	req := httptest.NewRequest("POST", "/accounts/register", bytes.NewBufferString(`{"name":`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListAccountsPagination() {
	suite.createTestAccount("Zoe", "zoe@example.com")
	suite.createTestAccount("Ana", "ana@example.com")
	suite.createTestAccount("Bo", "bo@example.com")

	w, _ := suite.request("GET", "/accounts", nil)
	suite.Equal(http.StatusOK, w.Code)
	var plain []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &plain))
	suite.Len(plain, 3)
	suite.Equal("Ana", plain[0]["name"])

	w, response := suite.request("GET", "/accounts?page=2&limit=2", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"], 1)
	pagination := response["pagination"].(map[string]interface{})
	suite.Equal(float64(2), pagination["page"])
	suite.Equal(float64(2), pagination["limit"])
	suite.Equal(float64(3), pagination["total"])
	suite.Equal(float64(2), pagination["totalPages"])
}

func (suite *HandlerTestSuite) TestGetAccountByUUIDIsNotFound() {
	w, response := suite.request("GET", "/accounts/123e4567-e89b-12d3-a456-426614174000", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("account not found", response["message"])
}

func (suite *HandlerTestSuite) TestUpdateAndDeleteAccount() {
	account := suite.createTestAccount("Ana", "ana@example.com")

	w, response := suite.request("PUT", "/accounts/1", gin.H{"name": "Ana B.", "email": "anab@example.com"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Ana B.", response["name"])

	w, response = suite.request("DELETE", "/accounts/1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, response["deleted"])
	suite.Equal(float64(account.ID), response["id"])

	w, _ = suite.request("DELETE", "/accounts/1", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestEventLifecycle() {
	w, response := suite.request("POST", "/events", gin.H{
		"title":       "Kickoff",
		"description": "Project kickoff",
		"date":        "2030-01-15T10:00:00Z",
		"location":    "HQ",
		"responsible": "Ana",
		"latitude":    40.4168,
		"longitude":   -3.7038,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("Kickoff", response["title"])
	suite.Equal(40.4168, response["latitude"])

	w, response = suite.request("GET", "/events/1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("HQ", response["location"])

	w, response = suite.request("PUT", "/events/1", gin.H{
		"title":       "Kickoff v2",
		"description": "Project kickoff",
		"date":        "2030-01-16",
		"location":    "HQ",
		"responsible": "Ana",
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Kickoff v2", response["title"])
	suite.Nil(response["latitude"])

	w, response = suite.request("PUT", "/events/1", gin.H{
		"title":       "Kickoff v2",
		"description": "Project kickoff",
		"date":        "2030-01-16",
		"location":    "HQ",
		"responsible": "Ana",
		"longitude":   200,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("longitude must be between -180 and 180", response["message"])

	w, _ = suite.request("DELETE", "/events/1", nil)
	suite.Equal(http.StatusOK, w.Code)

	w, response = suite.request("GET", "/events/1", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("event not found", response["message"])
}

func (suite *HandlerTestSuite) TestListEventsRange() {
	suite.createTestEvent("early", time.Date(2030, 1, 1, 10, 0, 0, 0, time.Local))
	suite.createTestEvent("mid", time.Date(2030, 1, 5, 10, 0, 0, 0, time.Local))
	suite.createTestEvent("late", time.Date(2030, 1, 9, 10, 0, 0, 0, time.Local))

	w, _ := suite.request("GET", "/events?start_date=2030-01-02&end_date=2030-01-09", nil)
	suite.Equal(http.StatusOK, w.Code)
	var events []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &events))
	suite.Require().Len(events, 2)
	suite.Equal("late", events[0]["title"])
	suite.Equal("mid", events[1]["title"])

	w, response := suite.request("GET", "/events?start_date=2030-01-09&end_date=2030-01-02", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("start_date must be before or equal to end_date", response["message"])
}

func (suite *HandlerTestSuite) TestUpcomingEvents() {
	now := time.Now()
	suite.createTestEvent("past", now.Add(-time.Hour))
	suite.createTestEvent("soon", now.Add(2*time.Hour))
	suite.createTestEvent("later", now.Add(30*time.Hour))

	w, _ := suite.request("GET", "/events/upcoming", nil)
	suite.Equal(http.StatusOK, w.Code)
	var events []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &events))
	suite.Require().Len(events, 1)
	suite.Equal("soon", events[0]["title"])
}

func (suite *HandlerTestSuite) TestCreateTaskDenormalized() {
	account := suite.createTestAccount("Ana", "ana@example.com")
	event := suite.createTestEvent("Kickoff", time.Now().Add(time.Hour))

	w, response := suite.request("POST", "/tasks", gin.H{
		"title":               "Book room",
		"description":         "Reserve the big room",
		"date":                "2030-01-14",
		"assigned_account_id": account.ID,
		"associated_event_id": "1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("pending", response["status"])
	suite.Equal("Ana", response["assigned_account_name"])
	suite.Equal("Kickoff", response["associated_event_title"])
	suite.Equal(float64(event.ID), response["associated_event_id"])

	w, response = suite.request("GET", "/tasks/1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Book room", response["title"])
}

func (suite *HandlerTestSuite) TestCreateTaskEmptyReferences() {
	w, response := suite.request("POST", "/tasks", gin.H{
		"title":               "Loose",
		"description":         "No refs",
		"date":                "2030-01-14",
		"assigned_account_id": "",
		"associated_event_id": nil,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Nil(response["assigned_account_id"])
	suite.Nil(response["assigned_account_name"])
	suite.Nil(response["associated_event_title"])
}

func (suite *HandlerTestSuite) TestCreateTaskUnknownAccount() {
	w, response := suite.request("POST", "/tasks", gin.H{
		"title":               "Orphan",
		"description":         "Unknown account",
		"date":                "2030-01-14",
		"assigned_account_id": 99,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("invalid account", response["message"])

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestTaskListingsAndSelectData() {
	ana := suite.createTestAccount("Ana", "ana@example.com")
	suite.createTestEvent("Kickoff", time.Now().Add(time.Hour))

	for _, body := range []gin.H{
		{"title": "A", "description": "a", "date": "2030-01-02", "assigned_account_id": ana.ID, "associated_event_id": 1},
		{"title": "B", "description": "b", "date": "2030-01-01", "status": "completed"},
	} {
		w, _ := suite.request("POST", "/tasks", body)
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w, _ := suite.request("GET", "/tasks", nil)
	var tasks []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 2)
	suite.Equal("B", tasks[0]["title"])

	w, response := suite.request("GET", "/tasks?status=completed&page=1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"], 1)

	w, response = suite.request("GET", "/tasks?account_id=abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("account_id invalid", response["message"])

	w, _ = suite.request("GET", "/tasks/event/1", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Len(tasks, 1)

	w, _ = suite.request("GET", "/tasks/account/77", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w, response = suite.request("GET", "/tasks/select-data", nil)
	suite.Equal(http.StatusOK, w.Code)
	accounts := response["accounts"].([]interface{})
	suite.Equal(map[string]interface{}{"id": float64(ana.ID), "name": "Ana"}, accounts[0])
	suite.Len(response["events"], 1)
}

func (suite *HandlerTestSuite) TestUpdateAndDeleteTask() {
	w, _ := suite.request("POST", "/tasks", gin.H{"title": "T", "description": "D", "date": "2030-01-01", "status": "in_progress"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w, response := suite.request("PUT", "/tasks/1", gin.H{"title": "T2", "description": "D2", "date": "2030-01-02"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("T2", response["title"])
	suite.Equal("pending", response["status"])

	w, _ = suite.request("PUT", "/tasks/9", gin.H{"title": "T2", "description": "D2", "date": "2030-01-02"})
	suite.Equal(http.StatusNotFound, w.Code)

	w, _ = suite.request("DELETE", "/tasks/1", nil)
	suite.Equal(http.StatusOK, w.Code)

	w, response = suite.request("DELETE", "/tasks/1", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("task not found", response["message"])
}

// TestHandlerTestSuite runs the test suite
func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
