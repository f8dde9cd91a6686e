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
	"github.com/taskboard/kanban-api/internal/database"
	"github.com/taskboard/kanban-api/internal/dto"
	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/repository"
	"github.com/taskboard/kanban-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	router  *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Team{},
		&models.UserTeam{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	columnRepo := repository.NewColumnRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, columnRepo, userRepo))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create router
	suite.router = gin.New()
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestBoard(ownerID uint64) *models.Board {
	workspace := &models.Workspace{Name: "Test Workspace", OwnerID: ownerID}
	suite.db.Create(workspace)
	board := &models.Board{Name: "Test Board", WorkspaceID: workspace.ID}
	suite.db.Create(board)
	return board
}

func (suite *TaskHandlerTestSuite) createTestColumn(boardID uint64, order int) *models.Column {
	column := &models.Column{Name: "Test Column", BoardID: boardID, Order: order}
	suite.db.Create(column)
	return column
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, columnID uint64, order int) *models.Task {
	task := &models.Task{
		Title:    title,
		ColumnID: columnID,
		Order:    order,
		Priority: models.TaskPriorityMedium,
		Category: "general",
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set("user_id", userID)

	return c, w
}

// Helper function to set task context (simulates RequireTaskAccess middleware)
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set("task", task)
}

func (suite *TaskHandlerTestSuite) columnOrders(columnID uint64) map[uint64]int {
	var tasks []models.Task
	suite.db.Where("column_id = ?", columnID).Find(&tasks)
	orders := make(map[uint64]int, len(tasks))
	for _, t := range tasks {
		orders[t.ID] = t.Order
	}
	return orders
}

// TestListTasks_Success tests that tasks come back sorted by order
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	suite.createTestTask("second", column.ID, 1)
	suite.createTestTask("first", column.ID, 0)

	c, w := suite.createAuthContext("GET", "/api/columns/1/tasks", nil, user.ID)
	c.Params = gin.Params{{Key: "columnId", Value: "1"}}

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 2)
	assert.Equal(suite.T(), "first", response[0].Title)
	assert.Equal(suite.T(), "second", response[1].Title)
	assert.Equal(suite.T(), 0, response[0].Order)
	assert.Equal(suite.T(), 1, response[1].Order)
}

// TestListTasks_ColumnNotFound tests listing tasks of a missing column
func (suite *TaskHandlerTestSuite) TestListTasks_ColumnNotFound() {
	user := suite.createTestUser("alice")

	c, w := suite.createAuthContext("GET", "/api/columns/99/tasks", nil, user.ID)
	c.Params = gin.Params{{Key: "columnId", Value: "99"}}

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_AppendsAtEnd tests that a new task lands at the end of
// its column regardless of any order value in the request
func (suite *TaskHandlerTestSuite) TestCreateTask_AppendsAtEnd() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	suite.createTestTask("a", column.ID, 0)
	suite.createTestTask("b", column.ID, 1)

	requestBody := map[string]interface{}{
		"title":     "c",
		"column_id": column.ID,
		"category":  "general",
		"order":     0, // ignored, server recomputes
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "c", response.Title)
	assert.Equal(suite.T(), 2, response.Order)
	assert.Equal(suite.T(), models.TaskPriorityMedium, response.Priority)
}

// TestCreateTask_InvalidRequest tests task creation with a missing title
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)

	requestBody := map[string]interface{}{
		"column_id": column.ID,
		"category":  "general",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_ColumnNotFound tests creation into a missing column
func (suite *TaskHandlerTestSuite) TestCreateTask_ColumnNotFound() {
	user := suite.createTestUser("alice")

	requestBody := map[string]interface{}{
		"title":     "orphan",
		"column_id": 99,
		"category":  "general",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetTask_Success tests successful task retrieval
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	task := suite.createTestTask("Test Task", column.ID, 0)

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID, response.ID)
	assert.Equal(suite.T(), task.Title, response.Title)
}

// TestGetTask_NotFoundInContext tests when task is not in context
func (suite *TaskHandlerTestSuite) TestGetTask_NotFoundInContext() {
	user := suite.createTestUser("alice")
	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, user.ID)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

// TestUpdateTask_ClearAssignee tests that an explicit null assignee_id
// clears the assignee while an absent field leaves it untouched
func (suite *TaskHandlerTestSuite) TestUpdateTask_ClearAssignee() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	task := suite.createTestTask("Test Task", column.ID, 0)
	suite.db.Model(task).Update("assignee_id", user.ID)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte(`{"assignee_id": null}`), user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.AssigneeID)
}

// TestUpdateTask_PartialFields tests that unnamed fields survive a patch
func (suite *TaskHandlerTestSuite) TestUpdateTask_PartialFields() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	task := suite.createTestTask("Test Task", column.ID, 0)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte(`{"title": "Renamed"}`), user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed", response.Title)
	assert.Equal(suite.T(), "general", response.Category)
	assert.Equal(suite.T(), 0, response.Order)
}

// TestDeleteTask_CompactsColumn tests that deleting a middle task
// renumbers the survivors back to a dense sequence
func (suite *TaskHandlerTestSuite) TestDeleteTask_CompactsColumn() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	first := suite.createTestTask("a", column.ID, 0)
	middle := suite.createTestTask("b", column.ID, 1)
	last := suite.createTestTask("c", column.ID, 2)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/2", nil, user.ID)
	suite.setTaskContext(c, *middle)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	orders := suite.columnOrders(column.ID)
	assert.Len(suite.T(), orders, 2)
	assert.Equal(suite.T(), 0, orders[first.ID])
	assert.Equal(suite.T(), 1, orders[last.ID])
}

// TestMoveTask_AcrossColumns tests a cross-column move: the task leaves
// the source, lands at the requested index, and both columns stay dense
func (suite *TaskHandlerTestSuite) TestMoveTask_AcrossColumns() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	source := suite.createTestColumn(board.ID, 0)
	dest := suite.createTestColumn(board.ID, 1)
	moved := suite.createTestTask("moved", source.ID, 0)
	below := suite.createTestTask("below", source.ID, 1)
	existing := suite.createTestTask("existing", dest.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"column_id": dest.ID,
		"order":     0,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/move", body, user.ID)
	suite.setTaskContext(c, *moved)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), dest.ID, response.ColumnID)
	assert.Equal(suite.T(), 0, response.Order)

	sourceOrders := suite.columnOrders(source.ID)
	assert.Len(suite.T(), sourceOrders, 1)
	assert.Equal(suite.T(), 0, sourceOrders[below.ID])

	destOrders := suite.columnOrders(dest.ID)
	assert.Len(suite.T(), destOrders, 2)
	assert.Equal(suite.T(), 0, destOrders[moved.ID])
	assert.Equal(suite.T(), 1, destOrders[existing.ID])
}

// TestMoveTask_AppendIndex tests that index == destination length is a
// valid append position
func (suite *TaskHandlerTestSuite) TestMoveTask_AppendIndex() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	source := suite.createTestColumn(board.ID, 0)
	dest := suite.createTestColumn(board.ID, 1)
	moved := suite.createTestTask("moved", source.ID, 0)
	suite.createTestTask("existing", dest.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"column_id": dest.ID,
		"order":     1,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/move", body, user.ID)
	suite.setTaskContext(c, *moved)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, response.Order)
}

// TestMoveTask_InvalidIndex tests that an out-of-range destination
// index is rejected and nothing is persisted
func (suite *TaskHandlerTestSuite) TestMoveTask_InvalidIndex() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	source := suite.createTestColumn(board.ID, 0)
	dest := suite.createTestColumn(board.ID, 1)
	moved := suite.createTestTask("moved", source.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"column_id": dest.ID,
		"order":     5,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/move", body, user.ID)
	suite.setTaskContext(c, *moved)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Source column untouched
	orders := suite.columnOrders(source.ID)
	assert.Equal(suite.T(), 0, orders[moved.ID])
}

// TestMoveTask_MissingOrder tests that the order field is required
func (suite *TaskHandlerTestSuite) TestMoveTask_MissingOrder() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	task := suite.createTestTask("task", column.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"column_id": column.ID,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/move", body, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestMoveTask_DestinationColumnNotFound tests moving into a missing column
func (suite *TaskHandlerTestSuite) TestMoveTask_DestinationColumnNotFound() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	task := suite.createTestTask("task", column.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"column_id": 99,
		"order":     0,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/move", body, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestMoveTask_SameColumnReorder tests moving a task within its column
func (suite *TaskHandlerTestSuite) TestMoveTask_SameColumnReorder() {
	user := suite.createTestUser("alice")
	board := suite.createTestBoard(user.ID)
	column := suite.createTestColumn(board.ID, 0)
	first := suite.createTestTask("a", column.ID, 0)
	second := suite.createTestTask("b", column.ID, 1)
	third := suite.createTestTask("c", column.ID, 2)

	body, _ := json.Marshal(map[string]interface{}{
		"column_id": column.ID,
		"order":     2,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/move", body, user.ID)
	suite.setTaskContext(c, *first)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	orders := suite.columnOrders(column.ID)
	assert.Equal(suite.T(), 0, orders[second.ID])
	assert.Equal(suite.T(), 1, orders[third.ID])
	assert.Equal(suite.T(), 2, orders[first.ID])
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
