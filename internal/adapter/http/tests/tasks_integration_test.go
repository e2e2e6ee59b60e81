//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dbadapter "studyplanner/internal/adapter/db"
	httpadapter "studyplanner/internal/adapter/http"
	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/adapter/http/handlers"
	"studyplanner/internal/app/planner"
	appservice "studyplanner/internal/app/service"
	"studyplanner/pkg/apierrors"
	"studyplanner/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  filepath.Join("..", "..", "..", "..", "pkg", "translator", "translation"),
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageKo},
	})
	os.Exit(m.Run())
}

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	router := gin.New()
	healthHandler := handlers.NewHealthHandler(s.DB)
	taskRepository := dbadapter.NewTaskRepository(s.DB)
	// No generator wired: every derivation takes the fallback plan, which
	// keeps the suite deterministic and offline.
	taskService := appservice.NewTaskService(taskRepository, planner.NewDeriver(nil))
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(router, healthHandler, taskHandler)

	s.router = router
}

func (s *TasksIntegrationSuite) createTask(userID, title, deadline string) dto.CreateTaskResponse {
	body := fmt.Sprintf(`{"title":%q,"description":"integration","deadline":%q,"userId":%q}`, title, deadline, userID)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusCreated, rec.Code)

	var got dto.CreateTaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func deadlineIn(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func (s *TasksIntegrationSuite) TestPostTasks_CreatesTaskWithDerivedPlan() {
	got := s.createTask("u1", "Operating systems report", deadlineIn(4))

	s.Require().True(got.Success)
	s.Require().NotEmpty(got.TaskID)
	s.Require().Equal(got.TaskID, got.Task.ID)
	s.Require().Equal("Operating systems report", got.Task.Title)
	s.Require().Equal(0, got.Task.Progress)
	s.Require().NotEmpty(got.Task.Plan.Difficulty)
	s.Require().GreaterOrEqual(got.Task.Plan.EstimatedHours, 4.0)
	s.Require().Len(got.Task.Plan.Steps, 6)
	s.Require().NotEmpty(got.Task.Plan.DailyPlans)
	s.Require().Len(got.Task.Checklist, 6)
	for _, item := range got.Task.Checklist {
		s.Require().False(item.Done)
	}

	var count int
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(*) FROM checklists WHERE task_id = ?", got.TaskID))
	s.Require().Equal(1, count)
}

func (s *TasksIntegrationSuite) TestPostTasks_ReturnsBadRequestWhenPayloadIsInvalid() {
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusBadRequest, got.ErrDetails.Code)
	s.Require().Equal("Invalid task payload", got.ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestGetTasks_FiltersByUser() {
	s.createTask("u1", "Database assignment", deadlineIn(3))
	s.createTask("u1", "Networks lab", deadlineIn(6))
	s.createTask("u2", "Compiler project", deadlineIn(10))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?userId=u1", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 2)
	for _, item := range got {
		s.Require().Equal("u1", item.UserID)
		s.Require().Len(item.Checklist, 6)
	}
}

func (s *TasksIntegrationSuite) TestGetTasks_ReturnsEmptyListWhenNoTasks() {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 0)
}

func (s *TasksIntegrationSuite) TestGetTasks_ReturnsInternalServerErrorWhenQueryFails() {
	_, err := s.DB.Exec("DROP TABLE checklists")
	s.Require().NoError(err)
	_, err = s.DB.Exec("DROP TABLE tasks")
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusInternalServerError, got.ErrDetails.Code)
	s.Require().Equal("Failed to list tasks", got.ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestGetTask_ReturnsTask() {
	created := s.createTask("u1", "Algorithms homework", deadlineIn(1))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+created.TaskID, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(created.TaskID, got.ID)
	s.Require().Equal("high", got.Priority)
	s.Require().Len(got.Checklist, 6)
}

func (s *TasksIntegrationSuite) TestGetTask_ReturnsNotFoundWhenTaskDoesNotExist() {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks/00000000-0000-0000-0000-000000000000", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusNotFound, got.ErrDetails.Code)
	s.Require().Equal("Task not found", got.ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestPutStep_UpdatesProgress() {
	created := s.createTask("u1", "Statistics problem set", deadlineIn(5))

	req := httptest.NewRequest(
		http.MethodPut,
		"/api/tasks/"+created.TaskID+"/step",
		strings.NewReader(`{"stepIndex":0,"done":true}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.ToggleStepResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().True(got.Success)
	s.Require().Equal(17, got.Progress)

	var progress int
	s.Require().NoError(s.DB.Get(&progress, "SELECT progress FROM tasks WHERE id = ?", created.TaskID))
	s.Require().Equal(17, progress)

	// Untoggling brings the task back to zero.
	req = httptest.NewRequest(
		http.MethodPut,
		"/api/tasks/"+created.TaskID+"/step",
		strings.NewReader(`{"stepIndex":0,"done":false}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(0, got.Progress)
}

func (s *TasksIntegrationSuite) TestPutStep_ReturnsBadRequestWhenStepIsOutOfRange() {
	created := s.createTask("u1", "Physics lab write-up", deadlineIn(5))

	req := httptest.NewRequest(
		http.MethodPut,
		"/api/tasks/"+created.TaskID+"/step",
		strings.NewReader(`{"stepIndex":99,"done":true}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("stepIndex out of range", got.ErrDetails.Message)

	var progress int
	s.Require().NoError(s.DB.Get(&progress, "SELECT progress FROM tasks WHERE id = ?", created.TaskID))
	s.Require().Equal(0, progress)
}

func (s *TasksIntegrationSuite) TestPutStep_ReturnsNotFoundWhenChecklistDoesNotExist() {
	req := httptest.NewRequest(
		http.MethodPut,
		"/api/tasks/00000000-0000-0000-0000-000000000000/step",
		strings.NewReader(`{"stepIndex":0,"done":true}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("Checklist not found", got.ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestDeleteTask_RemovesTaskAndChecklist() {
	created := s.createTask("u1", "History essay", deadlineIn(8))

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+created.TaskID, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusNoContent, rec.Code)

	var count int
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(*) FROM tasks WHERE id = ?", created.TaskID))
	s.Require().Equal(0, count)
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(*) FROM checklists WHERE task_id = ?", created.TaskID))
	s.Require().Equal(0, count)

	req = httptest.NewRequest(http.MethodDelete, "/api/tasks/"+created.TaskID, nil)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusNotFound, rec.Code)
}
