package timesheet_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/timesheet"
	timesheeterrors "go-payroll/internal/timesheet/errors"
	timesheetMock "go-payroll/internal/timesheet/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *timesheetMock.MockService, domain.Actor) {
	gin.SetMode(gin.TestMode)
	svc := timesheetMock.NewMockService(gomock.NewController(t))
	actor := domain.Actor{UserID: "u1", Role: domain.RoleAgent, CompanyID: uuid.NewString()}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	})
	h := timesheet.NewHandler(svc)
	r.POST("/timesheets", h.Create)
	r.GET("/timesheets", h.List)
	r.PATCH("/timesheets/:id/entries/:date", h.UpdateEntry)
	r.POST("/timesheets/clock-in", h.ClockIn)
	r.POST("/timesheets/:id/approve", h.Approve)
	r.DELETE("/timesheets/:id", h.Delete)
	return r, svc, actor
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTimesheetHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc, actor := setupRouter(t)
		workerID := uuid.NewString()
		svc.EXPECT().Create(gomock.Any(), actor, timesheet.CreateTimesheetRequest{
			WorkerID: workerID, WeekStartDate: "2024-06-03", Site: "KL",
		}).Return(timesheet.TimesheetResponse{ID: "ts-1", Status: "draft"}, nil)

		w := serve(r, http.MethodPost, "/timesheets",
			`{"worker_id":"`+workerID+`","week_start_date":"2024-06-03","site":"KL"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"draft"`)
	})

	t.Run("missing worker", func(t *testing.T) {
		r, _, _ := setupRouter(t)
		w := serve(r, http.MethodPost, "/timesheets", `{"week_start_date":"2024-06-03"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("duplicate week", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(timesheet.TimesheetResponse{}, timesheeterrors.ErrTimesheetExists)

		w := serve(r, http.MethodPost, "/timesheets",
			`{"worker_id":"`+uuid.NewString()+`","week_start_date":"2024-06-03"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTimesheetHandler_List(t *testing.T) {
	t.Run("filters are passed through", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_, _ any, f timesheet.ListFilter) ([]timesheet.TimesheetResponse, error) {
				assert.Equal(t, timesheet.StatusSubmitted, f.Status)
				assert.Equal(t, "2024-06-01", f.From.Format("2006-01-02"))
				assert.Nil(t, f.To)
				return []timesheet.TimesheetResponse{{ID: "a"}, {ID: "b"}}, nil
			})

		w := serve(r, http.MethodGet, "/timesheets?status=submitted&from=2024-06-01", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":2`)
	})

	t.Run("bad date", func(t *testing.T) {
		r, _, _ := setupRouter(t)
		w := serve(r, http.MethodGet, "/timesheets?to=June", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTimesheetHandler_UpdateEntry(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().UpdateEntry(gomock.Any(), gomock.Any(), "ts-1", "2024-06-04", gomock.Any()).
			DoAndReturn(func(_, _, _, _ any, req timesheet.UpdateEntryRequest) (timesheet.TimesheetResponse, error) {
				assert.Equal(t, "08:00", *req.ClockIn)
				assert.Nil(t, req.ClockOut)
				return timesheet.TimesheetResponse{}, timesheeterrors.ErrTimesheetLocked
			})

		w := serve(r, http.MethodPatch, "/timesheets/ts-1/entries/2024-06-04", `{"clock_in":"08:00"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("negative lunch", func(t *testing.T) {
		r, _, _ := setupRouter(t)
		w := serve(r, http.MethodPatch, "/timesheets/ts-1/entries/2024-06-04", `{"lunch_break_minutes":-5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTimesheetHandler_ClockIn(t *testing.T) {
	r, svc, _ := setupRouter(t)
	svc.EXPECT().ClockIn(gomock.Any(), gomock.Any(), timesheet.ClockRequest{}).
		Return(timesheet.TimesheetResponse{ID: "ts-1"}, nil)

	w := serve(r, http.MethodPost, "/timesheets/clock-in", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimesheetHandler_Approve(t *testing.T) {
	t.Run("comments are optional", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().Approve(gomock.Any(), gomock.Any(), "ts-1", "").
			Return(timesheet.TimesheetResponse{ID: "ts-1", Status: "approved_subcon"}, nil)

		w := serve(r, http.MethodPost, "/timesheets/ts-1/approve", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "approved_subcon")
	})

	t.Run("wrong state reports details", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().Approve(gomock.Any(), gomock.Any(), "ts-1", "looks fine").
			Return(timesheet.TimesheetResponse{}, timesheeterrors.InvalidTransition("draft", "submitted"))

		w := serve(r, http.MethodPost, "/timesheets/ts-1/approve", `{"comments":"looks fine"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"current_status":"draft"`)
		assert.Contains(t, w.Body.String(), `"required_status":"submitted"`)
	})
}

func TestTimesheetHandler_Delete(t *testing.T) {
	r, svc, _ := setupRouter(t)
	svc.EXPECT().Delete(gomock.Any(), gomock.Any(), "ts-1").Return(nil)

	w := serve(r, http.MethodDelete, "/timesheets/ts-1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}
