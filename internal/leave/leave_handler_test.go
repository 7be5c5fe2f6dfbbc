package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/leave"
	leaveerrors "go-payroll/internal/leave/errors"
	leaveMock "go-payroll/internal/leave/mock"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func newLeaveRouter(t *testing.T, actor *domain.Actor) (*gin.Engine, *leaveMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := leaveMock.NewMockService(gomock.NewController(t))
	h := leave.NewHandler(svc)

	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetActor(c, *actor)
			c.Next()
		})
	}
	r.POST("/leave-requests", h.Request)
	r.POST("/leave-requests/:id/approve", h.Approve)
	r.POST("/leave-requests/:id/cancel", h.Cancel)
	r.GET("/leave-balances", h.ListBalances)
	return r, svc
}

func TestLeaveHandler_Request(t *testing.T) {
	actor := &domain.Actor{UserID: "u1", Role: domain.RoleWorker, CompanyID: "c1", WorkerID: "w1"}

	t.Run("created", func(t *testing.T) {
		r, svc := newLeaveRouter(t, actor)
		svc.EXPECT().Request(gomock.Any(), *actor, leave.CreateLeaveRequest{
			LeaveTypeID: "7d1d7e1c-6f5c-4a63-9d3e-0c6d9f6f2a11",
			StartDate:   "2024-06-05",
			EndDate:     "2024-06-07",
			Reason:      "family",
		}).Return(leave.LeaveRequestResponse{ID: "lr-1", Status: "pending", Days: 3}, nil)

		body := `{"leave_type_id":"7d1d7e1c-6f5c-4a63-9d3e-0c6d9f6f2a11","start_date":"2024-06-05","end_date":"2024-06-07","reason":"family"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"days":3`)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		r, svc := newLeaveRouter(t, actor)
		svc.EXPECT().Request(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leave.LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]string{"remaining_days": "1"}))

		body := `{"leave_type_id":"7d1d7e1c-6f5c-4a63-9d3e-0c6d9f6f2a11","start_date":"2024-06-05","end_date":"2024-06-07"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
		assert.JSONEq(t, `{"remaining_days":"1"}`, string(env.Error.Details))
	})

	t.Run("missing leave type", func(t *testing.T) {
		r, _ := newLeaveRouter(t, actor)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests",
			strings.NewReader(`{"start_date":"2024-06-05","end_date":"2024-06-07"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no actor", func(t *testing.T) {
		r, _ := newLeaveRouter(t, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLeaveHandler_Review(t *testing.T) {
	actor := &domain.Actor{UserID: "u2", Role: domain.RoleSubconAdmin, CompanyID: "c1"}

	t.Run("approve with comment", func(t *testing.T) {
		r, svc := newLeaveRouter(t, actor)
		svc.EXPECT().Approve(gomock.Any(), *actor, "lr-1", "ok").
			Return(leave.LeaveRequestResponse{ID: "lr-1", Status: "approved", TimesheetsUpdated: 1}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/lr-1/approve", strings.NewReader(`{"comment":"ok"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"timesheets_updated":1`)
	})

	t.Run("cancel without body", func(t *testing.T) {
		r, svc := newLeaveRouter(t, actor)
		svc.EXPECT().Cancel(gomock.Any(), *actor, "lr-1", "").
			Return(leave.LeaveRequestResponse{}, leaveerrors.ErrInvalidStatusTransition)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/lr-1/cancel", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_ListBalances(t *testing.T) {
	actor := &domain.Actor{UserID: "u1", Role: domain.RoleWorker, CompanyID: "c1", WorkerID: "w1"}
	r, svc := newLeaveRouter(t, actor)
	svc.EXPECT().ListBalances(gomock.Any(), *actor, "", "2024").
		Return([]leave.LeaveBalanceResponse{{LeaveTypeCode: "ANNUAL", RemainingDays: 8}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-balances?year=2024", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining_days":8`)
}
