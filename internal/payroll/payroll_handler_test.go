package payroll_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	payrollMock "go-payroll/internal/payroll/mock"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *payrollMock.MockService, domain.Actor) {
	gin.SetMode(gin.TestMode)
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin, CompanyID: "c1"}
	svc := payrollMock.NewMockService(gomock.NewController(t))
	h := payroll.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	})
	r.POST("/payroll-records/generate", h.Generate)
	r.POST("/payroll-records/batch", h.EnqueueBatch)
	r.GET("/payroll-records", h.List)
	r.GET("/payroll-records/:id", h.GetByID)
	r.POST("/payroll-records/:id/approve", h.Approve)
	r.POST("/payroll-records/:id/mark-paid", h.MarkPaid)
	r.DELETE("/payroll-records/:id", h.Delete)
	r.GET("/payroll-records/:id/payslip", h.DownloadPayslip)
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

const workerUUID = "7d1d7e1c-6f5c-4a63-9d3e-0c6d9f6f2a11"

func TestPayrollHandler_Generate(t *testing.T) {
	body := `{"worker_id":"` + workerUUID + `","period_start":"2024-06-01","period_end":"2024-06-30"}`

	t.Run("201 when created", func(t *testing.T) {
		r, svc, actor := setupRouter(t)
		svc.EXPECT().GeneratePayroll(gomock.Any(), actor, workerUUID, date("2024-06-01"), date("2024-06-30")).
			Return(payroll.PayrollResponse{ID: "p1", NetPay: 2817}, true, nil)

		w := serve(r, http.MethodPost, "/payroll-records/generate", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"net_pay":2817`)
	})

	t.Run("200 when period already generated", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().GeneratePayroll(gomock.Any(), gomock.Any(), workerUUID, gomock.Any(), gomock.Any()).
			Return(payroll.PayrollResponse{ID: "p1"}, false, nil)

		w := serve(r, http.MethodPost, "/payroll-records/generate", body)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("configuration error is 422", func(t *testing.T) {
		r, svc, _ := setupRouter(t)
		svc.EXPECT().GeneratePayroll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(payroll.PayrollResponse{}, false, apperror.Configuration("payrollInfo.hourlyRate"))

		w := serve(r, http.MethodPost, "/payroll-records/generate", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "CONFIGURATION_ERROR")
		assert.Contains(t, w.Body.String(), "payrollInfo.hourlyRate")
	})

	t.Run("reversed period", func(t *testing.T) {
		r, _, _ := setupRouter(t)
		w := serve(r, http.MethodPost, "/payroll-records/generate",
			`{"worker_id":"`+workerUUID+`","period_start":"2024-06-30","period_end":"2024-06-01"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing worker", func(t *testing.T) {
		r, _, _ := setupRouter(t)
		w := serve(r, http.MethodPost, "/payroll-records/generate", `{"period_start":"2024-06-01","period_end":"2024-06-30"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}

func TestPayrollHandler_EnqueueBatch(t *testing.T) {
	r, svc, actor := setupRouter(t)
	svc.EXPECT().EnqueueBatch(gomock.Any(), actor, "c1", date("2024-06-01"), date("2024-06-30")).
		Return(payroll.BatchResponse{BatchID: "b1", Enqueued: 4}, nil)

	w := serve(r, http.MethodPost, "/payroll-records/batch", `{"period_start":"2024-06-01","period_end":"2024-06-30"}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"enqueued":4`)
}

func TestPayrollHandler_List(t *testing.T) {
	r, svc, _ := setupRouter(t)
	from := date("2024-01-01")
	svc.EXPECT().List(gomock.Any(), gomock.Any(), payroll.ListFilter{Status: payroll.StatusDraft, PeriodStart: &from}).
		Return([]payroll.PayrollResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)

	w := serve(r, http.MethodGet, "/payroll-records?status=draft&period_start=2024-01-01&page_size=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
}

func TestPayrollHandler_Transitions(t *testing.T) {
	r, svc, _ := setupRouter(t)
	svc.EXPECT().Approve(gomock.Any(), gomock.Any(), "p1").Return(payroll.PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition.WithDetails(
		map[string]string{"current_status": "paid", "required_status": "draft"}))
	svc.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), "p2").Return(payroll.PayrollResponse{ID: "p2", Status: "paid"}, nil)
	svc.EXPECT().Delete(gomock.Any(), gomock.Any(), "p3").Return(nil)
	svc.EXPECT().GetByID(gomock.Any(), gomock.Any(), "p4").Return(payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound)

	w := serve(r, http.MethodPost, "/payroll-records/p1/approve", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"required_status":"draft"`)

	w = serve(r, http.MethodPost, "/payroll-records/p2/mark-paid", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodDelete, "/payroll-records/p3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, http.MethodGet, "/payroll-records/p4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	r, svc, _ := setupRouter(t)
	svc.EXPECT().Payslip(gomock.Any(), gomock.Any(), "p1").
		Return(payroll.Payslip{FileName: "payslip-w-001-2024-06.pdf", Content: []byte("%PDF-1.3 body")}, nil)

	w := serve(r, http.MethodGet, "/payroll-records/p1/payslip", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-w-001-2024-06.pdf")
	assert.Equal(t, "%PDF-1.3 body", w.Body.String())
}
