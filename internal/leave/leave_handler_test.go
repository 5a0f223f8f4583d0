package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/djval79/careflow-sub001/internal/leave"
	leaveerrors "github.com/djval79/careflow-sub001/internal/leave/errors"
)

type fakeService struct {
	submitFn    func(ctx context.Context, companyID, actorID string, req leave.SubmitLeaveRequest) (leave.SubmissionResult, error)
	getAllFn    func(ctx context.Context, companyID string) ([]leave.LeaveRequestResponse, error)
	getByIDFn   func(ctx context.Context, companyID, id string) (leave.LeaveRequestResponse, error)
	provisionFn func(ctx context.Context, companyID, employeeID string) error
}

func (f *fakeService) Submit(ctx context.Context, companyID, actorID string, req leave.SubmitLeaveRequest) (leave.SubmissionResult, error) {
	return f.submitFn(ctx, companyID, actorID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID string) ([]leave.LeaveRequestResponse, error) {
	return f.getAllFn(ctx, companyID)
}
func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (leave.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeService) ProvisionDefaultEntitlements(ctx context.Context, companyID, employeeID string) error {
	return f.provisionFn(ctx, companyID, employeeID)
}

func submitBody(employeeID string) string {
	return `{"leaveRequest":{"employee_id":"` + employeeID + `","leave_type":"sick","start_date":"2026-09-01","end_date":"2026-09-02","reason":"flu"}}`
}

func TestHandler_Submit_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeService{
		submitFn: func(ctx context.Context, cid, aid string, req leave.SubmitLeaveRequest) (leave.SubmissionResult, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, employeeID, req.EmployeeID)
			return leave.SubmissionResult{
				Data:        leave.LeaveRequestResponse{ID: uuid.New().String(), Status: "approved"},
				Status:      "approved",
				RuleApplied: "Auto-approve short sick leave",
			}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("user_id", actorID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(submitBody(employeeID)))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp["status"])
	assert.Equal(t, "Auto-approve short sick leave", resp["ruleApplied"])
	assert.Contains(t, resp, "data")
}

func TestHandler_Submit_BindFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		submitFn: func(ctx context.Context, cid, aid string, req leave.SubmitLeaveRequest) (leave.SubmissionResult, error) {
			t.Fatal("service must not be called on invalid payload")
			return leave.SubmissionResult{}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{"leaveRequest":{"leave_type":"sick"}}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"]["message"])
}

func TestHandler_Submit_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		submitFn: func(ctx context.Context, cid, aid string, req leave.SubmitLeaveRequest) (leave.SubmissionResult, error) {
			return leave.SubmissionResult{}, leaveerrors.ErrEmployeeNotInCompany
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(submitBody(uuid.New().String())))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "employee does not belong to this company")
}

func TestHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()

	svc := &fakeService{
		getAllFn: func(ctx context.Context, cid string) ([]leave.LeaveRequestResponse, error) {
			assert.Equal(t, companyID, cid)
			return []leave.LeaveRequestResponse{{ID: uuid.New().String()}}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":true")
}
