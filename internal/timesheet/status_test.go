package timesheet_test

import (
	"testing"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/timesheet"
	timesheeterrors "go-payroll/internal/timesheet/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin  = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	subcon = domain.Actor{UserID: "subcon-1", Role: domain.RoleSubconAdmin}
	agent  = domain.Actor{UserID: "agent-1", Role: domain.RoleAgent}
	wrk    = domain.Actor{UserID: "worker-1", Role: domain.RoleWorker}
	now    = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
)

func TestTimesheet_Approve(t *testing.T) {
	tests := []struct {
		name     string
		actor    domain.Actor
		status   timesheet.Status
		want     timesheet.Status
		wantErr  error
		required string
	}{
		{"subcon approves submitted", subcon, timesheet.StatusSubmitted, timesheet.StatusApprovedSubcon, nil, ""},
		{"subcon on draft", subcon, timesheet.StatusDraft, "", timesheeterrors.ErrInvalidTransition, "submitted"},
		{"admin approves subcon-approved", admin, timesheet.StatusApprovedSubcon, timesheet.StatusApprovedAdmin, nil, ""},
		{"admin cannot skip subcon stage", admin, timesheet.StatusSubmitted, "", timesheeterrors.ErrInvalidTransition, "approved_subcon"},
		{"agent forbidden", agent, timesheet.StatusSubmitted, "", apperror.ErrForbidden, ""},
		{"worker forbidden", wrk, timesheet.StatusSubmitted, "", apperror.ErrForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &timesheet.Timesheet{Status: tt.status}
			err := ts.Approve(tt.actor, "looks good", now)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, ts.Status)
				assert.Empty(t, ts.ApprovalHistory)
				if tt.required != "" {
					details := apperror.ToHTTP(err).Details.(map[string]string)
					assert.Equal(t, string(tt.status), details["current_status"])
					assert.Equal(t, tt.required, details["required_status"])
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.Status)
			require.Len(t, ts.ApprovalHistory, 1)
			h := ts.ApprovalHistory[0]
			assert.Equal(t, tt.actor.UserID, h.ApprovedBy)
			assert.Equal(t, string(tt.actor.Role), h.Role)
			assert.Equal(t, "approved", h.Status)
			assert.Equal(t, "looks good", h.Comments)
			assert.Equal(t, now, h.Timestamp)
		})
	}
}

func TestTimesheet_TwoStageApproval(t *testing.T) {
	ts := &timesheet.Timesheet{Status: timesheet.StatusDraft}

	require.NoError(t, ts.Submit())
	require.NoError(t, ts.Approve(subcon, "", now))
	require.NoError(t, ts.Approve(admin, "", now))

	assert.Equal(t, timesheet.StatusApprovedAdmin, ts.Status)
	assert.Len(t, ts.ApprovalHistory, 2)
	assert.True(t, ts.Status.IsTerminal())
	assert.ErrorIs(t, ts.Approve(admin, "", now), timesheeterrors.ErrInvalidTransition)
}

func TestTimesheet_Submit(t *testing.T) {
	ts := &timesheet.Timesheet{Status: timesheet.StatusSubmitted}
	assert.ErrorIs(t, ts.Submit(), timesheeterrors.ErrInvalidTransition)
}

func TestTimesheet_RejectAndCancel(t *testing.T) {
	for _, st := range []timesheet.Status{timesheet.StatusDraft, timesheet.StatusSubmitted, timesheet.StatusApprovedSubcon} {
		ts := &timesheet.Timesheet{Status: st}
		require.NoError(t, ts.Reject(subcon, "missing hours", now), st)
		assert.Equal(t, timesheet.StatusRejected, ts.Status)
		assert.Equal(t, "rejected", ts.ApprovalHistory[0].Status)

		ts = &timesheet.Timesheet{Status: st}
		require.NoError(t, ts.Cancel(agent, "", now), st)
		assert.Equal(t, timesheet.StatusCancelled, ts.Status)
	}

	for _, st := range []timesheet.Status{timesheet.StatusApprovedAdmin, timesheet.StatusApproved, timesheet.StatusRejected, timesheet.StatusCancelled} {
		ts := &timesheet.Timesheet{Status: st}
		assert.ErrorIs(t, ts.Reject(admin, "", now), timesheeterrors.ErrInvalidTransition, st)
		assert.ErrorIs(t, ts.Cancel(admin, "", now), timesheeterrors.ErrInvalidTransition, st)
	}

	assert.ErrorIs(t, (&timesheet.Timesheet{Status: timesheet.StatusDraft}).Reject(agent, "", now), apperror.ErrForbidden)
	assert.ErrorIs(t, (&timesheet.Timesheet{Status: timesheet.StatusDraft}).Cancel(wrk, "", now), apperror.ErrForbidden)
}

func TestStatus_Editable(t *testing.T) {
	assert.True(t, timesheet.StatusDraft.Editable())
	assert.True(t, timesheet.StatusSubmitted.Editable())
	assert.False(t, timesheet.StatusApprovedSubcon.Editable())
	assert.False(t, timesheet.StatusApproved.Editable())
	assert.True(t, timesheet.StatusApproved.IsFinalApproved())
}
