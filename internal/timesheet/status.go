package timesheet

import (
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	timesheeterrors "go-payroll/internal/timesheet/errors"
)

type Status string

const (
	StatusDraft          Status = "draft"
	StatusSubmitted      Status = "submitted"
	StatusApprovedSubcon Status = "approved_subcon"
	StatusApprovedAdmin  Status = "approved_admin"
	StatusRejected       Status = "rejected"
	StatusCancelled      Status = "cancelled"

	// StatusApproved is the legacy single-stage approval; treated as approved_admin.
	StatusApproved Status = "approved"
)

const (
	historyApproved  = "approved"
	historyRejected  = "rejected"
	historyCancelled = "cancelled"
	nonTerminal      = "non-terminal"
)

// PayableStatuses are the statuses payroll reads hours from.
var PayableStatuses = []Status{StatusApprovedAdmin, StatusApproved}

func (s Status) IsFinalApproved() bool {
	return s == StatusApprovedAdmin || s == StatusApproved
}

func (s Status) IsTerminal() bool {
	return s.IsFinalApproved() || s == StatusRejected || s == StatusCancelled
}

// Editable reports whether entries may still change.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusSubmitted
}

func (t *Timesheet) ensureEditable() error {
	if !t.Status.Editable() {
		return timesheeterrors.ErrTimesheetLocked.WithDetails(map[string]string{"current_status": string(t.Status)})
	}
	return nil
}

func (t *Timesheet) Submit() error {
	if t.Status != StatusDraft {
		return timesheeterrors.InvalidTransition(string(t.Status), string(StatusDraft))
	}
	t.Status = StatusSubmitted
	return nil
}

// Approve advances one approval stage. A subcon-admin signs off submitted
// timesheets; an admin signs off those the subcon-admin approved.
func (t *Timesheet) Approve(actor domain.Actor, comments string, at time.Time) error {
	var required, next Status
	switch actor.Role {
	case domain.RoleSubconAdmin:
		required, next = StatusSubmitted, StatusApprovedSubcon
	case domain.RoleAdmin:
		required, next = StatusApprovedSubcon, StatusApprovedAdmin
	default:
		return apperror.ErrForbidden
	}

	if t.Status != required {
		return timesheeterrors.InvalidTransition(string(t.Status), string(required))
	}

	t.Status = next
	t.appendHistory(actor, historyApproved, comments, at)
	return nil
}

func (t *Timesheet) Reject(actor domain.Actor, comments string, at time.Time) error {
	if actor.Role != domain.RoleSubconAdmin && actor.Role != domain.RoleAdmin {
		return apperror.ErrForbidden
	}
	if t.Status.IsTerminal() {
		return timesheeterrors.InvalidTransition(string(t.Status), nonTerminal)
	}

	t.Status = StatusRejected
	t.appendHistory(actor, historyRejected, comments, at)
	return nil
}

func (t *Timesheet) Cancel(actor domain.Actor, comments string, at time.Time) error {
	if actor.Role == domain.RoleWorker {
		return apperror.ErrForbidden
	}
	if t.Status.IsTerminal() {
		return timesheeterrors.InvalidTransition(string(t.Status), nonTerminal)
	}

	t.Status = StatusCancelled
	t.appendHistory(actor, historyCancelled, comments, at)
	return nil
}

func (t *Timesheet) appendHistory(actor domain.Actor, status, comments string, at time.Time) {
	t.ApprovalHistory = append(t.ApprovalHistory, ApprovalEntry{
		ApprovedBy: actor.UserID,
		Role:       string(actor.Role),
		Status:     status,
		Comments:   comments,
		Timestamp:  at.UTC(),
	})
}
