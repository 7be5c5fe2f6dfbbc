package leave

func mapTypeToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          t.ID.String(),
		Code:        t.Code,
		Name:        t.Name,
		IsPaid:      t.IsPaid,
		DefaultDays: t.DefaultDays.InexactFloat64(),
	}
}

func mapRequestToResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            lr.ID.String(),
		CompanyID:     lr.CompanyID.String(),
		WorkerID:      lr.WorkerID.String(),
		LeaveTypeID:   lr.LeaveTypeID.String(),
		LeaveTypeCode: lr.LeaveType.Code,
		StartDate:     lr.StartDate.Format(dateLayout),
		EndDate:       lr.EndDate.Format(dateLayout),
		Days:          lr.Days.InexactFloat64(),
		Reason:        lr.Reason,
		Status:        string(lr.Status),
		RequestedBy:   lr.RequestedBy,
		ReviewedBy:    lr.ReviewedBy,
		ReviewComment: lr.ReviewComment,
	}
}

func mapBalanceToResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		LeaveTypeID:   b.LeaveTypeID.String(),
		LeaveTypeCode: b.LeaveType.Code,
		IsPaid:        b.LeaveType.IsPaid,
		Year:          b.Year,
		TotalDays:     b.TotalDays.InexactFloat64(),
		UsedDays:      b.UsedDays.InexactFloat64(),
		PendingDays:   b.PendingDays.InexactFloat64(),
		RemainingDays: b.Remaining().InexactFloat64(),
	}
}
