package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
)

type attendanceSource struct {
	db *database.DB
}

func NewAttendanceSource(db *database.DB) payroll.AttendanceSource {
	return &attendanceSource{db: db}
}

// GetSummary aggregates the month's attendance records plus approved
// leave overlapping the month. Half days count as 0.5 present and 0.5
// absent. An employee with no records yields a zero summary, which the
// calculation layer treats as a degenerate period.
func (r *attendanceSource) GetSummary(ctx context.Context, orgID, employeeID string, month, year int) (payroll.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	query := `
		SELECT COUNT(*),
			COALESCE(SUM(CASE status
				WHEN 'present' THEN 1
				WHEN 'half_day' THEN 0.5
				ELSE 0 END), 0),
			COALESCE(SUM(CASE status
				WHEN 'absent' THEN 1
				WHEN 'half_day' THEN 0.5
				ELSE 0 END), 0),
			COALESCE(SUM(overtime_hours), 0)
		FROM attendance_records
		WHERE org_id = $1 AND employee_id = $2 AND work_date BETWEEN $3 AND $4
	`

	summary := payroll.AttendanceSummary{EmployeeID: employeeID}
	err := q.QueryRow(ctx, query, orgID, employeeID, monthStart, monthEnd).Scan(
		&summary.WorkingDays, &summary.PresentDays, &summary.AbsentDays, &summary.OvertimeHours,
	)
	if err != nil {
		return payroll.AttendanceSummary{}, fmt.Errorf("%w: %v", payroll.ErrAttendanceUnavailable, err)
	}

	// Approved leave is clipped to the month before counting days.
	leaveQuery := `
		SELECT COALESCE(SUM(
			LEAST(end_date, $4::date) - GREATEST(start_date, $3::date) + 1
		), 0)
		FROM leave_requests
		WHERE org_id = $1 AND employee_id = $2 AND status = 'approved'
			AND start_date <= $4 AND end_date >= $3
	`

	err = q.QueryRow(ctx, leaveQuery, orgID, employeeID, monthStart, monthEnd).Scan(&summary.LeaveDays)
	if err != nil {
		return payroll.AttendanceSummary{}, fmt.Errorf("%w: %v", payroll.ErrAttendanceUnavailable, err)
	}

	return summary, nil
}
