package domain

import (
	"context"
	"time"
)

// DateLayout is the ISO-8601 calendar date used wherever a pay date leaves the process.
const DateLayout = "2006-01-02"

// PayrollRecord is a snapshot of one pay computation. The employee name and
// hours are copied at computation time and never follow later edits.
type PayrollRecord struct {
	EmployeeID    int
	EmployeeName  string
	HoursWorked   float64
	OvertimeHours float64
	GrossPay      float64
	Tax           float64
	NetPay        float64
	PayDate       time.Time
}

func (r PayrollRecord) PayDateString() string {
	return r.PayDate.Format(DateLayout)
}

// Ledger is the append-only payroll history.
type Ledger interface {
	Append(r PayrollRecord)
	ListAll() []PayrollRecord
	ListBetween(from, to time.Time) []PayrollRecord
	TotalGrossPay() float64
	Len() int
}

type PayrollRepo interface {
	SavePayrollRecord(ctx context.Context, r PayrollRecord) error
	GetAllPayrollRecords(ctx context.Context) ([]PayrollRecord, error)
}

// DateOf truncates t to its calendar day, expressed in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
