package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"payroll-bot/internal/domain"
)

// PayrollRow is one CSV line of the payroll history export. Column names
// follow the payroll_records table.
type PayrollRow struct {
	EmployeeID    int     `csv:"employee_id"`
	EmployeeName  string  `csv:"employee_name"`
	HoursWorked   float64 `csv:"hours_worked"`
	OvertimeHours float64 `csv:"overtime_hours"`
	GrossPay      string  `csv:"gross_pay"`
	Tax           string  `csv:"tax"`
	NetPay        string  `csv:"net_pay"`
	PayDate       string  `csv:"pay_date"`
}

func NewPayrollRow(r domain.PayrollRecord) PayrollRow {
	return PayrollRow{
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		HoursWorked:   r.HoursWorked,
		OvertimeHours: r.OvertimeHours,
		GrossPay:      money(r.GrossPay),
		Tax:           money(r.Tax),
		NetPay:        money(r.NetPay),
		PayDate:       r.PayDateString(),
	}
}

func WritePayrollCSV(w io.Writer, records []domain.PayrollRecord) error {
	rows := make([]PayrollRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, NewPayrollRow(r))
	}
	return gocsv.Marshal(rows, w)
}

func PayrollCSV(records []domain.PayrollRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePayrollCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
