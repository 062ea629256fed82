// Package view renders employees and payroll records as chat messages.
package view

import (
	"errors"
	"fmt"
	"strings"

	"payroll-bot/internal/domain"
)

func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func Employee(e domain.Employee) string {
	return fmt.Sprintf("%s (ID: %d): %s, base %s, hours %.1f, overtime %.1f",
		e.Name, e.ID, e.Role, Money(e.BaseSalary), e.HoursWorked, e.OvertimeHours)
}

func Employees(employees []domain.Employee) string {
	if len(employees) == 0 {
		return "No employees yet. Add one with /add Name; Role; Salary"
	}
	var b strings.Builder
	b.WriteString("Employees:\n")
	for _, e := range employees {
		b.WriteString(Employee(e))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func Record(r domain.PayrollRecord) string {
	return fmt.Sprintf("%s %s (ID: %d): hours %.1f, overtime %.1f, gross %s, tax %s, net %s",
		r.PayDateString(), r.EmployeeName, r.EmployeeID, r.HoursWorked, r.OvertimeHours,
		Money(r.GrossPay), Money(r.Tax), Money(r.NetPay))
}

// Records renders a history listing under the given heading.
func Records(heading string, records []domain.PayrollRecord) string {
	if len(records) == 0 {
		return heading + "\nNo payroll records."
	}
	var b strings.Builder
	b.WriteString(heading)
	for _, r := range records {
		b.WriteByte('\n')
		b.WriteString(Record(r))
	}
	return b.String()
}

// Paid is the confirmation shown after a single payroll run.
func Paid(r domain.PayrollRecord) string {
	return fmt.Sprintf("Payroll generated for %s on %s\nGross: %s\nTax: %s\nNet Pay: %s",
		r.EmployeeName, r.PayDateString(), Money(r.GrossPay), Money(r.Tax), Money(r.NetPay))
}

// Error turns a service error into a reply. Validation and lookup failures are
// shown as is; anything else is reported generically.
func Error(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		return "Error: " + err.Error()
	case errors.Is(err, domain.ErrStorage):
		return "Warning: the change is kept but could not be saved to the database."
	default:
		return "Something went wrong, please try again."
	}
}
