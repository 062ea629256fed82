package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"payroll-bot/internal/domain"
)

type SqlitePayrollRepo struct {
	db *sql.DB
}

func NewSqlitePayrollRepo(db *sql.DB) *SqlitePayrollRepo {
	return &SqlitePayrollRepo{db: db}
}

func (r *SqlitePayrollRepo) SavePayrollRecord(ctx context.Context, rec domain.PayrollRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payroll_records (employee_id, employee_name, hours_worked, overtime_hours, gross_pay, tax, net_pay, pay_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.EmployeeID,
		rec.EmployeeName,
		rec.HoursWorked,
		rec.OvertimeHours,
		rec.GrossPay,
		rec.Tax,
		rec.NetPay,
		rec.PayDateString(),
	)
	return err
}

// GetAllPayrollRecords returns the stored history in insertion order.
func (r *SqlitePayrollRepo) GetAllPayrollRecords(ctx context.Context) ([]domain.PayrollRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT employee_id, employee_name, hours_worked, overtime_hours, gross_pay, tax, net_pay, pay_date FROM payroll_records ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PayrollRecord
	for rows.Next() {
		var rec domain.PayrollRecord
		var payDate string
		if err := rows.Scan(
			&rec.EmployeeID,
			&rec.EmployeeName,
			&rec.HoursWorked,
			&rec.OvertimeHours,
			&rec.GrossPay,
			&rec.Tax,
			&rec.NetPay,
			&payDate,
		); err != nil {
			return nil, err
		}
		rec.PayDate, err = time.Parse(domain.DateLayout, payDate)
		if err != nil {
			return nil, fmt.Errorf("payroll record for employee %d: %w", rec.EmployeeID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
