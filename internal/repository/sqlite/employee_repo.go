package sqlite

import (
	"context"
	"database/sql"

	"payroll-bot/internal/domain"
)

type SqliteEmployeeRepo struct {
	db *sql.DB
}

func NewSqliteEmployeeRepo(db *sql.DB) *SqliteEmployeeRepo {
	return &SqliteEmployeeRepo{db: db}
}

// SaveEmployee updates the row with the employee's id, inserting it when missing.
func (r *SqliteEmployeeRepo) SaveEmployee(ctx context.Context, e domain.Employee) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET name = ?, role = ?, base_salary = ?, hours_worked = ?, overtime_hours = ? WHERE id = ?`,
		e.Name, e.Role, e.BaseSalary, e.HoursWorked, e.OvertimeHours, e.ID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, role, base_salary, hours_worked, overtime_hours) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Role, e.BaseSalary, e.HoursWorked, e.OvertimeHours,
	)
	return err
}

func (r *SqliteEmployeeRepo) DeleteEmployee(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	return err
}

func (r *SqliteEmployeeRepo) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, role, base_salary, hours_worked, overtime_hours FROM employees ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.BaseSalary, &e.HoursWorked, &e.OvertimeHours); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// LastIssuedID reports the highest employee id ever stored, including ids of
// rows deleted since.
func (r *SqliteEmployeeRepo) LastIssuedID(ctx context.Context) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT seq FROM sqlite_sequence WHERE name = 'employees'), 0)`,
	).Scan(&id)
	return id, err
}
