package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    base_salary REAL NOT NULL,
    hours_worked REAL DEFAULT 0,
    overtime_hours REAL DEFAULT 0
);
`

const createPayrollRecordsTable = `
CREATE TABLE IF NOT EXISTS payroll_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    employee_id INTEGER,
    employee_name TEXT,
    hours_worked REAL,
    overtime_hours REAL,
    gross_pay REAL,
    tax REAL,
    net_pay REAL,
    pay_date TEXT
);
`

// payroll_records.employee_id has no foreign key: history outlives removed employees.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{createEmployeesTable, createPayrollRecordsTable} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Open opens the database file and applies migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
