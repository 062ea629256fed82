package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/repository/sqlite"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlite.SqliteEmployeeRepo, *sqlite.SqlitePayrollRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlite.NewSqliteEmployeeRepo(db), sqlite.NewSqlitePayrollRepo(db), mock
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS employees").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS payroll_records").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, sqlite.Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS employees").WillReturnError(errors.New("read-only"))

	err = sqlite.Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "read-only")
}

func TestSaveEmployee(t *testing.T) {
	update := regexp.QuoteMeta(`UPDATE employees SET name = ?, role = ?, base_salary = ?, hours_worked = ?, overtime_hours = ? WHERE id = ?`)
	insert := regexp.QuoteMeta(`INSERT INTO employees (id, name, role, base_salary, hours_worked, overtime_hours) VALUES (?, ?, ?, ?, ?, ?)`)
	e := domain.Employee{ID: 3, Name: "Bob Johnson", Role: "Analyst", BaseSalary: 3500, HoursWorked: 38}

	t.Run("Updates Existing Row", func(t *testing.T) {
		repo, _, mock := newMock(t)
		mock.ExpectExec(update).
			WithArgs("Bob Johnson", "Analyst", 3500.0, 38.0, 0.0, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SaveEmployee(context.Background(), e))
	})

	t.Run("Inserts Missing Row", func(t *testing.T) {
		repo, _, mock := newMock(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(insert).
			WithArgs(3, "Bob Johnson", "Analyst", 3500.0, 38.0, 0.0).
			WillReturnResult(sqlmock.NewResult(3, 1))

		assert.NoError(t, repo.SaveEmployee(context.Background(), e))
	})

	t.Run("Propagates Errors", func(t *testing.T) {
		repo, _, mock := newMock(t)
		mock.ExpectExec(update).WillReturnError(errors.New("database is locked"))

		assert.ErrorContains(t, repo.SaveEmployee(context.Background(), e), "locked")
	})
}

func TestDeleteEmployee(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM employees WHERE id = ?`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteEmployee(context.Background(), 2))
}

func TestGetAllEmployees(t *testing.T) {
	repo, _, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"id", "name", "role", "base_salary", "hours_worked", "overtime_hours"}).
		AddRow(1, "John Doe", "Manager", 5000.0, 40.0, 0.0).
		AddRow(4, "Jane Smith", "Technical", 4000.0, 42.0, 2.0)
	mock.ExpectQuery("SELECT id, name, role, base_salary, hours_worked, overtime_hours FROM employees").
		WillReturnRows(rows)

	employees, err := repo.GetAllEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Employee{
		{ID: 1, Name: "John Doe", Role: "Manager", BaseSalary: 5000, HoursWorked: 40},
		{ID: 4, Name: "Jane Smith", Role: "Technical", BaseSalary: 4000, HoursWorked: 42, OvertimeHours: 2},
	}, employees)
}

func TestLastIssuedID(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(9))

	id, err := repo.LastIssuedID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, id)
}

func TestSavePayrollRecord(t *testing.T) {
	_, repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payroll_records (employee_id, employee_name, hours_worked, overtime_hours, gross_pay, tax, net_pay, pay_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)).
		WithArgs(1, "John Doe", 42.0, 2.0, 4300.0, 645.0, 3655.0, "2024-06-28").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SavePayrollRecord(context.Background(), domain.PayrollRecord{
		EmployeeID:    1,
		EmployeeName:  "John Doe",
		HoursWorked:   42,
		OvertimeHours: 2,
		GrossPay:      4300,
		Tax:           645,
		NetPay:        3655,
		PayDate:       time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestGetAllPayrollRecords(t *testing.T) {
	columns := []string{"employee_id", "employee_name", "hours_worked", "overtime_hours", "gross_pay", "tax", "net_pay", "pay_date"}

	t.Run("Parses ISO Dates", func(t *testing.T) {
		_, repo, mock := newMock(t)
		mock.ExpectQuery("SELECT employee_id, employee_name").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(2, "Jane Smith", 40.0, 0.0, 5000.0, 750.0, 4250.0, "2024-05-31"))

		records, err := repo.GetAllPayrollRecords(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), records[0].PayDate)
		assert.Equal(t, 4250.0, records[0].NetPay)
	})

	t.Run("Rejects Malformed Dates", func(t *testing.T) {
		_, repo, mock := newMock(t)
		mock.ExpectQuery("SELECT employee_id, employee_name").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(2, "Jane Smith", 40.0, 0.0, 5000.0, 750.0, 4250.0, "31/05/2024"))

		_, err := repo.GetAllPayrollRecords(context.Background())
		assert.ErrorContains(t, err, "employee 2")
	})
}
