package domain

import "context"

type Employee struct {
	ID            int
	Name          string
	Role          string
	BaseSalary    float64
	HoursWorked   float64
	OvertimeHours float64
}

// EmployeeStore holds the authoritative set of employees for the process.
type EmployeeStore interface {
	AddEmployee(name, role string, baseSalary float64) (int, error)
	GetEmployee(id int) (Employee, error)
	ListEmployees() []Employee
	UpdateHours(id int, hoursWorked, overtimeHours float64) error
	UpdateBaseSalary(id int, baseSalary float64) error
	RemoveEmployee(id int) error
	Restore(employees []Employee, lastIssuedID int) error
}

// EmployeeRepo mirrors employees to durable storage.
type EmployeeRepo interface {
	SaveEmployee(ctx context.Context, e Employee) error
	DeleteEmployee(ctx context.Context, id int) error
	GetAllEmployees(ctx context.Context) ([]Employee, error)
	LastIssuedID(ctx context.Context) (int, error)
}
