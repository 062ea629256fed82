package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"payroll-bot/internal/domain"
)

// SampleEmployees is the roster seeded into an empty store on first start.
var SampleEmployees = []domain.Employee{
	{Name: "John Doe", Role: "Manager", BaseSalary: 5000},
	{Name: "Jane Smith", Role: "Technical", BaseSalary: 4000},
	{Name: "Bob Johnson", Role: "Clerk", BaseSalary: 3000},
}

// EmployeeService applies employee changes to the in-memory store and, when
// Repo is set, writes them through to persistent storage. The store stays
// authoritative: a failed write is logged and returned but not rolled back.
type EmployeeService struct {
	Store domain.EmployeeStore
	Repo  domain.EmployeeRepo
	log   *zap.Logger
}

func NewEmployeeService(store domain.EmployeeStore, repo domain.EmployeeRepo, log *zap.Logger) *EmployeeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmployeeService{Store: store, Repo: repo, log: log}
}

func (s *EmployeeService) AddEmployee(ctx context.Context, name, role string, baseSalary float64) (domain.Employee, error) {
	id, err := s.Store.AddEmployee(name, role, baseSalary)
	if err != nil {
		return domain.Employee{}, err
	}
	e, err := s.Store.GetEmployee(id)
	if err != nil {
		return domain.Employee{}, err
	}
	s.log.Info("employee added", zap.Int("employee_id", id), zap.String("name", e.Name))
	return e, s.save(ctx, e)
}

func (s *EmployeeService) GetEmployee(id int) (domain.Employee, error) {
	return s.Store.GetEmployee(id)
}

func (s *EmployeeService) ListEmployees() []domain.Employee {
	return s.Store.ListEmployees()
}

func (s *EmployeeService) UpdateHours(ctx context.Context, id int, hoursWorked, overtimeHours float64) (domain.Employee, error) {
	if err := s.Store.UpdateHours(id, hoursWorked, overtimeHours); err != nil {
		return domain.Employee{}, err
	}
	e, err := s.Store.GetEmployee(id)
	if err != nil {
		return domain.Employee{}, err
	}
	s.log.Info("hours updated",
		zap.Int("employee_id", id),
		zap.Float64("hours_worked", hoursWorked),
		zap.Float64("overtime_hours", overtimeHours),
	)
	return e, s.save(ctx, e)
}

func (s *EmployeeService) UpdateBaseSalary(ctx context.Context, id int, baseSalary float64) (domain.Employee, error) {
	if err := s.Store.UpdateBaseSalary(id, baseSalary); err != nil {
		return domain.Employee{}, err
	}
	e, err := s.Store.GetEmployee(id)
	if err != nil {
		return domain.Employee{}, err
	}
	s.log.Info("base salary updated", zap.Int("employee_id", id), zap.Float64("base_salary", baseSalary))
	return e, s.save(ctx, e)
}

func (s *EmployeeService) RemoveEmployee(ctx context.Context, id int) error {
	if err := s.Store.RemoveEmployee(id); err != nil {
		return err
	}
	s.log.Info("employee removed", zap.Int("employee_id", id))
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.DeleteEmployee(ctx, id); err != nil {
		s.log.Error("delete employee from storage", zap.Int("employee_id", id), zap.Error(err))
		return fmt.Errorf("delete employee %d: %w: %w", id, domain.ErrStorage, err)
	}
	return nil
}

// Restore loads the persisted roster into the store and returns how many
// employees were loaded.
func (s *EmployeeService) Restore(ctx context.Context) (int, error) {
	if s.Repo == nil {
		return 0, nil
	}
	employees, err := s.Repo.GetAllEmployees(ctx)
	if err != nil {
		return 0, fmt.Errorf("load employees: %w", err)
	}
	lastID, err := s.Repo.LastIssuedID(ctx)
	if err != nil {
		return 0, fmt.Errorf("load last employee id: %w", err)
	}
	if err := s.Store.Restore(employees, lastID); err != nil {
		return 0, fmt.Errorf("restore employees: %w", err)
	}
	s.log.Info("employees restored", zap.Int("count", len(employees)), zap.Int("last_id", lastID))
	return len(employees), nil
}

// SeedSample adds SampleEmployees when the store is empty.
func (s *EmployeeService) SeedSample(ctx context.Context) (int, error) {
	if len(s.Store.ListEmployees()) > 0 {
		return 0, nil
	}
	for i, e := range SampleEmployees {
		if _, err := s.AddEmployee(ctx, e.Name, e.Role, e.BaseSalary); err != nil {
			return i, err
		}
	}
	return len(SampleEmployees), nil
}

func (s *EmployeeService) save(ctx context.Context, e domain.Employee) error {
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.SaveEmployee(ctx, e); err != nil {
		s.log.Error("save employee to storage", zap.Int("employee_id", e.ID), zap.Error(err))
		return fmt.Errorf("save employee %d: %w: %w", e.ID, domain.ErrStorage, err)
	}
	return nil
}
