package memory

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"payroll-bot/internal/domain"
)

// EmployeeStore keeps employees in memory. Identifiers start at 1 and are
// never handed out twice, even after removal.
type EmployeeStore struct {
	mu        sync.RWMutex
	employees map[int]*domain.Employee
	lastID    int
}

func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{employees: make(map[int]*domain.Employee)}
}

func (s *EmployeeStore) AddEmployee(name, role string, baseSalary float64) (int, error) {
	e := domain.Employee{
		Name:       strings.TrimSpace(name),
		Role:       strings.TrimSpace(role),
		BaseSalary: baseSalary,
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	e.ID = s.lastID
	s.employees[e.ID] = &e
	return e.ID, nil
}

func (s *EmployeeStore) GetEmployee(id int) (domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return domain.Employee{}, domain.NotFoundError{ID: id}
	}
	return *e, nil
}

// ListEmployees returns a copy of every employee ordered by identifier.
func (s *EmployeeStore) ListEmployees() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b domain.Employee) int { return a.ID - b.ID })
	return out
}

func (s *EmployeeStore) UpdateHours(id int, hoursWorked, overtimeHours float64) error {
	if err := domain.NonNegative("hours worked", hoursWorked); err != nil {
		return err
	}
	if err := domain.NonNegative("overtime hours", overtimeHours); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return domain.NotFoundError{ID: id}
	}
	e.HoursWorked = hoursWorked
	e.OvertimeHours = overtimeHours
	return nil
}

func (s *EmployeeStore) UpdateBaseSalary(id int, baseSalary float64) error {
	if err := domain.NonNegative("base salary", baseSalary); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return domain.NotFoundError{ID: id}
	}
	e.BaseSalary = baseSalary
	return nil
}

func (s *EmployeeStore) RemoveEmployee(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return domain.NotFoundError{ID: id}
	}
	delete(s.employees, id)
	return nil
}

// Restore replaces the store contents with a previously saved snapshot.
// lastIssuedID is the highest identifier ever handed out, which may belong
// to an employee that has since been removed.
func (s *EmployeeStore) Restore(employees []domain.Employee, lastIssuedID int) error {
	loaded := make(map[int]*domain.Employee, len(employees))
	maxID := lastIssuedID
	for _, e := range employees {
		if e.ID <= 0 {
			return domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%d is not a positive identifier", e.ID)}
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("employee %d: %w", e.ID, err)
		}
		if _, dup := loaded[e.ID]; dup {
			return domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%d appears twice", e.ID)}
		}
		loaded[e.ID] = &e
		maxID = max(maxID, e.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = loaded
	s.lastID = max(s.lastID, maxID)
	return nil
}
