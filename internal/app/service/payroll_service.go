package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"payroll-bot/internal/domain"
)

// PayrollRun groups the records produced by one ProcessAll call.
type PayrollRun struct {
	ID      uuid.UUID
	PayDate time.Time
	Records []domain.PayrollRecord
}

func (r PayrollRun) TotalGrossPay() float64 {
	var total float64
	for _, rec := range r.Records {
		total += rec.GrossPay
	}
	return total
}

func (r PayrollRun) TotalNetPay() float64 {
	var total float64
	for _, rec := range r.Records {
		total += rec.NetPay
	}
	return total
}

// PayrollService computes payroll for stored employees and appends the
// results to the ledger. When Repo is set every appended record is also
// written to persistent storage.
type PayrollService struct {
	Engine    *PayrollEngine
	Employees domain.EmployeeStore
	Ledger    domain.Ledger
	Repo      domain.PayrollRepo
	log       *zap.Logger
}

func NewPayrollService(
	engine *PayrollEngine,
	employees domain.EmployeeStore,
	ledger domain.Ledger,
	repo domain.PayrollRepo,
	log *zap.Logger,
) *PayrollService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PayrollService{Engine: engine, Employees: employees, Ledger: ledger, Repo: repo, log: log}
}

func (s *PayrollService) ProcessPayroll(ctx context.Context, employeeID int) (domain.PayrollRecord, error) {
	return s.ProcessPayrollOn(ctx, employeeID, s.Engine.Now())
}

// ProcessPayrollOn is ProcessPayroll with an explicit pay date.
func (s *PayrollService) ProcessPayrollOn(ctx context.Context, employeeID int, payDate time.Time) (domain.PayrollRecord, error) {
	e, err := s.Employees.GetEmployee(employeeID)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	rec, err := s.Engine.GenerateRecordOn(e, payDate)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	s.Ledger.Append(rec)
	s.log.Info("payroll processed",
		zap.Int("employee_id", rec.EmployeeID),
		zap.String("pay_date", rec.PayDateString()),
		zap.Float64("gross_pay", rec.GrossPay),
	)
	return rec, s.save(ctx, rec)
}

// ProcessAll pays every employee in listing order. Records are only appended
// once all of them have been computed.
func (s *PayrollService) ProcessAll(ctx context.Context) (PayrollRun, error) {
	run := PayrollRun{ID: uuid.New(), PayDate: domain.DateOf(s.Engine.Now())}
	employees := s.Employees.ListEmployees()
	run.Records = make([]domain.PayrollRecord, 0, len(employees))
	for _, e := range employees {
		rec, err := s.Engine.GenerateRecordOn(e, run.PayDate)
		if err != nil {
			return PayrollRun{}, fmt.Errorf("employee %d: %w", e.ID, err)
		}
		run.Records = append(run.Records, rec)
	}

	log := s.log.With(zap.String("run_id", run.ID.String()))
	var saveErr error
	for _, rec := range run.Records {
		s.Ledger.Append(rec)
		if err := s.save(ctx, rec); err != nil && saveErr == nil {
			saveErr = err
		}
	}
	log.Info("payroll run completed",
		zap.Int("records", len(run.Records)),
		zap.Float64("total_gross", run.TotalGrossPay()),
	)
	return run, saveErr
}

func (s *PayrollService) History() []domain.PayrollRecord {
	return s.Ledger.ListAll()
}

func (s *PayrollService) HistoryForMonth(year int, month time.Month) []domain.PayrollRecord {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return s.Ledger.ListBetween(from, to)
}

func (s *PayrollService) TotalCost() float64 {
	return s.Ledger.TotalGrossPay()
}

// Restore appends the persisted history to the ledger.
func (s *PayrollService) Restore(ctx context.Context) (int, error) {
	if s.Repo == nil {
		return 0, nil
	}
	records, err := s.Repo.GetAllPayrollRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("load payroll records: %w", err)
	}
	for _, r := range records {
		s.Ledger.Append(r)
	}
	s.log.Info("payroll history restored", zap.Int("count", len(records)))
	return len(records), nil
}

func (s *PayrollService) save(ctx context.Context, rec domain.PayrollRecord) error {
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.SavePayrollRecord(ctx, rec); err != nil {
		s.log.Error("save payroll record to storage", zap.Int("employee_id", rec.EmployeeID), zap.Error(err))
		return fmt.Errorf("save payroll record for employee %d: %w: %w", rec.EmployeeID, domain.ErrStorage, err)
	}
	return nil
}
