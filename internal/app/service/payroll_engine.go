package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
)

const (
	StandardHours = 40.0
	OvertimeRate  = 1.5
	TaxRate       = 0.15
)

var (
	standardHours = decimal.NewFromFloat(StandardHours)
	overtimeRate  = decimal.NewFromFloat(OvertimeRate)
	taxRate       = decimal.NewFromFloat(TaxRate)
)

// PayBreakdown holds the intermediate amounts of a gross pay computation.
type PayBreakdown struct {
	HourlyRate   float64
	RegularHours float64
	RegularPay   float64
	OvertimePay  float64
	GrossPay     float64
}

// PayrollEngine turns employee snapshots into payroll records. It holds no
// state besides the clock used to stamp pay dates.
type PayrollEngine struct {
	Now func() time.Time
}

func NewPayrollEngine(now func() time.Time) *PayrollEngine {
	if now == nil {
		now = time.Now
	}
	return &PayrollEngine{Now: now}
}

// Breakdown prorates the base salary to an hourly rate over a standard
// period. Regular hours are capped at StandardHours and the excess is not
// paid: only OvertimeHours earn the overtime rate.
func (p *PayrollEngine) Breakdown(e domain.Employee) (PayBreakdown, error) {
	if err := checkPayable(e); err != nil {
		return PayBreakdown{}, err
	}
	b := breakdown(e)
	return PayBreakdown{
		HourlyRate:   b.hourlyRate.InexactFloat64(),
		RegularHours: b.regularHours.InexactFloat64(),
		RegularPay:   b.regularPay.InexactFloat64(),
		OvertimePay:  b.overtimePay.InexactFloat64(),
		GrossPay:     b.gross.InexactFloat64(),
	}, nil
}

func (p *PayrollEngine) ComputeGrossPay(e domain.Employee) (float64, error) {
	if err := checkPayable(e); err != nil {
		return 0, err
	}
	return breakdown(e).gross.InexactFloat64(), nil
}

func (p *PayrollEngine) ComputeTax(grossPay float64) float64 {
	if math.IsNaN(grossPay) || math.IsInf(grossPay, 0) {
		return grossPay * TaxRate
	}
	return decimal.NewFromFloat(grossPay).Mul(taxRate).InexactFloat64()
}

func (p *PayrollEngine) ComputeNetPay(e domain.Employee) (float64, error) {
	if err := checkPayable(e); err != nil {
		return 0, err
	}
	gross := breakdown(e).gross
	return gross.Sub(gross.Mul(taxRate)).InexactFloat64(), nil
}

// GenerateRecord computes a payroll record dated today according to the engine clock.
func (p *PayrollEngine) GenerateRecord(e domain.Employee) (domain.PayrollRecord, error) {
	return p.GenerateRecordOn(e, p.Now())
}

func (p *PayrollEngine) GenerateRecordOn(e domain.Employee, payDate time.Time) (domain.PayrollRecord, error) {
	if err := checkPayable(e); err != nil {
		return domain.PayrollRecord{}, err
	}
	gross := breakdown(e).gross
	tax := gross.Mul(taxRate)
	return domain.PayrollRecord{
		EmployeeID:    e.ID,
		EmployeeName:  e.Name,
		HoursWorked:   e.HoursWorked,
		OvertimeHours: e.OvertimeHours,
		GrossPay:      gross.InexactFloat64(),
		Tax:           tax.InexactFloat64(),
		NetPay:        gross.Sub(tax).InexactFloat64(),
		PayDate:       domain.DateOf(payDate),
	}, nil
}

type amounts struct {
	hourlyRate   decimal.Decimal
	regularHours decimal.Decimal
	regularPay   decimal.Decimal
	overtimePay  decimal.Decimal
	gross        decimal.Decimal
}

func breakdown(e domain.Employee) amounts {
	var a amounts
	a.hourlyRate = decimal.NewFromFloat(e.BaseSalary).Div(standardHours)
	a.regularHours = decimal.Min(decimal.NewFromFloat(e.HoursWorked), standardHours)
	a.regularPay = a.regularHours.Mul(a.hourlyRate)
	a.overtimePay = decimal.NewFromFloat(e.OvertimeHours).Mul(a.hourlyRate).Mul(overtimeRate)
	a.gross = a.regularPay.Add(a.overtimePay)
	return a
}

func checkPayable(e domain.Employee) error {
	if err := domain.NonNegative("base salary", e.BaseSalary); err != nil {
		return err
	}
	if err := domain.NonNegative("hours worked", e.HoursWorked); err != nil {
		return err
	}
	return domain.NonNegative("overtime hours", e.OvertimeHours)
}
