package domain

import (
	"math"
	"strings"
)

// NonNegative rejects negative, NaN and infinite amounts.
func NonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ValidationError{Field: field, Reason: "must be a number"}
	}
	if v < 0 {
		return ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func Required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// Validate checks the fields an employee must satisfy to be stored or paid.
func (e Employee) Validate() error {
	if err := Required("name", e.Name); err != nil {
		return err
	}
	if err := NonNegative("base salary", e.BaseSalary); err != nil {
		return err
	}
	if err := NonNegative("hours worked", e.HoursWorked); err != nil {
		return err
	}
	return NonNegative("overtime hours", e.OvertimeHours)
}
