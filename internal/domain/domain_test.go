package domain_test

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"payroll-bot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	var err error = domain.ValidationError{Field: "name", Reason: "must not be empty"}
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "invalid name: must not be empty", err.Error())

	wrapped := fmt.Errorf("update hours: %w", domain.NotFoundError{ID: 7})
	assert.True(t, errors.Is(wrapped, domain.ErrNotFound))

	var nf domain.NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, 7, nf.ID)
}

func TestEmployeeValidate(t *testing.T) {
	cases := []struct {
		name  string
		emp   domain.Employee
		field string
	}{
		{"ok", domain.Employee{Name: "John", BaseSalary: 0}, ""},
		{"blank name", domain.Employee{Name: "  "}, "name"},
		{"negative salary", domain.Employee{Name: "John", BaseSalary: -1}, "base salary"},
		{"nan hours", domain.Employee{Name: "John", HoursWorked: math.NaN()}, "hours worked"},
		{"negative overtime", domain.Employee{Name: "John", OvertimeHours: -0.5}, "overtime hours"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.emp.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve domain.ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, tc.field, ve.Field)
			}
		})
	}
}

func TestNonNegativeRejectsInfinity(t *testing.T) {
	assert.ErrorIs(t, domain.NonNegative("salary", math.Inf(1)), domain.ErrValidation)
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got := domain.DateOf(time.Date(2024, 3, 15, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	r := domain.PayrollRecord{PayDate: got}
	assert.Equal(t, "2024-03-15", r.PayDateString())
}
