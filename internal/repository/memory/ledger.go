package memory

import (
	"slices"
	"sync"
	"time"

	"payroll-bot/internal/domain"
)

// Ledger is an append-only list of payroll records kept in insertion order.
type Ledger struct {
	mu      sync.RWMutex
	records []domain.PayrollRecord
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(r domain.PayrollRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// ListAll returns every record, most recent pay date first. Records sharing a
// pay date keep the order in which they were appended.
func (l *Ledger) ListAll() []domain.PayrollRecord {
	l.mu.RLock()
	out := slices.Clone(l.records)
	l.mu.RUnlock()
	sortByPayDate(out)
	return out
}

// ListBetween is ListAll restricted to pay dates within [from, to], by calendar day.
func (l *Ledger) ListBetween(from, to time.Time) []domain.PayrollRecord {
	from, to = domain.DateOf(from), domain.DateOf(to)

	l.mu.RLock()
	var out []domain.PayrollRecord
	for _, r := range l.records {
		d := domain.DateOf(r.PayDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, r)
	}
	l.mu.RUnlock()
	sortByPayDate(out)
	return out
}

func (l *Ledger) TotalGrossPay() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var total float64
	for _, r := range l.records {
		total += r.GrossPay
	}
	return total
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func sortByPayDate(records []domain.PayrollRecord) {
	slices.SortStableFunc(records, func(a, b domain.PayrollRecord) int {
		return b.PayDate.Compare(a.PayDate)
	})
}
