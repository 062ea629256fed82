package flows

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/delivery/telegram/view"
	"payroll-bot/internal/domain"
	"payroll-bot/pkg/calendar"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

const (
	KeyPayToday = "pay_today"
	KeyPayOther = "pay_other"
)

// PayFlow runs payroll for one employee, either dated today or on a date
// picked from the inline calendar. The employee waiting for a calendar date
// is remembered per chat.
type PayFlow struct {
	Payroll  *service.PayrollService
	Calendar *calendar.CalendarController
	Log      *zap.Logger

	mu      sync.Mutex
	pending map[int64]int
}

func NewPayFlow(payroll *service.PayrollService, cal *calendar.CalendarController, log *zap.Logger) *PayFlow {
	if log == nil {
		log = zap.NewNop()
	}
	f := &PayFlow{Payroll: payroll, Calendar: cal, Log: log, pending: make(map[int64]int)}
	cal.OnDate = f.onDate
	return f
}

func (f *PayFlow) Register(r *router.CallbackRouter) {
	r.Register(KeyPayToday, func(c telebot.Context, payload string) error {
		id, err := strconv.Atoi(payload)
		if err != nil {
			return c.Send("Invalid employee, start again with /pay ID.")
		}
		rec, err := f.Payroll.ProcessPayroll(context.Background(), id)
		return f.reply(c, id, rec, err)
	})

	r.Register(KeyPayOther, func(c telebot.Context, payload string) error {
		id, err := strconv.Atoi(payload)
		if err != nil {
			return c.Send("Invalid employee, start again with /pay ID.")
		}
		f.mu.Lock()
		f.pending[ChatID(c)] = id
		f.mu.Unlock()
		return f.Calendar.ShowCalendar(c)
	})
}

// Prompt asks whether the payroll for e is dated today or on another day.
func (f *PayFlow) Prompt(c telebot.Context, e domain.Employee) error {
	markup := &telebot.ReplyMarkup{}
	id := strconv.Itoa(e.ID)
	markup.Inline(markup.Row(
		markup.Data("Today", KeyPayToday, id),
		markup.Data("Other date", KeyPayOther, id),
	))
	return c.Send("Pay date for "+e.Name+"?", markup)
}

// Pending reports the employee waiting for a calendar date in a chat.
func (f *PayFlow) Pending(chatID int64) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.pending[chatID]
	return id, ok
}

func (f *PayFlow) onDate(date time.Time, c telebot.Context) error {
	chatID := ChatID(c)
	f.mu.Lock()
	id, ok := f.pending[chatID]
	delete(f.pending, chatID)
	f.mu.Unlock()
	if !ok {
		return c.Send("No payroll is waiting for a date. Start with /pay ID.")
	}
	rec, err := f.Payroll.ProcessPayrollOn(context.Background(), id, date)
	return f.reply(c, id, rec, err)
}

func (f *PayFlow) reply(c telebot.Context, id int, rec domain.PayrollRecord, err error) error {
	switch {
	case err == nil:
		return middleware.EditOrSend(c, view.Paid(rec))
	case errors.Is(err, domain.ErrStorage):
		return middleware.EditOrSend(c, view.Paid(rec)+"\n"+view.Error(err))
	default:
		f.Log.Warn("process payroll", zap.Int("employee_id", id), zap.Error(err))
		return c.Send(view.Error(err))
	}
}

// ChatID identifies the conversation of an update, falling back to the sender.
func ChatID(c telebot.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}
