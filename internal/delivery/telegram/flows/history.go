package flows

import (
	"fmt"
	"strconv"
	"time"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/keyboards"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/delivery/telegram/view"

	"gopkg.in/telebot.v3"
)

const KeyHistoryMonth = "history_month"

// RegisterHistory wires the month picker that narrows /history to one month.
func RegisterHistory(r *router.CallbackRouter, payroll *service.PayrollService, now func() time.Time) {
	r.Register(KeyHistoryMonth, func(c telebot.Context, payload string) error {
		title, markup := keyboards.BuildMonthKeyboard(now().Year())
		return middleware.EditOrSend(c, title, markup)
	})

	r.Register(keyboards.KeyMonthPrev, func(c telebot.Context, payload string) error {
		return showYear(c, payload, -1)
	})

	r.Register(keyboards.KeyMonthNext, func(c telebot.Context, payload string) error {
		return showYear(c, payload, 1)
	})

	r.Register(keyboards.KeyPickMonth, func(c telebot.Context, payload string) error {
		year, month, err := keyboards.ParseMonthPayload(payload)
		if err != nil {
			return c.Send("Invalid month, please pick again.")
		}
		records := payroll.HistoryForMonth(year, month)
		heading := fmt.Sprintf("Payroll for %s %d:", month, year)
		return middleware.EditOrSend(c, view.Records(heading, records))
	})
}

func showYear(c telebot.Context, payload string, delta int) error {
	y, err := strconv.Atoi(payload)
	if err != nil {
		return c.Send("Invalid year, please pick again.")
	}
	title, markup := keyboards.BuildMonthKeyboard(y + delta)
	return middleware.EditOrSend(c, title, markup)
}
