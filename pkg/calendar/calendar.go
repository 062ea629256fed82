// Package calendar renders an inline month calendar for picking a date and
// handles its navigation callbacks.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

// Callback uniques used by the calendar keyboard.
const (
	KeyDay  = "cal_day"
	KeyPrev = "cal_prev"
	KeyNext = "cal_next"
)

var ErrBadPayload = errors.New("calendar: malformed callback payload")

// CalendarController shows the calendar and reports the picked date to OnDate.
type CalendarController struct {
	Now    func() time.Time
	OnDate func(date time.Time, c telebot.Context) error
}

// ShowCalendar sends (or edits, inside a callback) the calendar for the current month.
func (cc *CalendarController) ShowCalendar(c telebot.Context) error {
	now := time.Now
	if cc.Now != nil {
		now = cc.Now
	}
	t := now()
	return SendCalendar(c, t.Year(), int(t.Month()))
}

// HandleCallback processes one cal_* callback. Key and payload are the parts
// of the callback data around the '|' separator.
func (cc *CalendarController) HandleCallback(c telebot.Context, key, payload string) error {
	switch key {
	case KeyDay:
		date, err := ParseDay(payload)
		if err != nil {
			return c.Send("Invalid date, please pick again.")
		}
		if cc.OnDate == nil {
			return nil
		}
		return cc.OnDate(date, c)
	case KeyPrev, KeyNext:
		year, month, err := ParseMonth(payload)
		if err != nil {
			return c.Send("Invalid month, please pick again.")
		}
		return SendCalendar(c, year, month)
	}
	return nil
}

// SendCalendar builds the calendar for the given month and edits the current
// message when handling a callback, otherwise sends a new one.
func SendCalendar(c telebot.Context, year, month int) error {
	title, markup := BuildCalendar(year, month)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// BuildCalendar returns the title and inline keyboard for a month. Month
// values outside 1..12 roll over into the neighbouring year.
func BuildCalendar(year, month int) (string, *telebot.ReplyMarkup) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), int(first.Month())

	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	week := telebot.Row{}
	for d := 1; d <= daysInMonth(year, month); d++ {
		week = append(week, markup.Data(strconv.Itoa(d), KeyDay, fmt.Sprintf("%d-%d-%d", d, month, year)))
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		rows = append(rows, week)
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	rows = append(rows, telebot.Row{
		markup.Data("<", KeyPrev, fmt.Sprintf("%d-%d", int(prev.Month()), prev.Year())),
		markup.Data(">", KeyNext, fmt.Sprintf("%d-%d", int(next.Month()), next.Year())),
	})
	markup.Inline(rows...)

	return "Pick a date: " + first.Month().String() + " " + strconv.Itoa(year), markup
}

// ParseDay parses a "D-M-YYYY" day payload into a UTC date.
func ParseDay(payload string) (time.Time, error) {
	parts := SplitDateData(payload)
	if len(parts) != 3 {
		return time.Time{}, ErrBadPayload
	}
	nums, err := atoiAll(parts)
	if err != nil {
		return time.Time{}, err
	}
	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, ErrBadPayload
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseMonth parses a "M-YYYY" navigation payload.
func ParseMonth(payload string) (year, month int, err error) {
	parts := SplitDateData(payload)
	if len(parts) != 2 {
		return 0, 0, ErrBadPayload
	}
	nums, err := atoiAll(parts)
	if err != nil {
		return 0, 0, err
	}
	if nums[0] < 1 || nums[0] > 12 {
		return 0, 0, ErrBadPayload
	}
	return nums[1], nums[0], nil
}

func SplitDateData(data string) []string {
	return strings.Split(data, "-")
}

func atoiAll(parts []string) ([]int, error) {
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, ErrBadPayload
		}
		nums[i] = n
	}
	return nums, nil
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
