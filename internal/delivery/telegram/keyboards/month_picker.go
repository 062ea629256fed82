package keyboards

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

const (
	KeyPickMonth = "pick_month"
	KeyMonthPrev = "month_prev"
	KeyMonthNext = "month_next"
)

// BuildMonthKeyboard lays out the twelve months of a year in rows of three
// with year navigation underneath.
func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{}
	for i := 1; i <= 12; i += 3 {
		var row telebot.Row
		for m := i; m < i+3; m++ {
			name := time.Month(m).String()[:3]
			row = append(row, markup.Data(name, KeyPickMonth, fmt.Sprintf("%04d-%02d", year, m)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), KeyMonthPrev, strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" →", KeyMonthNext, strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("Pick a month: %d", year), markup
}

// ParseMonthPayload parses the "YYYY-MM" payload of a pick_month button.
func ParseMonthPayload(payload string) (int, time.Month, error) {
	y, m, ok := strings.Cut(payload, "-")
	if !ok {
		return 0, 0, fmt.Errorf("bad month payload %q", payload)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, fmt.Errorf("bad month payload %q", payload)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("bad month payload %q", payload)
	}
	return year, time.Month(month), nil
}
