package middleware

import (
	"gopkg.in/telebot.v3"
)

// EditOrSend edits the message behind the current callback and falls back to
// sending a new message when there is nothing to edit or the edit fails.
func EditOrSend(c telebot.Context, text string, opts ...any) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		return c.Send(text, opts...)
	}
	return nil
}
