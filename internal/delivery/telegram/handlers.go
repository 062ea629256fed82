package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/flows"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/delivery/telegram/view"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/report"
	"payroll-bot/pkg/calendar"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
	telemw "gopkg.in/telebot.v3/middleware"
)

const requestTimeout = 30 * time.Second

const helpText = `Payroll bot commands:
/employees - list employees
/add Name; Role; Salary - add an employee
/hours ID HOURS OVERTIME - record worked and overtime hours
/salary ID AMOUNT - change the base salary
/remove ID - remove an employee
/pay ID - run payroll for one employee
/payall - run payroll for everyone
/history - payroll history
/total - total payroll cost
/export - payroll history as CSV`

var (
	btnEmployees = telebot.Btn{Text: "👥 Employees"}
	btnPayAll    = telebot.Btn{Text: "💸 Pay everyone"}
	btnHistory   = telebot.Btn{Text: "📜 History"}
	btnTotal     = telebot.Btn{Text: "💰 Total cost"}
)

type Handler struct {
	Bot       *telebot.Bot
	Employees *service.EmployeeService
	Payroll   *service.PayrollService
	Async     *service.AsyncService
	Calendar  *calendar.CalendarController
	Log       *zap.Logger
	Now       func() time.Time

	router *router.CallbackRouter
	pay    *flows.PayFlow
}

func NewHandler(
	bot *telebot.Bot,
	employees *service.EmployeeService,
	payroll *service.PayrollService,
	async *service.AsyncService,
	cal *calendar.CalendarController,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if cal == nil {
		cal = &calendar.CalendarController{}
	}
	h := &Handler{
		Bot:       bot,
		Employees: employees,
		Payroll:   payroll,
		Async:     async,
		Calendar:  cal,
		Log:       log,
		Now:       time.Now,
		router:    router.New(log.Named("callback")),
	}
	h.pay = flows.NewPayFlow(payroll, cal, log.Named("pay"))
	h.pay.Register(h.router)
	flows.RegisterHistory(h.router, payroll, func() time.Time { return h.Now() })
	h.router.CalDelegate = cal.HandleCallback
	return h
}

// Register wires the handlers into the bot.
func (h *Handler) Register() {
	h.Bot.Use(telemw.Recover(func(err error, c telebot.Context) {
		h.Log.Error("handler panicked", zap.Error(err), zap.Int64("chat_id", flows.ChatID(c)))
	}))

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/help", h.handleHelp)
	h.Bot.Handle("/employees", h.handleEmployees)
	h.Bot.Handle("/add", h.handleAdd)
	h.Bot.Handle("/hours", h.handleHours)
	h.Bot.Handle("/salary", h.handleSalary)
	h.Bot.Handle("/remove", h.handleRemove)
	h.Bot.Handle("/pay", h.handlePay)
	h.Bot.Handle("/payall", h.handlePayAll)
	h.Bot.Handle("/history", h.handleHistory)
	h.Bot.Handle("/total", h.handleTotal)
	h.Bot.Handle("/export", h.handleExport)
	h.Bot.Handle(telebot.OnText, h.handleText)
	h.router.Attach(h.Bot)
}

func (h *Handler) handleStart(c telebot.Context) error {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnEmployees.Text), markup.Text(btnHistory.Text)),
		markup.Row(markup.Text(btnPayAll.Text), markup.Text(btnTotal.Text)),
	)
	return c.Send("Welcome to the payroll bot!\n\n"+helpText, markup)
}

func (h *Handler) handleHelp(c telebot.Context) error {
	return c.Send(helpText)
}

// handleText maps the reply keyboard buttons to their commands.
func (h *Handler) handleText(c telebot.Context) error {
	switch c.Text() {
	case btnEmployees.Text:
		return h.handleEmployees(c)
	case btnPayAll.Text:
		return h.handlePayAll(c)
	case btnHistory.Text:
		return h.handleHistory(c)
	case btnTotal.Text:
		return h.handleTotal(c)
	}
	return c.Send("Unknown command. Send /help for the list of commands.")
}

func (h *Handler) handleEmployees(c telebot.Context) error {
	return c.Send(view.Employees(h.Employees.ListEmployees()))
}

func (h *Handler) handleAdd(c telebot.Context) error {
	parts := strings.Split(c.Data(), ";")
	if len(parts) != 3 {
		return c.Send("Usage: /add Name; Role; Salary")
	}
	salary, err := parseAmount(parts[2])
	if err != nil {
		return c.Send("Salary must be a number. Usage: /add Name; Role; Salary")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	e, err := h.Employees.AddEmployee(ctx, parts[0], parts[1], salary)
	return h.replyChange(c, "Added "+view.Employee(e), err)
}

func (h *Handler) handleHours(c telebot.Context) error {
	args := c.Args()
	if len(args) != 3 {
		return c.Send("Usage: /hours ID HOURS OVERTIME")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return c.Send("ID must be a whole number. Usage: /hours ID HOURS OVERTIME")
	}
	hours, err1 := parseAmount(args[1])
	overtime, err2 := parseAmount(args[2])
	if err1 != nil || err2 != nil {
		return c.Send("Hours must be numbers. Usage: /hours ID HOURS OVERTIME")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	e, err := h.Employees.UpdateHours(ctx, id, hours, overtime)
	return h.replyChange(c, "Updated "+view.Employee(e), err)
}

func (h *Handler) handleSalary(c telebot.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /salary ID AMOUNT")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return c.Send("ID must be a whole number. Usage: /salary ID AMOUNT")
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return c.Send("Amount must be a number. Usage: /salary ID AMOUNT")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	e, err := h.Employees.UpdateBaseSalary(ctx, id, amount)
	return h.replyChange(c, "Updated "+view.Employee(e), err)
}

func (h *Handler) handleRemove(c telebot.Context) error {
	id, ok := singleID(c)
	if !ok {
		return c.Send("Usage: /remove ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	err := h.Employees.RemoveEmployee(ctx, id)
	return h.replyChange(c, fmt.Sprintf("Employee %d removed.", id), err)
}

func (h *Handler) handlePay(c telebot.Context) error {
	id, ok := singleID(c)
	if !ok {
		return c.Send("Usage: /pay ID")
	}
	e, err := h.Employees.GetEmployee(id)
	if err != nil {
		return c.Send(view.Error(err))
	}
	return h.pay.Prompt(c, e)
}

func (h *Handler) handlePayAll(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	processAll := func() (service.PayrollRun, error) { return h.Payroll.ProcessAll(ctx) }
	var (
		run service.PayrollRun
		err error
	)
	if h.Async != nil {
		run, err = service.RunAsync(ctx, h.Async, processAll)
	} else {
		run, err = processAll()
	}
	if err != nil && !errors.Is(err, domain.ErrStorage) {
		h.Log.Warn("payroll run failed", zap.Error(err))
		return c.Send(view.Error(err))
	}

	heading := fmt.Sprintf("Payroll run %s for %s: %d records, gross %s, net %s",
		run.ID, run.PayDate.Format(domain.DateLayout), len(run.Records),
		view.Money(run.TotalGrossPay()), view.Money(run.TotalNetPay()))
	return h.replyChange(c, view.Records(heading, run.Records), err)
}

func (h *Handler) handleHistory(c telebot.Context) error {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("Other month", flows.KeyHistoryMonth)))
	return c.Send(view.Records("Payroll history (most recent first):", h.Payroll.History()), markup)
}

func (h *Handler) handleTotal(c telebot.Context) error {
	return c.Send("Total payroll cost: " + view.Money(h.Payroll.TotalCost()))
}

func (h *Handler) handleExport(c telebot.Context) error {
	records := h.Payroll.History()
	if len(records) == 0 {
		return c.Send("No payroll records to export.")
	}
	data, err := report.PayrollCSV(records)
	if err != nil {
		h.Log.Error("export payroll csv", zap.Error(err))
		return c.Send(view.Error(err))
	}
	return c.Send(&telebot.Document{
		File:     telebot.FromReader(bytes.NewReader(data)),
		FileName: "payroll-" + h.Now().Format(domain.DateLayout) + ".csv",
		MIME:     "text/csv",
		Caption:  fmt.Sprintf("Payroll history, %d records", len(records)),
	})
}

// replyChange confirms a change, appending a warning when it only reached memory.
func (h *Handler) replyChange(c telebot.Context, done string, err error) error {
	switch {
	case err == nil:
		return c.Send(done)
	case errors.Is(err, domain.ErrStorage):
		return c.Send(done + "\n" + view.Error(err))
	default:
		return c.Send(view.Error(err))
	}
}

func singleID(c telebot.Context) (int, bool) {
	args := c.Args()
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	return id, err == nil
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
