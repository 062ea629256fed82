package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payroll-bot/config"
	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
	"payroll-bot/internal/repository/memory"
	"payroll-bot/internal/repository/sqlite"
	"payroll-bot/pkg/calendar"
	"payroll-bot/pkg/workerpool"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()
	zap.ReplaceGlobals(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("starting payroll bot", zap.Bool("persist", cfg.Persist), zap.String("db_path", cfg.DBPath))

	var (
		employeeRepo domain.EmployeeRepo
		payrollRepo  domain.PayrollRepo
	)
	if cfg.Persist {
		db, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			lg.Fatal("open database", zap.Error(err))
		}
		defer closeDB(db, lg)
		employeeRepo = sqlite.NewSqliteEmployeeRepo(db)
		payrollRepo = sqlite.NewSqlitePayrollRepo(db)
	}

	store := memory.NewEmployeeStore()
	employees := service.NewEmployeeService(store, employeeRepo, lg.Named("employees"))
	payroll := service.NewPayrollService(
		service.NewPayrollEngine(time.Now),
		store,
		memory.NewLedger(),
		payrollRepo,
		lg.Named("payroll"),
	)

	if _, err := employees.Restore(ctx); err != nil {
		lg.Fatal("restore employees", zap.Error(err))
	}
	if _, err := payroll.Restore(ctx); err != nil {
		lg.Fatal("restore payroll history", zap.Error(err))
	}
	if cfg.SeedSample {
		n, err := employees.SeedSample(ctx)
		if err != nil {
			lg.Fatal("seed sample employees", zap.Error(err))
		}
		if n > 0 {
			lg.Info("sample employees seeded", zap.Int("count", n))
		}
	}

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Close()

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			lg.Error("telegram handler failed", zap.Error(err))
		},
	})
	if err != nil {
		lg.Fatal("create bot", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		employees,
		payroll,
		service.NewAsyncService(pool),
		&calendar.CalendarController{},
		lg.Named("telegram"),
	)
	handler.Register()

	go func() {
		<-ctx.Done()
		lg.Info("shutting down")
		bot.Stop()
	}()

	lg.Info("bot started", zap.String("username", bot.Me.Username))
	bot.Start()
}

func closeDB(db *sql.DB, lg *zap.Logger) {
	if err := db.Close(); err != nil {
		lg.Warn("close database", zap.Error(err))
	}
}
