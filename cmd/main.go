package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitscore/internal/api"
	"fitscore/internal/bot"
	"fitscore/internal/config"
	"fitscore/internal/logging"
	"fitscore/internal/store/backends"
	"fitscore/internal/tracker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ошибка конфигурации: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closer, err := backends.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("хранилище: %v", err)
	}
	defer closer.Close()

	svc := tracker.New(st)

	// первое чтение создаёт пустую таблицу, если её ещё нет
	if v := svc.Dashboard(ctx); v.Degraded {
		log.Warn("хранилище недоступно при старте")
	} else {
		log.Infof("записей в хранилище: %d", len(v.History))
	}

	var server *http.Server
	if cfg.HTTPPort != "" {
		server = api.NewServer(cfg.HTTPPort, cfg.CORSOrigins, svc)
		go func() {
			log.Infof("HTTP API на порту %s", cfg.HTTPPort)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("HTTP сервер: %v", err)
			}
		}()
	}

	var telegramBot *bot.Bot
	if cfg.BotToken != "" {
		botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			log.Fatalf("Telegram: %v", err)
		}
		botAPI.Debug = cfg.LogLevel == "trace"

		telegramBot = bot.New(botAPI, svc, cfg)
		if cfg.ReportChatID != 0 {
			reports, err := telegramBot.StartDailyReport(cfg.ReportSchedule, cfg.ReportChatID)
			if err != nil {
				log.Fatal(err)
			}
			defer reports.Stop()
		}
		go func() {
			if err := telegramBot.Start(); err != nil {
				log.Errorf("бот остановлен: %v", err)
			}
		}()
	}

	if server == nil && telegramBot == nil {
		log.Fatal("нечего запускать: задайте BOT_TOKEN и/или HTTP_PORT")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	<-chOsInterrupt
	log.Info("остановка ...")

	if telegramBot != nil {
		telegramBot.Stop()
	}
	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("HTTP сервер: %v", err)
		}
	}
}
