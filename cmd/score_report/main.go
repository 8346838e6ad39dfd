package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fitscore/internal/config"
	"fitscore/internal/logging"
	"fitscore/internal/models"
	"fitscore/internal/scoring"
	"fitscore/internal/store/backends"
	"fitscore/internal/tracker"

	log "github.com/sirupsen/logrus"
)

func main() {
	date := flag.String("date", "", "дата расчёта ДД.ММ.ГГГГ (по умолчанию сегодня)")
	limit := flag.Int("history", 10, "сколько последних записей показать (0 = все)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ошибка конфигурации: %v", err)
	}
	logging.Setup(logging.LoggerSetupParams{LogLevel: "warn"})

	ctx := context.Background()
	st, closer, err := backends.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("хранилище: %v", err)
	}
	defer closer.Close()

	svc := tracker.New(st)
	ref := svc.Today()
	if *date != "" {
		if ref, err = models.ParseDate(*date); err != nil {
			log.Fatal(err)
		}
	}

	v := svc.DashboardAt(ctx, ref)
	if v.Degraded {
		fmt.Fprintln(os.Stderr, "хранилище недоступно")
		os.Exit(1)
	}
	if v.Empty() {
		fmt.Println("Записей пока нет.")
		return
	}

	fmt.Printf("Очки за %d дней до %s\n", scoring.WindowDays, ref.Format(models.DateLayout))
	for _, c := range models.Categories {
		fmt.Printf("  %-14s %6s\n", c.Label(), scoring.FormatScore(v.Summary.PerCategory[c]))
	}
	fmt.Printf("  %-14s %6s\n\n", "Итого", scoring.FormatScore(v.Summary.Overall))

	for i, e := range v.History {
		if *limit > 0 && i >= *limit {
			break
		}
		fmt.Printf("%-10s  %-12s %5d %7s  %s\n",
			e.FormatDate(), e.Category, e.RawValue, scoring.FormatScore(e.Score), e.Comment)
	}
}
