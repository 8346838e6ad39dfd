package backends

import (
	"context"
	"fmt"
	"io"

	"fitscore/internal/config"
	"fitscore/internal/excel"
	"fitscore/internal/gsheets"
	"fitscore/internal/repository"
	"fitscore/internal/store"

	log "github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open выбирает хранилище по STORE_BACKEND. Closer освобождает соединения.
func Open(ctx context.Context, cfg *config.Config) (store.Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendExcel:
		log.Infof("хранилище: xlsx файл %s", cfg.ExcelPath)
		return excel.NewEntryFile(cfg.ExcelPath, ""), nopCloser{}, nil

	case config.BackendGSheets:
		client, err := gsheets.NewClient(ctx, cfg.GoogleCredentialsPath, cfg.GoogleDriveFolderID)
		if err != nil {
			return nil, nil, fmt.Errorf("Google Sheets не инициализирован: %w", err)
		}
		log.Infof("хранилище: Google таблица %s", cfg.GoogleSpreadsheetID)
		return gsheets.NewEntrySheet(client, cfg.GoogleSpreadsheetID, cfg.SheetName), nopCloser{}, nil

	case config.BackendPostgres:
		db, err := repository.Open(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		log.Infof("хранилище: PostgreSQL %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
		return repository.NewEntryRepository(db), db, nil

	case config.BackendMemory:
		log.Warn("хранилище в памяти, записи не сохранятся после перезапуска")
		return store.NewMemory(), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("неизвестное хранилище %q", cfg.StoreBackend)
}
