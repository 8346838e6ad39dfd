package store

import (
	"context"

	"fitscore/internal/models"
)

// Store хранилище записей. Реализации: xlsx файл, Google Sheets, PostgreSQL, память.
type Store interface {
	// LoadAll возвращает все записи в порядке вставки.
	// Если хранилища ещё нет, создаёт пустую таблицу и возвращает пустой список.
	LoadAll(ctx context.Context) ([]models.Entry, error)
	// AppendAndPersist полностью перезаписывает таблицу переданными записями.
	AppendAndPersist(ctx context.Context, entries []models.Entry) error
}
