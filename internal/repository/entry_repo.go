package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fitscore/internal/models"
	"fitscore/internal/store"

	log "github.com/sirupsen/logrus"
)

const createEntriesTable = `
	CREATE TABLE IF NOT EXISTS public.fitness_entries (
		position  INTEGER PRIMARY KEY,
		date      TEXT NOT NULL,
		category  TEXT NOT NULL,
		raw_value INTEGER NOT NULL,
		score     DOUBLE PRECISION NOT NULL,
		comment   TEXT NOT NULL DEFAULT ''
	)`

// EntryRepository работает с таблицей fitness_entries.
// Дата хранится текстом DD.MM.YYYY, как и в таблицах.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository создаёт репозиторий записей
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// LoadAll возвращает записи по порядку вставки, создаёт таблицу если её нет
func (r *EntryRepository) LoadAll(ctx context.Context) ([]models.Entry, error) {
	if _, err := r.db.ExecContext(ctx, createEntriesTable); err != nil {
		return nil, fmt.Errorf("ошибка создания таблицы: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, category, raw_value, score, comment
		FROM public.fitness_entries
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения записей: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var date, category, comment string
		var rawValue int
		var score float64
		if err := rows.Scan(&date, &category, &rawValue, &score, &comment); err != nil {
			return nil, fmt.Errorf("ошибка разбора записи: %w", err)
		}
		if e, ok := toEntry(date, category, rawValue, score, comment); ok {
			entries = append(entries, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debugf("прочитано %d записей из БД", len(entries))
	return entries, nil
}

// AppendAndPersist перезаписывает таблицу в одной транзакции
func (r *EntryRepository) AppendAndPersist(ctx context.Context, entries []models.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createEntriesTable); err != nil {
		return fmt.Errorf("ошибка создания таблицы: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM public.fitness_entries`); err != nil {
		return fmt.Errorf("ошибка очистки таблицы: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO public.fitness_entries (position, date, category, raw_value, score, comment)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.FormatDate(), string(e.Category), e.RawValue, e.Score, e.Comment); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	log.Debugf("сохранено %d записей в БД", len(entries))
	return nil
}

// toEntry строка БД в запись; дата и категория разбираются как в таблицах
func toEntry(date, category string, rawValue int, score float64, comment string) (models.Entry, bool) {
	e, ok := store.RowToEntry([]string{date, category, "", "", comment})
	if !ok {
		return models.Entry{}, false
	}
	e.RawValue = rawValue
	e.Score = score
	return e, true
}
