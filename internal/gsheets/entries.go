package gsheets

import (
	"context"
	"fmt"

	"fitscore/internal/models"
	"fitscore/internal/store"

	log "github.com/sirupsen/logrus"
)

// DefaultSheet лист с записями
const DefaultSheet = "Entries"

// EntrySheet записи тренировок в общей Google таблице
type EntrySheet struct {
	client        *Client
	spreadsheetID string
	sheet         string
	title         string
}

// NewEntrySheet создаёт хранилище поверх таблицы spreadsheetID.
// Пустой spreadsheetID: таблица будет создана при первом чтении.
func NewEntrySheet(client *Client, spreadsheetID, sheet string) *EntrySheet {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &EntrySheet{
		client:        client,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		title:         "Fitness Score Tracker",
	}
}

// SpreadsheetID идентификатор таблицы
func (s *EntrySheet) SpreadsheetID() string {
	return s.spreadsheetID
}

// LoadAll читает все записи. Отсутствующие таблица или лист создаются пустыми.
func (s *EntrySheet) LoadAll(ctx context.Context) ([]models.Entry, error) {
	created, err := s.ensureSheet(ctx)
	if err != nil {
		return nil, err
	}
	if created {
		return []models.Entry{}, nil
	}

	values, err := s.client.readRange(ctx, s.spreadsheetID, s.sheet+"!A:E")
	if err != nil {
		return nil, err
	}

	rows := store.CellStrings(values)
	if len(rows) > 0 && store.IsHeader(rows[0]) {
		rows = rows[1:]
	}

	entries := store.RowsToEntries(rows)
	log.Debugf("прочитано %d записей из Google таблицы", len(entries))
	return entries, nil
}

// AppendAndPersist перезаписывает лист целиком: заголовок, записи, затем очищает хвост
func (s *EntrySheet) AppendAndPersist(ctx context.Context, entries []models.Entry) error {
	if _, err := s.ensureSheet(ctx); err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(entries)+1)
	values = append(values, store.HeaderRow())
	for _, e := range entries {
		values = append(values, store.EntryToRow(e))
	}

	if err := s.client.writeRows(ctx, s.spreadsheetID, s.sheet+"!A1", values); err != nil {
		return fmt.Errorf("ошибка записи таблицы: %w", err)
	}

	tail := fmt.Sprintf("%s!A%d:E", s.sheet, len(values)+1)
	if err := s.client.clearRange(ctx, s.spreadsheetID, tail); err != nil {
		return fmt.Errorf("ошибка очистки старых строк: %w", err)
	}

	log.Debugf("сохранено %d записей в Google таблицу", len(entries))
	return nil
}

// ensureSheet создаёт таблицу и лист с заголовками, если их нет. true, если что-то создано.
func (s *EntrySheet) ensureSheet(ctx context.Context) (bool, error) {
	if s.spreadsheetID == "" {
		id, err := s.client.CreateSpreadsheet(ctx, s.title, s.sheet)
		if err != nil {
			return false, err
		}
		s.spreadsheetID = id
		log.Warnf("GOOGLE_SPREADSHEET_ID не задан, создана новая таблица %s", id)
		return true, s.writeHeader(ctx)
	}

	exists, err := s.client.hasSheet(ctx, s.spreadsheetID, s.sheet)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	log.Infof("лист %s не найден, создаём", s.sheet)
	if err := s.client.addSheet(ctx, s.spreadsheetID, s.sheet); err != nil {
		return false, err
	}
	return true, s.writeHeader(ctx)
}

func (s *EntrySheet) writeHeader(ctx context.Context) error {
	if err := s.client.writeRows(ctx, s.spreadsheetID, s.sheet+"!A1", [][]interface{}{store.HeaderRow()}); err != nil {
		return fmt.Errorf("ошибка записи заголовков: %w", err)
	}
	return nil
}
