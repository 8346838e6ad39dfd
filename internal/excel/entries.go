package excel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fitscore/internal/models"
	"fitscore/internal/store"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet лист с записями
const DefaultSheet = "Entries"

// EntryFile локальный xlsx файл с записями тренировок
type EntryFile struct {
	path  string
	sheet string
}

// NewEntryFile создаёт хранилище поверх xlsx файла
func NewEntryFile(path, sheet string) *EntryFile {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &EntryFile{path: path, sheet: sheet}
}

// Path путь к файлу
func (f *EntryFile) Path() string {
	return f.path
}

// LoadAll читает все записи. Если файла нет, создаёт пустой с заголовками.
func (f *EntryFile) LoadAll(_ context.Context) ([]models.Entry, error) {
	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		log.Infof("файл %s не найден, создаём пустой", f.path)
		if err := f.write(nil); err != nil {
			return nil, fmt.Errorf("ошибка создания файла: %w", err)
		}
		return []models.Entry{}, nil
	}

	wb, err := excelize.OpenFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия %s: %w", f.path, err)
	}
	defer func() {
		if err := wb.Close(); err != nil {
			log.Errorf("ошибка закрытия файла: %v", err)
		}
	}()

	rows, err := wb.GetRows(f.sheetToRead(wb))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа: %w", err)
	}
	if len(rows) > 0 && store.IsHeader(rows[0]) {
		rows = rows[1:]
	}

	entries := store.RowsToEntries(rows)
	log.Debugf("прочитано %d записей из %s", len(entries), f.path)
	return entries, nil
}

// AppendAndPersist перезаписывает файл целиком
func (f *EntryFile) AppendAndPersist(_ context.Context, entries []models.Entry) error {
	if err := f.write(entries); err != nil {
		return fmt.Errorf("ошибка сохранения %s: %w", f.path, err)
	}
	log.Debugf("сохранено %d записей в %s", len(entries), f.path)
	return nil
}

// sheetToRead нужный лист или первый лист файла (старые файлы с "Sheet1")
func (f *EntryFile) sheetToRead(wb *excelize.File) string {
	sheets := wb.GetSheetList()
	for _, s := range sheets {
		if s == f.sheet {
			return s
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return f.sheet
}

func (f *EntryFile) write(entries []models.Entry) error {
	wb := excelize.NewFile()
	defer func() {
		if err := wb.Close(); err != nil {
			log.Errorf("ошибка закрытия файла: %v", err)
		}
	}()

	wb.SetSheetName("Sheet1", f.sheet)

	header := store.HeaderRow()
	if err := wb.SetSheetRow(f.sheet, "A1", &header); err != nil {
		return err
	}

	headerStyle, _ := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	wb.SetCellStyle(f.sheet, "A1", "E1", headerStyle)
	wb.SetColWidth(f.sheet, "A", "D", 12)
	wb.SetColWidth(f.sheet, "E", "E", 40)

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := store.EntryToRow(e)
		if err := wb.SetSheetRow(f.sheet, cell, &row); err != nil {
			return fmt.Errorf("строка %d: %w", i+2, err)
		}
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return wb.SaveAs(f.path)
}
