package store

import (
	"fmt"
	"strconv"
	"strings"

	"fitscore/internal/models"

	log "github.com/sirupsen/logrus"
)

// Headers колонки таблицы записей
var Headers = []string{"Date", "Category", "RawValue", "Score", "Comment"}

// HeaderRow заголовки в виде строки таблицы
func HeaderRow() []interface{} {
	row := make([]interface{}, len(Headers))
	for i, h := range Headers {
		row[i] = h
	}
	return row
}

// EntryToRow строка таблицы для записи. Дата пишется текстом DD.MM.YYYY.
func EntryToRow(e models.Entry) []interface{} {
	return []interface{}{
		e.FormatDate(),
		string(e.Category),
		e.RawValue,
		e.Score,
		e.Comment,
	}
}

// RowToEntry разбирает строку таблицы. Пустая строка -> ok == false.
// Неразобранная дата не ошибка: запись сохраняется, но в окно не попадает.
// Комментарий возвращается как есть, без обрезки пробелов.
func RowToEntry(row []string) (models.Entry, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	if isBlank(row) {
		return models.Entry{}, false
	}

	var e models.Entry

	dateText := cell(0)
	if date, err := models.ParseDate(dateText); err == nil {
		e.Date = date
	} else {
		e.DateText = dateText
		log.Debugf("запись с неразобранной датой %q", dateText)
	}

	if c, err := models.ParseCategory(cell(1)); err == nil {
		e.Category = c
	} else {
		e.Category = models.Category(cell(1))
		log.Warnf("запись с неизвестной категорией %q", cell(1))
	}

	e.RawValue = parseInt(cell(2))
	e.Score = parseFloat(cell(3))
	if len(row) > 4 {
		e.Comment = row[4]
	}

	return e, true
}

// RowsToEntries разбирает строки данных (без заголовка)
func RowsToEntries(rows [][]string) []models.Entry {
	entries := make([]models.Entry, 0, len(rows))
	for _, row := range rows {
		if e, ok := RowToEntry(row); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// IsHeader true, если строка заголовок (в том числе старый немецкий "Datum")
func IsHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.TrimSpace(row[0])
	return strings.EqualFold(first, Headers[0]) || strings.EqualFold(first, "Datum")
}

// CellStrings приводит значения ячеек к строкам
func CellStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		row := make([]string, len(v))
		for j, cell := range v {
			row[j] = fmt.Sprint(cell)
		}
		rows[i] = row
	}
	return rows
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// "12.0" из таблиц, где число сохранено как дробное
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	log.Warnf("не удалось разобрать значение %q", s)
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		log.Warnf("не удалось разобрать очки %q", s)
		return 0
	}
	return f
}
