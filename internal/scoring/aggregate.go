package scoring

import (
	"sort"
	"strconv"
	"time"

	"fitscore/internal/models"
)

// WindowDays длина окна в календарных днях
const WindowDays = 28

// Summary показатели за последние 28 дней
type Summary struct {
	Sums        map[models.Category]float64 `json:"sums"`
	PerCategory map[models.Category]float64 `json:"perCategory"`
	Overall     float64                     `json:"overall"`
}

// Aggregate считает показатели окна, которое заканчивается в referenceDate.
// Записи без даты в окно не попадают. Делитель всегда 28, а не число записей.
func Aggregate(entries []models.Entry, referenceDate time.Time) Summary {
	cutoff := models.Day(referenceDate).AddDate(0, 0, -WindowDays)

	sums := make(map[models.Category]float64, len(models.Categories))
	for _, c := range models.Categories {
		sums[c] = 0
	}
	for _, e := range entries {
		if !e.HasDate() || e.Date.Before(cutoff) {
			continue
		}
		if _, ok := sums[e.Category]; ok {
			sums[e.Category] += e.Score
		}
	}

	summary := Summary{
		Sums:        sums,
		PerCategory: make(map[models.Category]float64, len(sums)),
	}
	var total float64
	for _, c := range models.Categories {
		summary.PerCategory[c] = sums[c] / WindowDays
		total += sums[c]
	}
	summary.Overall = total / float64(WindowDays*len(models.Categories))
	return summary
}

// FormatScore округляет до одного знака для отображения
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Formatted показатели для отображения: по категориям и "overall"
func (s Summary) Formatted() map[string]string {
	out := make(map[string]string, len(s.PerCategory)+1)
	for c, v := range s.PerCategory {
		out[string(c)] = FormatScore(v)
	}
	out["overall"] = FormatScore(s.Overall)
	return out
}

// SortHistory возвращает копию записей по убыванию даты.
// Записи с одинаковой датой сохраняют порядок вставки, записи без даты идут в конце.
func SortHistory(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.After(b.Date)
	})
	return out
}
