package bot

import (
	"fmt"
	"strings"

	"fitscore/internal/models"
	"fitscore/internal/scoring"
	"fitscore/internal/tracker"
)

// defaultHistoryLimit сколько записей показывать в /history
const defaultHistoryLimit = 10

// formatDashboard показатели за 28 дней
func formatDashboard(v *tracker.View) string {
	var sb strings.Builder

	if v.Degraded {
		sb.WriteString("⚠️ Хранилище недоступно, данные могут быть неполными.\n\n")
	}
	if v.Empty() {
		sb.WriteString("Записей пока нет. Начните прямо сейчас!")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("📈 Фитнес-очки за последние %d дней\n\n", scoring.WindowDays))
	for _, c := range models.Categories {
		sb.WriteString(fmt.Sprintf("%s: %s\n", c.Label(), scoring.FormatScore(v.Summary.PerCategory[c])))
	}
	sb.WriteString(fmt.Sprintf("\nИтого: %s", scoring.FormatScore(v.Summary.Overall)))
	return sb.String()
}

// formatHistory последние записи по убыванию даты
func formatHistory(v *tracker.View, limit int) string {
	if v.Empty() {
		return "Записей пока нет."
	}

	// несохранённые добавлены последними, сортировка стабильная: берём последнее совпадение
	unsaved := make(map[int]bool)
	for _, u := range v.Unsaved {
		for i := len(v.History) - 1; i >= 0; i-- {
			if v.History[i] == u && !unsaved[i] {
				unsaved[i] = true
				break
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("📝 История тренировок\n\n")
	for i, e := range v.History {
		if limit > 0 && i >= limit {
			sb.WriteString(fmt.Sprintf("... и ещё %d", len(v.History)-limit))
			break
		}
		sb.WriteString(formatEntry(e))
		if unsaved[i] {
			sb.WriteString(" ⚠️ не сохранено")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatEntry одна строка истории
func formatEntry(e models.Entry) string {
	date := e.FormatDate()
	if date == "" {
		date = "без даты"
	}
	line := fmt.Sprintf("%s · %s · %d → %s", date, e.Category.Label(), e.RawValue, scoring.FormatScore(e.Score))
	if e.Comment != "" {
		line += " (" + e.Comment + ")"
	}
	return line
}

// formatSubmitResult ответ после сохранения
func formatSubmitResult(res *tracker.SubmitResult) string {
	if !res.Saved {
		return fmt.Sprintf("❌ Не удалось сохранить запись (очки: %s). Попробуйте позже.\n\n%s",
			scoring.FormatScore(res.Entry.Score), formatDashboard(res.View))
	}
	return fmt.Sprintf("✅ Запись сохранена! Очки: %s\n\n%s",
		scoring.FormatScore(res.Entry.Score), formatDashboard(res.View))
}
