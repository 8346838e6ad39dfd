package scoring

import "fitscore/internal/models"

// MinuteMultiplier переводит минуты силовой/растяжки в очки
const MinuteMultiplier = 5

// Score считает очки записи.
// Выносливость: значение уже в очках интенсивности. Сила и гибкость: минуты * 5.
func Score(category models.Category, rawValue int) float64 {
	if category == models.Endurance {
		return float64(rawValue)
	}
	return float64(rawValue * MinuteMultiplier)
}

// NewEntry создаёт запись из данных формы, очки фиксируются в момент создания
func NewEntry(c models.Candidate) models.Entry {
	return models.Entry{
		Date:     models.Day(c.Date),
		Category: c.Category,
		RawValue: c.RawValue,
		Score:    Score(c.Category, c.RawValue),
		Comment:  c.Comment,
	}
}
