package bot

import (
	"strconv"
	"strings"
	"time"

	"fitscore/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// parseDateInput принимает DD.MM.YYYY, DD.MM (текущий год), "сегодня" и "вчера"
func parseDateInput(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return time.Time{}, ValidationError{Field: "date", Message: "Дата не может быть пустой"}
	case "сегодня", "today":
		return today, nil
	case "вчера", "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if strings.Count(s, ".") == 1 {
		s += "." + strconv.Itoa(today.Year())
	}
	if t, err := time.Parse("2.1.2006", s); err == nil {
		return models.Day(t), nil
	}
	if t, err := models.ParseDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, ValidationError{Field: "date", Message: "Неверный формат даты. Используйте ДД.ММ.ГГГГ"}
}

// parseCategoryInput категория по подписи кнопки или названию
func parseCategoryInput(s string) (models.Category, error) {
	c, err := models.ParseCategory(s)
	if err != nil {
		return "", ValidationError{Field: "category", Message: "Выберите категорию: Выносливость, Сила или Гибкость"}
	}
	return c, nil
}

// parseRawValue целое неотрицательное значение
func parseRawValue(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ValidationError{Field: "value", Message: "Введите целое число"}
	}
	if v < 0 {
		return 0, ValidationError{Field: "value", Message: "Значение не может быть отрицательным"}
	}
	return v, nil
}

// parseAddArgs разбирает "/add [дата] <категория> <значение> [комментарий]"
func parseAddArgs(args string, today time.Time) (models.Candidate, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return models.Candidate{}, ValidationError{
			Field:   "args",
			Message: "Формат: /add [ДД.ММ.ГГГГ] <категория> <значение> [комментарий]",
		}
	}

	c := models.Candidate{Date: today}
	if _, err := models.ParseCategory(fields[0]); err != nil {
		date, err := parseDateInput(fields[0], today)
		if err != nil {
			return models.Candidate{}, err
		}
		c.Date = date
		fields = fields[1:]
		if len(fields) < 2 {
			return models.Candidate{}, ValidationError{Field: "args", Message: "Не хватает категории или значения"}
		}
	}

	category, err := parseCategoryInput(fields[0])
	if err != nil {
		return models.Candidate{}, err
	}
	value, err := parseRawValue(fields[1])
	if err != nil {
		return models.Candidate{}, err
	}

	c.Category = category
	c.RawValue = value
	c.Comment = strings.Join(fields[2:], " ")
	return c, nil
}
