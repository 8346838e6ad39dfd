package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout формат даты в хранилище (DD.MM.YYYY)
const DateLayout = "02.01.2006"

// Category тип тренировки
type Category string

const (
	Endurance   Category = "Endurance"
	Strength    Category = "Strength"
	Flexibility Category = "Flexibility"
)

// Categories все категории в порядке отображения
var Categories = []Category{Endurance, Strength, Flexibility}

// categoryAliases старые немецкие названия из исходной таблицы и русские подписи бота
var categoryAliases = map[string]Category{
	"endurance":     Endurance,
	"strength":      Strength,
	"flexibility":   Flexibility,
	"ausdauer":      Endurance,
	"kraft":         Strength,
	"beweglichkeit": Flexibility,
	"выносливость":  Endurance,
	"сила":          Strength,
	"гибкость":      Flexibility,
}

// categoryLabels подписи категорий для пользователя
var categoryLabels = map[Category]string{
	Endurance:   "Выносливость",
	Strength:    "Сила",
	Flexibility: "Гибкость",
}

// ParseCategory разбирает название категории с учётом алиасов
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("неизвестная категория: %q", s)
}

// Valid проверяет, что категория из фиксированного набора
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label возвращает подпись категории для пользователя
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// UnitPrompt подсказка для ввода значения: интенсивность для выносливости, минуты для остального
func (c Category) UnitPrompt() string {
	if c == Endurance {
		return "Значение интенсивности"
	}
	return "Длительность занятия в минутах"
}

// Entry одна записанная тренировка. После создания не меняется.
type Entry struct {
	Date     time.Time `json:"-"`
	Category Category  `json:"category"`
	RawValue int       `json:"rawValue"`
	Score    float64   `json:"score"`
	Comment  string    `json:"comment,omitempty"`

	// DateText исходный текст даты, если его не удалось разобрать.
	// Сохраняется обратно как есть.
	DateText string `json:"-"`
}

// HasDate true, если дата записи разобрана
func (e Entry) HasDate() bool {
	return !e.Date.IsZero()
}

// FormatDate дата в формате хранилища
func (e Entry) FormatDate() string {
	if !e.HasDate() {
		return e.DateText
	}
	return e.Date.Format(DateLayout)
}

// Candidate данные формы до расчёта очков
type Candidate struct {
	Date     time.Time
	Category Category
	RawValue int
	Comment  string
}

// dateLayouts форматы, которые встречаются в старых файлах
var dateLayouts = []string{
	DateLayout,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01-02-06",
	"1/2/06",
}

// ParseDate разбирает дату и обрезает её до календарного дня
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("пустая дата")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("неверный формат даты: %q", s)
}

// Day обрезает время до календарного дня (UTC)
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today текущий календарный день по локальному времени
func Today() time.Time {
	return Day(time.Now())
}
