package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitscore/internal/models"
	"fitscore/internal/scoring"
	"fitscore/internal/store"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrInvalidCandidate данные формы не прошли проверку типа/диапазона
	ErrInvalidCandidate = errors.New("некорректная запись")
	// ErrStoreUnavailable запись не сохранена: хранилище не прочиталось
	ErrStoreUnavailable = errors.New("хранилище недоступно")
)

// View всё, что нужно для отрисовки страницы
type View struct {
	Today   time.Time
	Summary scoring.Summary
	// History все записи по убыванию даты, включая несохранённую
	History []models.Entry
	// Unsaved запись, которую не удалось сохранить
	Unsaved []models.Entry
	// Degraded хранилище не прочиталось, показаны пустые данные
	Degraded bool
}

// Empty true, если записей нет
func (v *View) Empty() bool {
	return len(v.History) == 0
}

// SubmitResult результат сохранения записи
type SubmitResult struct {
	Entry   models.Entry
	Saved   bool
	SaveErr error
	View    *View
}

// Service цикл чтения/записи поверх хранилища. Каждый вызов перечитывает хранилище целиком.
// Вызовы из бота, HTTP и cron выполняются по одному.
type Service struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

// New создаёт сервис
func New(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// WithClock подменяет часы (для тестов и расчёта на другую дату)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today текущий календарный день
func (s *Service) Today() time.Time {
	return models.Day(s.now())
}

// Dashboard перечитывает хранилище и считает показатели на сегодня
func (s *Service) Dashboard(ctx context.Context) *View {
	return s.DashboardAt(ctx, s.Today())
}

// DashboardAt то же, что Dashboard, но на произвольную дату
func (s *Service) DashboardAt(ctx context.Context, referenceDate time.Time) *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.LoadAll(ctx)
	if err != nil {
		log.Warnf("хранилище не прочиталось, показываем пустые данные: %v", err)
		return buildView(nil, nil, referenceDate, true)
	}
	return buildView(entries, nil, referenceDate, false)
}

// Submit считает очки, добавляет запись и перезаписывает хранилище.
// Ошибка возвращается только для некорректных данных; сбой записи отражается в результате.
func (s *Service) Submit(ctx context.Context, c models.Candidate) (*SubmitResult, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	entry := scoring.NewEntry(c)
	today := s.Today()
	result := &SubmitResult{Entry: entry}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.LoadAll(ctx)
	if err != nil {
		// без прочитанной таблицы полная перезапись затёрла бы старые записи
		result.SaveErr = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		log.Errorf("запись не сохранена: %v", result.SaveErr)
		result.View = buildView(nil, []models.Entry{entry}, today, true)
		return result, nil
	}

	all := make([]models.Entry, 0, len(entries)+1)
	all = append(all, entries...)
	all = append(all, entry)

	if err := s.store.AppendAndPersist(ctx, all); err != nil {
		result.SaveErr = err
		log.Errorf("запись не сохранена: %v", err)
		result.View = buildView(entries, []models.Entry{entry}, today, false)
		return result, nil
	}

	log.Infof("сохранена запись %s %s: значение %d, очки %s",
		entry.FormatDate(), entry.Category, entry.RawValue, scoring.FormatScore(entry.Score))
	result.Saved = true
	result.View = buildView(all, nil, today, false)
	return result, nil
}

// Validate проверяет тип и диапазон данных формы
func Validate(c models.Candidate) error {
	if c.Date.IsZero() {
		return fmt.Errorf("%w: не указана дата", ErrInvalidCandidate)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: неизвестная категория %q", ErrInvalidCandidate, c.Category)
	}
	if c.RawValue < 0 {
		return fmt.Errorf("%w: значение не может быть отрицательным", ErrInvalidCandidate)
	}
	return nil
}

// buildView показатели считаются только по сохранённым записям, unsaved попадают лишь в историю
func buildView(persisted, unsaved []models.Entry, referenceDate time.Time, degraded bool) *View {
	history := make([]models.Entry, 0, len(persisted)+len(unsaved))
	history = append(history, persisted...)
	history = append(history, unsaved...)

	return &View{
		Today:    models.Day(referenceDate),
		Summary:  scoring.Aggregate(persisted, referenceDate),
		History:  scoring.SortHistory(history),
		Unsaved:  unsaved,
		Degraded: degraded,
	}
}
