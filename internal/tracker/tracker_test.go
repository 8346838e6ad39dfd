package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitscore/internal/models"
	"fitscore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 30, 20, 15, 0, 0, time.UTC)

func clock() time.Time { return now }

// flakyStore хранилище, которое падает по требованию
type flakyStore struct {
	*store.Memory
	loadErr  error
	writeErr error
	writes   int
}

func (f *flakyStore) LoadAll(ctx context.Context) ([]models.Entry, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.Memory.LoadAll(ctx)
}

func (f *flakyStore) AppendAndPersist(ctx context.Context, entries []models.Entry) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.Memory.AppendAndPersist(ctx, entries)
}

func candidate(daysAgo int, c models.Category, raw int) models.Candidate {
	return models.Candidate{Date: now.AddDate(0, 0, -daysAgo), Category: c, RawValue: raw}
}

func TestService_DashboardEmpty(t *testing.T) {
	svc := New(store.NewMemory()).WithClock(clock)

	v := svc.Dashboard(context.Background())

	assert.True(t, v.Empty())
	assert.False(t, v.Degraded)
	assert.Equal(t, 0.0, v.Summary.Overall)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), v.Today)
}

func TestService_SubmitAndDashboard(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := New(mem).WithClock(clock)

	res, err := svc.Submit(ctx, candidate(0, models.Endurance, 28))
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, 28.0, res.Entry.Score)

	res, err = svc.Submit(ctx, candidate(0, models.Strength, 4))
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, 20.0, res.Entry.Score)

	v := svc.Dashboard(ctx)
	assert.Equal(t, 1.0, v.Summary.PerCategory[models.Endurance])
	assert.InDelta(t, 20.0/28, v.Summary.PerCategory[models.Strength], 1e-9)
	assert.Equal(t, 0.0, v.Summary.PerCategory[models.Flexibility])
	assert.InDelta(t, 48.0/84, v.Summary.Overall, 1e-9)
	assert.Len(t, v.History, 2)
	assert.Equal(t, res.View.Summary, v.Summary)
}

func TestService_HistoryIsDescending(t *testing.T) {
	ctx := context.Background()
	svc := New(store.NewMemory()).WithClock(clock)

	for _, days := range []int{3, 0, 10, 1} {
		_, err := svc.Submit(ctx, candidate(days, models.Flexibility, days))
		require.NoError(t, err)
	}

	v := svc.Dashboard(ctx)
	require.Len(t, v.History, 4)
	for i := 1; i < len(v.History); i++ {
		assert.False(t, v.History[i].Date.After(v.History[i-1].Date))
	}
	assert.Equal(t, 0, v.History[0].RawValue)
	assert.Equal(t, 10, v.History[3].RawValue)
}

func TestService_SubmitInvalid(t *testing.T) {
	svc := New(store.NewMemory()).WithClock(clock)

	tests := []struct {
		name string
		c    models.Candidate
	}{
		{"negative value", candidate(0, models.Strength, -1)},
		{"unknown category", candidate(0, models.Category("Yoga"), 1)},
		{"no date", models.Candidate{Category: models.Endurance, RawValue: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.c)
			assert.ErrorIs(t, err, ErrInvalidCandidate)
		})
	}
}

func TestService_WriteFailureKeepsEntryVisible(t *testing.T) {
	ctx := context.Background()
	existing := models.Entry{Date: models.Day(now), Category: models.Endurance, RawValue: 28, Score: 28}
	fs := &flakyStore{Memory: store.NewMemory(existing), writeErr: errors.New("disk full")}
	svc := New(fs).WithClock(clock)

	res, err := svc.Submit(ctx, candidate(0, models.Strength, 4))
	require.NoError(t, err)

	assert.False(t, res.Saved)
	assert.EqualError(t, res.SaveErr, "disk full")
	require.Len(t, res.View.History, 2)
	assert.Equal(t, []models.Entry{res.Entry}, res.View.Unsaved)
	// показатели не учитывают несохранённую запись
	assert.Equal(t, 0.0, res.View.Summary.PerCategory[models.Strength])
	assert.Equal(t, 1.0, res.View.Summary.PerCategory[models.Endurance])

	after, _ := fs.Memory.LoadAll(ctx)
	assert.Equal(t, []models.Entry{existing}, after)
}

func TestService_LoadFailure(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Memory: store.NewMemory(), loadErr: errors.New("network down")}
	svc := New(fs).WithClock(clock)

	v := svc.Dashboard(ctx)
	assert.True(t, v.Degraded)
	assert.True(t, v.Empty())
	assert.Equal(t, 0.0, v.Summary.Overall)

	res, err := svc.Submit(ctx, candidate(0, models.Endurance, 5))
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.ErrorIs(t, res.SaveErr, ErrStoreUnavailable)
	assert.Equal(t, 0, fs.writes, "must not overwrite a store it could not read")
	assert.Len(t, res.View.History, 1)
}

func TestService_DashboardAt(t *testing.T) {
	ctx := context.Background()
	svc := New(store.NewMemory()).WithClock(clock)
	_, err := svc.Submit(ctx, candidate(0, models.Endurance, 28))
	require.NoError(t, err)

	assert.Equal(t, 1.0, svc.DashboardAt(ctx, now.AddDate(0, 0, 28)).Summary.PerCategory[models.Endurance])
	assert.Equal(t, 0.0, svc.DashboardAt(ctx, now.AddDate(0, 0, 29)).Summary.PerCategory[models.Endurance])
}

func TestService_ConcurrentSubmitsAreNotLost(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := New(mem).WithClock(clock)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Submit(ctx, candidate(i%28, models.Endurance, 1))
			assert.NoError(t, err)
			assert.True(t, res.Saved)
			svc.Dashboard(ctx)
		}(i)
	}
	wg.Wait()

	entries, err := mem.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, n)
	assert.Equal(t, float64(n)/28, svc.Dashboard(ctx).Summary.PerCategory[models.Endurance])
}
