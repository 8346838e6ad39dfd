package store

import (
	"context"
	"testing"
	"time"

	"fitscore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowToEntry(t *testing.T) {
	tests := []struct {
		name   string
		row    []string
		want   models.Entry
		wantOK bool
	}{
		{
			name: "full row",
			row:  []string{"05.06.2024", "Strength", "4", "20", "присед"},
			want: models.Entry{
				Date:     time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				Category: models.Strength,
				RawValue: 4,
				Score:    20,
				Comment:  "присед",
			},
			wantOK: true,
		},
		{
			name: "trailing empty cells trimmed",
			row:  []string{"05.06.2024", "Endurance", "30", "30"},
			want: models.Entry{
				Date:     time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				Category: models.Endurance,
				RawValue: 30,
				Score:    30,
			},
			wantOK: true,
		},
		{
			name: "legacy german category",
			row:  []string{"05.06.2024", "Beweglichkeit", "10", "50"},
			want: models.Entry{
				Date:     time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				Category: models.Flexibility,
				RawValue: 10,
				Score:    50,
			},
			wantOK: true,
		},
		{
			name: "malformed date is kept as text",
			row:  []string{"irgendwann", "Endurance", "5", "5"},
			want: models.Entry{
				DateText: "irgendwann",
				Category: models.Endurance,
				RawValue: 5,
				Score:    5,
			},
			wantOK: true,
		},
		{
			name: "float cells",
			row:  []string{"05.06.2024", "Strength", "4.0", "20,0"},
			want: models.Entry{
				Date:     time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				Category: models.Strength,
				RawValue: 4,
				Score:    20,
			},
			wantOK: true,
		},
		{
			name: "comment keeps surrounding spaces",
			row:  []string{" 05.06.2024 ", " Strength ", " 4 ", " 20 ", "  leg day  "},
			want: models.Entry{
				Date:     time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				Category: models.Strength,
				RawValue: 4,
				Score:    20,
				Comment:  "  leg day  ",
			},
			wantOK: true,
		},
		{
			name:   "blank row",
			row:    []string{"", " ", ""},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RowToEntry(tt.row)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryToRow(t *testing.T) {
	e := models.Entry{
		Date:     time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		Category: models.Flexibility,
		RawValue: 3,
		Score:    15,
		Comment:  "stretch",
	}

	assert.Equal(t, []interface{}{"09.01.2024", "Flexibility", 3, 15.0, "stretch"}, EntryToRow(e))
}

func TestRowsRoundTrip(t *testing.T) {
	entries := []models.Entry{
		{Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Category: models.Strength, RawValue: 3, Score: 15},
		{DateText: "bad", Category: models.Endurance, RawValue: 7, Score: 7, Comment: " x\t"},
		{Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Category: models.Strength, RawValue: 3, Score: 15},
	}

	values := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		values = append(values, EntryToRow(e))
	}

	assert.Equal(t, entries, RowsToEntries(CellStrings(values)))
}

func TestIsHeader(t *testing.T) {
	assert.True(t, IsHeader([]string{"Date", "Category"}))
	assert.True(t, IsHeader([]string{"date"}))
	assert.True(t, IsHeader([]string{"Datum", "Kategorie"}))
	assert.False(t, IsHeader([]string{"01.01.2024"}))
	assert.False(t, IsHeader(nil))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	entries, err := m.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	e := models.Entry{Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Category: models.Endurance, RawValue: 1, Score: 1}
	require.NoError(t, m.AppendAndPersist(ctx, []models.Entry{e, e}))

	entries, err = m.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Entry{e, e}, entries)

	entries[0].Comment = "changed"
	again, _ := m.LoadAll(ctx)
	assert.Empty(t, again[0].Comment)
}
