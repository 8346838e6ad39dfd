package models

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"Endurance", Endurance, false},
		{" strength ", Strength, false},
		{"FLEXIBILITY", Flexibility, false},
		{"Ausdauer", Endurance, false},
		{"Kraft", Strength, false},
		{"Beweglichkeit", Flexibility, false},
		{"Выносливость", Endurance, false},
		{"сила", Strength, false},
		{"Гибкость", Flexibility, false},
		{"Yoga", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"storage format", "07.03.2024", false},
		{"iso", "2024-03-07", false},
		{"iso with time", "2024-03-07 18:30:00", false},
		{"excel default", "03-07-24", false},
		{"garbage", "вчера", true},
		{"empty", "  ", true},
		{"impossible day", "31.02.2024", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestEntryFormatDate(t *testing.T) {
	e := Entry{Date: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)}
	if got := e.FormatDate(); got != "01.12.2024" {
		t.Errorf("FormatDate() = %q, want 01.12.2024", got)
	}

	broken := Entry{DateText: "32.13.2024"}
	if broken.HasDate() {
		t.Error("entry without parsed date reports HasDate")
	}
	if got := broken.FormatDate(); got != "32.13.2024" {
		t.Errorf("FormatDate() = %q, want original text", got)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Category("Ausdauer").Valid() {
		t.Error("alias must not be a valid stored category")
	}
}
