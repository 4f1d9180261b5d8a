package models

import (
	"testing"
	"time"
)

func TestFormatHistogram(t *testing.T) {
	tests := []struct {
		name string
		h    map[int]int
		want string
	}{
		{
			name: "full histogram ordered five down to one",
			h:    map[int]int{5: 40, 4: 10, 3: 3, 2: 0, 1: 1},
			want: "5 star: 40, 4 star: 10, 3 star: 3, 2 star: 0, 1 star: 1",
		},
		{
			name: "sparse histogram keeps present buckets only",
			h:    map[int]int{5: 7, 1: 2},
			want: "5 star: 7, 1 star: 2",
		},
		{name: "empty histogram", h: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHistogram(tt.h); got != tt.want {
				t.Errorf("FormatHistogram = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestOutputRowRenders19Columns(t *testing.T) {
	price := 1250.5
	sold := 120
	total := 8
	row := &OutputRow{
		Reviewer:        "rahim",
		StarCount:       4,
		ReviewImageURLs: []string{"https://img.test/a.jpg", "https://img.test/b.jpg"},
		ProductPrice:    &price,
		TotalSold:       &sold,
		TotalRating:     &total,
		CapturedAt:      time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC),
	}

	fields := row.Row()
	if len(fields) != len(CSVHeader) {
		t.Fatalf("rendered %d fields for %d columns", len(fields), len(CSVHeader))
	}
	if fields[3] != "https://img.test/a.jpg, https://img.test/b.jpg" {
		t.Errorf("image join: %q", fields[3])
	}
	if fields[8] != "1250.5" || fields[9] != "120" || fields[10] != "8" {
		t.Errorf("numeric fields: %q %q %q", fields[8], fields[9], fields[10])
	}
	if fields[18] != "2024-03-12T10:30:00" {
		t.Errorf("timestamp: %q", fields[18])
	}
}

func TestOutputRowAbsentNumbersRenderEmpty(t *testing.T) {
	fields := (&OutputRow{}).Row()
	if fields[8] != "" || fields[9] != "" || fields[10] != "" {
		t.Errorf("absent numeric fields must render empty, got %q %q %q",
			fields[8], fields[9], fields[10])
	}
}
