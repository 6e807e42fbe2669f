package render

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/grid"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

func TestRenderFormats(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	l := timetable.FromGrid(grid.Compute(
		[]schedule.Session{{ID: "a", Title: "Keynote", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}},
		nil, grid.Options{},
	))

	tests := []struct {
		format string
		want   string
	}{
		{FormatJSON, `"session_id": "a"`},
		{FormatText, "Keynote"},
		{FormatAgenda, "10:00–11:00"},
		{FormatDOT, "digraph G"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Render(context.Background(), l, tt.format, Options{})
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Render(%s) missing %q:\n%s", tt.format, tt.want, data)
			}
		})
	}

	data, _ := Render(context.Background(), l, FormatJSON, Options{})
	if !json.Valid(data) {
		t.Error("json output should be valid JSON")
	}
}

func TestRenderDeterministic(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	build := func() timetable.Layout {
		return timetable.FromGrid(grid.Compute(
			[]schedule.Session{
				{ID: "a", Title: "A", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
				{ID: "b", Title: "B", Start: day.Add(10 * time.Hour), End: day.Add(12 * time.Hour)},
			}, nil, grid.Options{},
		))
	}
	for _, f := range []string{FormatText, FormatDOT, FormatAgenda} {
		a, _ := Render(context.Background(), build(), f, Options{})
		b, _ := Render(context.Background(), build(), f, Options{})
		if string(a) != string(b) {
			t.Errorf("%s output differs between runs", f)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%s) error: %v", f, err)
		}
	}
	err := ValidateFormat("pdf")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(pdf) = %v", err)
	}
	if _, err := Render(context.Background(), timetable.Layout{}, "pdf", Options{}); err == nil {
		t.Error("Render should reject unknown formats")
	}
}

func TestContentTypeAndExt(t *testing.T) {
	if ContentType(FormatSVG) != "image/svg+xml" || ContentType(FormatAgenda) != "text/plain; charset=utf-8" {
		t.Error("unexpected content types")
	}
	if Ext(FormatText) != "txt" || Ext(FormatAgenda) != "agenda.txt" || Ext(FormatSVG) != "svg" {
		t.Error("unexpected extensions")
	}
}
