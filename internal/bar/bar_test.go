package bar

import (
	"testing"

	"github.com/nireo/stupidwm/internal/displaytest"
	"github.com/nireo/stupidwm/internal/layout"
	"github.com/nireo/stupidwm/internal/monitor"
)

func TestPaintSkipsMonitorsWithoutABar(t *testing.T) {
	mock := displaytest.NewMock(1)
	r := New(mock, 1, 2)
	m := &monitor.Monitor{Width: 1920}
	r.Paint(m)
	if len(mock.Calls) != 0 {
		t.Fatalf("expected no calls when the monitor has no bar surface")
	}
}

func TestPaintFillsBackgroundThenTenTagCells(t *testing.T) {
	mock := displaytest.NewMock(1)
	r := New(mock, 0xAAAAAA, 0xBBBBBB)
	m := &monitor.Monitor{Width: 1920, Bar: 500, ActiveWorkspace: 2}

	r.Paint(m)

	if mock.Calls[0].Name != "FillRect" || mock.Calls[0].Rect.Height != layout.BarHeight {
		t.Fatalf("expected the first call to fill the bar background")
	}
	if mock.Calls[0].Value != 0xBBBBBB {
		t.Fatalf("expected background fill to use the unfocus color")
	}

	fills := 0
	texts := 0
	for _, c := range mock.Calls[1:] {
		switch c.Name {
		case "FillRect":
			fills++
		case "DrawText":
			texts++
		}
	}
	if fills != 10 || texts != 10 {
		t.Fatalf("expected 10 tag cells and 10 labels, got fills=%d texts=%d", fills, texts)
	}
}

func TestPaintHighlightsActiveTag(t *testing.T) {
	mock := displaytest.NewMock(1)
	r := New(mock, 0xAAAAAA, 0xBBBBBB)
	m := &monitor.Monitor{Width: 1920, Bar: 500, ActiveWorkspace: 0}

	r.Paint(m)

	// Calls[0] is the background fill; Calls[1] is tag "1"'s cell fill.
	if mock.Calls[1].Value != 0xAAAAAA {
		t.Fatalf("expected the active tag's cell to use the focus color, got %x", mock.Calls[1].Value)
	}
	// The next cell fill (tag "2") should use the unfocus color.
	if mock.Calls[3].Name != "FillRect" || mock.Calls[3].Value != 0xBBBBBB {
		t.Fatalf("expected inactive tags to use the unfocus color, got %+v", mock.Calls[3])
	}
}
