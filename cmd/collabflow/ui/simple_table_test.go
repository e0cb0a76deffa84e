package ui

import (
	"strings"
	"testing"
)

func TestSimpleTableEmpty(t *testing.T) {
	table := NewSimpleTable("Requests", []string{"Brand", "Status"})
	if got := table.View(DefaultStyles()); got != "" {
		t.Fatalf("empty table should render nothing, got %q", got)
	}
}

func TestSimpleTableRendersHeadersAndRows(t *testing.T) {
	table := NewSimpleTable("Requests", []string{"Brand", "Status"})
	table.AddRow("完美日记", "pending")
	table.AddRow("Nike", "replied")

	out := table.View(NewStyles(LightTheme()))
	for _, want := range []string{"Requests", "Brand", "Status", "完美日记", "Nike", "replied"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSimpleTableStatusColumnKeepsValues(t *testing.T) {
	table := NewSimpleTable("", []string{"Brand", "状态"})
	table.AddRow("Nike", "replied")
	table.AddRow("完美日记", "pending")

	out := table.View(NewStyles(DarkTheme()))
	for _, want := range []string{"replied", "pending"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status value %q missing:\n%s", want, out)
		}
	}
}

func TestSimpleTableIgnoresExtraCells(t *testing.T) {
	table := NewSimpleTable("", []string{"Brand"})
	table.AddRow("Nike", "overflow")

	out := table.View(NewStyles(LightTheme()))
	if strings.Contains(out, "overflow") {
		t.Fatalf("cells beyond headers should be dropped:\n%s", out)
	}
}
