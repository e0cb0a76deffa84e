package export

import (
	"errors"
	"strings"
	"testing"

	"collabflow/internal/types"
)

func rec(id, date, brand string) types.CollaborationRequest {
	return types.CollaborationRequest{
		ID:          id,
		BrandName:   brand,
		Email:       brand + "@example.com",
		RequestDate: date,
		Summary:     "新品推广",
		Budget:      "预算5k",
		Status:      types.StatusPending,
	}
}

func TestCSVRequiresFullRange(t *testing.T) {
	records := []types.CollaborationRequest{rec("a", "2024-01-15", "A")}

	for _, r := range []types.DateRange{
		{},
		{Start: "2024-01-01"},
		{End: "2024-01-31"},
	} {
		if _, err := CSV(records, r); !errors.Is(err, ErrEmptyRange) {
			t.Fatalf("range %+v: err = %v, want ErrEmptyRange", r, err)
		}
	}
}

func TestCSVRangeBoundsAreInclusive(t *testing.T) {
	records := []types.CollaborationRequest{
		rec("a", "2024-01-01", "OnStart"),
		rec("b", "2024-01-31", "OnEnd"),
		rec("c", "2024-02-01", "After"),
		rec("d", "2023-12-31", "Before"),
	}

	got, err := CSV(records, types.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	out := string(got)
	if !strings.Contains(out, "OnStart") || !strings.Contains(out, "OnEnd") {
		t.Fatalf("boundary dates missing:\n%s", out)
	}
	if strings.Contains(out, "After") || strings.Contains(out, "Before") {
		t.Fatalf("out-of-range dates included:\n%s", out)
	}
}

func TestCSVSkipsMalformedRecordDates(t *testing.T) {
	records := []types.CollaborationRequest{
		rec("a", "2024-01-15", "Good"),
		rec("b", "recently", "Bad"),
	}

	got, err := CSV(records, types.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	out := string(got)
	if !strings.Contains(out, "Good") {
		t.Fatalf("valid record missing:\n%s", out)
	}
	if strings.Contains(out, "Bad") {
		t.Fatalf("record with unparseable date included:\n%s", out)
	}
}

func TestCSVRejectsMalformedRange(t *testing.T) {
	records := []types.CollaborationRequest{rec("a", "2024-01-15", "A")}

	if _, err := CSV(records, types.DateRange{Start: "not-a-date", End: "2024-01-31"}); err == nil {
		t.Fatal("expected error for unparseable range start")
	}
	if _, err := CSV(records, types.DateRange{Start: "2024-01-01", End: "31/01/2024"}); err == nil {
		t.Fatal("expected error for unparseable range end")
	}
}

func TestCSVNoRowsInRange(t *testing.T) {
	records := []types.CollaborationRequest{rec("a", "2024-06-01", "A")}

	_, err := CSV(records, types.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("err = %v, want ErrNoRows", err)
	}
}

func TestCSVFormat(t *testing.T) {
	records := []types.CollaborationRequest{{
		ID:          "a",
		BrandName:   `Say "Hi" Co`,
		Email:       "pr@brand.com",
		RequestDate: "2024-01-15",
		Summary:     "新品口红推广",
		Budget:      "",
		Status:      types.StatusPending,
	}}

	got, err := CSV(records, types.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	out := string(got)

	if !strings.HasPrefix(out, "\ufeff") {
		t.Fatal("output missing BOM")
	}
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	if lines[0] != "日期,品牌名称,联系邮箱,摘要,预算,状态" {
		t.Fatalf("header = %q", lines[0])
	}
	want := `2024-01-15,"Say ""Hi"" Co","pr@brand.com","新品口红推广","",pending`
	if lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestCSVPreservesRecordOrder(t *testing.T) {
	records := []types.CollaborationRequest{
		rec("b", "2024-01-20", "Second"),
		rec("a", "2024-01-10", "First"),
	}

	got, err := CSV(records, types.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	out := string(got)
	if strings.Index(out, "Second") > strings.Index(out, "First") {
		t.Fatal("rows reordered")
	}
}

func TestFilename(t *testing.T) {
	got := Filename(types.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if got != "合作汇总_2024-01-01_2024-01-31.csv" {
		t.Fatalf("filename = %q", got)
	}
}
