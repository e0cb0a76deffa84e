// Package export projects the request collection into a spreadsheet
// friendly CSV summary for a date range.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"collabflow/internal/logging"
	"collabflow/internal/types"
)

var (
	// ErrEmptyRange is returned when the date range is not fully set.
	ErrEmptyRange = errors.New("export: date range not set")
	// ErrNoRows is returned when no records fall inside the range.
	ErrNoRows = errors.New("export: no records in range")
)

// bom keeps Excel from mangling the Chinese header.
const bom = "\ufeff"

const header = "日期,品牌名称,联系邮箱,摘要,预算,状态"

const dayFormat = "2006-01-02"

// CSV renders the records dated inside [r.Start, r.End] (inclusive on
// both ends) as a CSV document. Records whose date does not parse are
// excluded. The source collection is never modified; record order is
// preserved.
func CSV(records []types.CollaborationRequest, r types.DateRange) ([]byte, error) {
	if r.Start == "" || r.End == "" {
		return nil, ErrEmptyRange
	}
	start, err := time.Parse(dayFormat, r.Start)
	if err != nil {
		return nil, fmt.Errorf("export: bad start date %q: %w", r.Start, err)
	}
	end, err := time.Parse(dayFormat, r.End)
	if err != nil {
		return nil, fmt.Errorf("export: bad end date %q: %w", r.End, err)
	}

	var rows []string
	for _, rec := range records {
		date, err := time.Parse(dayFormat, rec.RequestDate)
		if err != nil || date.Before(start) || date.After(end) {
			continue
		}
		rows = append(rows, row(rec))
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	logging.Export("[CSV] range=%s..%s rows=%d", r.Start, r.End, len(rows))

	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(header)
	for _, line := range rows {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return []byte(b.String()), nil
}

func row(r types.CollaborationRequest) string {
	return fmt.Sprintf(`%s,"%s","%s","%s","%s",%s`,
		r.RequestDate,
		quote(r.BrandName),
		r.Email,
		quote(r.Summary),
		r.Budget,
		r.Status,
	)
}

// quote doubles embedded quotes for fields that may contain them.
func quote(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// Filename names the download after the exported range.
func Filename(r types.DateRange) string {
	return fmt.Sprintf("合作汇总_%s_%s.csv", r.Start, r.End)
}
