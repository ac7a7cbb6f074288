package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"azlegapi/lib/timezone"
	"azlegapi/lib/xmlrecord"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printJSON(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		v = v.In(timezone.Location)
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format("2006-01-02 15:04")
	case []xmlrecord.Record:
		return fmt.Sprintf("(%d)", len(v))
	case xmlrecord.Record:
		return "{...}"
	}
	return fmt.Sprint(value)
}

// scalarColumns lists the keys of every record that do not hold nested
// records, sorted.
func scalarColumns(records []xmlrecord.Record) []string {
	var keys []string
	for _, record := range records {
		for key, value := range record {
			switch value.(type) {
			case []xmlrecord.Record, xmlrecord.Record:
				continue
			}
			keys = append(keys, key)
		}
	}
	keys = lo.Uniq(keys)
	sort.Strings(keys)
	return keys
}

// printRecords renders one row per record. Without explicit columns every
// scalar field becomes a column.
func printRecords(records []xmlrecord.Record, columns ...string) error {
	if jsonOutput {
		return printJSON(records)
	}
	if len(columns) == 0 {
		columns = scalarColumns(records)
	}

	t := newTable()
	t.AppendHeader(table.Row(lo.Map(columns, func(c string, _ int) any {
		return strings.ToUpper(strings.ReplaceAll(c, "_", " "))
	})))
	for _, record := range records {
		t.AppendRow(table.Row(lo.Map(columns, func(c string, _ int) any {
			return formatValue(record[c])
		})))
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(records))})
	t.Render()
	return nil
}

// printRecord renders a single record as a field/value table.
func printRecord(record xmlrecord.Record) error {
	if jsonOutput {
		return printJSON(record)
	}
	keys := lo.Keys(record)
	sort.Strings(keys)

	t := newTable()
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, key := range keys {
		t.AppendRow(table.Row{key, formatValue(record[key])})
	}
	t.Render()
	return nil
}

// printCollection prints the list stored under key, or the whole record as
// JSON.
func printCollection(record xmlrecord.Record, key string, columns ...string) error {
	if jsonOutput {
		return printJSON(record)
	}
	items, _ := record[key].([]xmlrecord.Record)
	return printRecords(items, columns...)
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := xmlrecord.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &date, nil
}
