package search

import (
	"sort"
	"strings"
	"time"

	"github.com/bloop16/homestate/core"
)

// MostRecentTag marks the newest entry in a rendered context block.
const MostRecentTag = "[MOST RECENT]"

// contextTimestampLayout is the human-readable timestamp appended to
// each context line.
const contextTimestampLayout = "2006-01-02 15:04:05"

// RenderContext turns search results into a context block for the chat
// model. Entries are ordered by timestamp descending regardless of
// similarity order, the newest entry is tagged, and zero results render
// as the empty string.
func RenderContext(results []core.SearchResult) string {
	records := make([]*core.DatapointRecord, 0, len(results))
	for _, res := range results {
		if res.Record != nil {
			records = append(records, res.Record)
		}
	}
	return RenderRecords(records)
}

// RenderRecords renders raw records the same way RenderContext renders
// scored results. Used by call sites that list points directly instead
// of searching.
func RenderRecords(records []*core.DatapointRecord) string {
	if len(records) == 0 {
		return ""
	}

	ordered := make([]*core.DatapointRecord, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			ordered = append(ordered, rec)
		}
	}
	if len(ordered) == 0 {
		return ""
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})

	var b strings.Builder
	for i, rec := range ordered {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderLine(rec, i == 0))
	}
	return b.String()
}

func renderLine(rec *core.DatapointRecord, newest bool) string {
	var b strings.Builder

	if rec.FormattedText != "" {
		b.WriteString(rec.FormattedText)
	} else {
		label := rec.Description
		if label == "" {
			label = rec.DatapointID
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(core.FormatValue(rec.Value))
		if rec.Location != "" {
			b.WriteString(" (")
			b.WriteString(rec.Location)
			b.WriteByte(')')
		}
	}

	if !rec.Timestamp.IsZero() {
		b.WriteString(" - ")
		b.WriteString(rec.Timestamp.In(time.Local).Format(contextTimestampLayout))
	}
	if newest {
		b.WriteByte(' ')
		b.WriteString(MostRecentTag)
	}
	return b.String()
}
