package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/adriangalilea/go-utils/internal/audit"
	"github.com/adriangalilea/go-utils/internal/format"
	"github.com/adriangalilea/go-utils/internal/kev"
)

// Options controls table rendering.
type Options struct {
	NoColor bool
	// Reveal prints sensitive values unmasked.
	Reveal       bool
	MaskKeywords []string
}

// SourceRow describes one entry of the lookup chain for the sources table.
type SourceRow struct {
	ID          string
	Path        string
	Exists      bool
	Size        int64
	Keys        int
	Fingerprint string
}

// Table renders grouped key/values, groups and keys sorted, followed by a
// one-line summary.
func Table(w io.Writer, groups map[string]map[string]string, opts Options) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	total, masked := 0, 0
	rows := make([][]string, 0)
	for _, name := range names {
		group := groups[name]
		keys := make([]string, 0, len(group))
		for k := range group {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := group[k]
			if !opts.Reveal && kev.IsSensitive(k, opts.MaskKeywords...) {
				v = kev.Mask(v)
				masked++
			}
			rows = append(rows, []string{sourceLabel(name, opts), k, v})
			total++
		}
	}
	if total == 0 {
		fmt.Fprintln(w, "No keys found")
		return
	}

	fmt.Fprintln(w, renderTable([]string{"SOURCE", "KEY", "VALUE"}, rows, nil, opts))
	fmt.Fprintf(w, "Keys: %s (masked: %s)\n", format.Integer(int64(total)), format.Integer(int64(masked)))
}

// Sources renders the lookup chain in priority order.
func Sources(w io.Writer, rows []SourceRow, opts Options) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No sources configured")
		return
	}
	body := make([][]string, 0, len(rows))
	for i, r := range rows {
		status, size, keys, fp := "live", "-", "-", "-"
		if r.ID != kev.SourceOS {
			status = "missing"
			if r.Exists {
				status = "ok"
				size = humanize.Bytes(uint64(r.Size))
				fp = r.Fingerprint
			}
		}
		if r.Exists {
			keys = format.Integer(int64(r.Keys))
		}
		body = append(body, []string{
			fmt.Sprint(i + 1), sourceLabel(r.ID, opts), r.Path, status, keys, size, fp,
		})
	}
	aligns := []text.Align{text.AlignRight, text.AlignLeft, text.AlignLeft, text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignLeft}
	fmt.Fprintln(w, renderTable([]string{"#", "SOURCE", "PATH", "STATUS", "KEYS", "SIZE", "FINGERPRINT"}, body, aligns, opts))
}

// History renders audit records as given (newest first from LoadHistory).
func History(w io.Writer, records []audit.WriteRecord, opts Options) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No writes recorded")
		return
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		change := "unchanged"
		switch {
		case r.Created():
			change = "created"
		case r.Changed():
			change = "changed"
		}
		rows = append(rows, []string{humanize.Time(r.Timestamp), r.Key, sourceLabel(r.File, opts), change})
	}
	fmt.Fprintln(w, renderTable([]string{"WHEN", "KEY", "FILE", "CHANGE"}, rows, nil, opts))
}

func renderTable(headers []string, rows [][]string, aligns []text.Align, opts Options) string {
	columns := len(headers)
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if !opts.NoColor {
		tw.Style().Color.Header = text.Colors{text.Bold}
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

var (
	osStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	memoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func sourceLabel(name string, opts Options) string {
	if opts.NoColor {
		return name
	}
	switch name {
	case kev.SourceOS:
		return osStyle.Render(name)
	case kev.SourceMemory:
		return memoryStyle.Render(name)
	default:
		return fileStyle.Render(name)
	}
}
