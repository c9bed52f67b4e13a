package formatter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// RenderReport renders report rows in the given format.
func RenderReport(f Format, rows []models.ReportRow) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return ReportToMarkdown(rows)
	case FormatCSV:
		return ReportToCSV(rows)
	case FormatJSON:
		return shared.MarshalJSON(rows, true)
	default:
		return ReportToText(rows)
	}
}

// ReportToCSV converts report rows to CSV with columns: Category, Status, Count
func ReportToCSV(rows []models.ReportRow) ([]byte, error) {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{r.Category, r.Status, strconv.Itoa(r.Count)}
	}
	return writeCSV([]string{"Category", "Status", "Count"}, records)
}

// ReportToMarkdown renders the report as a Markdown table with a total line.
func ReportToMarkdown(rows []models.ReportRow) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Reading Report\n\n")
	buf.WriteString("| Category | Status | Count |\n")
	buf.WriteString("|---|---|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&buf, "| %s | %s | %d |\n", mdCell(r.Category), statusLabel(r.Status), r.Count)
	}
	fmt.Fprintf(&buf, "\n**Total**: %d\n", reportTotal(rows))

	return buf.Bytes(), nil
}

// ReportToText renders the report as an aligned table ending in a total row.
func ReportToText(rows []models.ReportRow) ([]byte, error) {
	if len(rows) == 0 {
		return []byte("No report data.\n"), nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "STATUS", "COUNT").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	for _, r := range rows {
		t.Row(r.Category, statusLabel(r.Status), strconv.Itoa(r.Count))
	}
	t.Row("Total", "", strconv.Itoa(reportTotal(rows)))

	return []byte(t.Render() + "\n"), nil
}

func reportTotal(rows []models.ReportRow) int {
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return total
}

func statusLabel(s string) string {
	if st, err := models.ParseReadingStatus(s); err == nil {
		return st.Label()
	}
	return s
}
