package report_test

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/csvops"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/report"
	"github.com/fatih/color"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func sample() report.Report {
	return report.Report{
		Old:     report.Input{File: "vendors_2024.xlsx", Sheet: "Vendors"},
		New:     report.Input{File: "vendors_2025.xlsx", Sheet: "Sheet1"},
		Summary: csvops.CompareSummary{OldRows: 1200, NewRows: 1250, Added: 2, Removed: 0},
		Added:   []string{"Carol Ng", "Dan Koh"},
	}
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()

	got := report.SummaryLine(csvops.CompareSummary{OldRows: 2, NewRows: 12345, Added: 1, Removed: 0})
	assert.Equal(t, "Rows A: 2 | Rows B: 12,345 | New in Excel B: 1 | Removed from Excel A: 0", got)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	t.Run("summary only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, sample(), report.FormatText))
		snaps.MatchSnapshot(t, buf.String())
	})

	t.Run("with preview and output", func(t *testing.T) {
		t.Parallel()

		r := sample()
		r.Preview = true
		r.Output = "nric_name_comparison.xlsx"
		r.OutputBytes = 6200

		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, r, report.FormatText))
		assert.Contains(t, buf.String(), "No names removed from Excel A.")
		assert.Contains(t, buf.String(), "  2. Dan Koh")
		snaps.MatchSnapshot(t, buf.String())
	})
}

func TestWriteStructured(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, sample(), report.FormatJSON))

		var got report.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, sample(), got)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, sample(), "YAML"))

		var got report.Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, sample(), got)
		assert.Contains(t, buf.String(), "old_rows: 1200")
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		err := report.Write(&bytes.Buffer{}, sample(), "xml")
		require.ErrorIs(t, err, report.ErrUnknownFormat)
	})
}
