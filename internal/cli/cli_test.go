package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/healthjournal/internal/config"
	"github.com/terraincognita07/healthjournal/internal/services"
)

var testToday = civil.Date{Year: 2024, Month: time.March, Day: 15}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, dataDir string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	options := Options{
		LoadConfig: func() (*config.Config, error) { return config.NewForTesting(dataDir), nil },
		Today:      func(*config.Config) civil.Date { return testToday },
		LogOutput:  io.Discard,
	}
	err := Run(args, &stdout, &stderr, options)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func mustRunCLI(t *testing.T, dataDir string, args ...string) string {
	t.Helper()

	result := runCLI(t, dataDir, args...)
	require.NoError(t, result.err, "stderr: %s", result.stderr)
	return result.stdout
}

func TestMedicationAddListAndActive(t *testing.T) {
	dataDir := t.TempDir()

	out := mustRunCLI(t, dataDir, "med", "add", "--name", "Levothyroxine", "--start", "2024-01-01")
	require.Contains(t, out, `Medication "Levothyroxine" saved.`)
	mustRunCLI(t, dataDir, "med", "add", "--name", "Amoxicillin", "--kind", "Temporary", "--start", "2024-01-01", "--end", "2024-01-10")

	list := mustRunCLI(t, dataDir, "med", "list")
	require.Contains(t, list, "Levothyroxine")
	require.Contains(t, list, "Amoxicillin")
	require.Contains(t, list, "ongoing")

	active := mustRunCLI(t, dataDir, "med", "active", "--date", "2024-01-10")
	require.Contains(t, active, "Levothyroxine")
	require.Contains(t, active, "Amoxicillin")

	active = mustRunCLI(t, dataDir, "med", "active", "--date", "2024-01-11")
	require.Contains(t, active, "Levothyroxine")
	require.NotContains(t, active, "Amoxicillin")

	none := mustRunCLI(t, dataDir, "med", "active", "--date", "2023-12-31")
	require.Contains(t, none, "No active medications on 2023-12-31.")
}

func TestMedicationAddDefaultsStartToToday(t *testing.T) {
	dataDir := t.TempDir()

	mustRunCLI(t, dataDir, "med", "add", "--name", "Vitamin D")

	content, err := os.ReadFile(filepath.Join(dataDir, "medications.csv"))
	require.NoError(t, err)
	require.Contains(t, string(content), "Vitamin D,Permanent,2024-03-15,")
}

func TestTemporaryMedicationWithoutEndIsRejected(t *testing.T) {
	dataDir := t.TempDir()

	result := runCLI(t, dataDir, "med", "add", "--name", "Amoxicillin", "--kind", "Temporary")
	require.ErrorIs(t, result.err, services.ErrMedicationEndRequired)
	require.Contains(t, result.stderr, "A temporary medication needs an end date.")

	content, err := os.ReadFile(filepath.Join(dataDir, "medications.csv"))
	require.NoError(t, err)
	require.Equal(t, "name,kind,start,end\n", string(content))
}

func TestDayAddComputesSleepHours(t *testing.T) {
	dataDir := t.TempDir()

	out := mustRunCLI(t, dataDir, "day", "add",
		"--date", "2024-03-01",
		"--fatigue", "4",
		"--joint-pain", "12",
		"--bedtime", "23:00",
		"--wake", "07:00",
		"--sleep-quality", "7",
		"--incident", "nightmares",
		"--lunch", "Rice", "--lunch", "Goat cheese",
		"--event", "Travel",
	)
	require.Contains(t, out, "Daily record for 2024-03-01 saved (8.00 h of sleep).")

	list := mustRunCLI(t, dataDir, "day", "list")
	require.Contains(t, list, "fatigue=4")
	require.Contains(t, list, "joint_pain=10")
	require.Contains(t, list, "8.00h q7")
	require.Contains(t, list, "Rice, Goat cheese")
	require.Contains(t, list, "1 records")
}

func TestDayAddDefaultsFatigueAndMoodToMidScale(t *testing.T) {
	dataDir := t.TempDir()

	mustRunCLI(t, dataDir, "day", "add", "--date", "2024-03-01", "--migraines", "3")

	list := mustRunCLI(t, dataDir, "day", "list")
	require.Contains(t, list, "fatigue=5")
	require.Contains(t, list, "mood=5")
	require.Contains(t, list, "migraines=3")
	require.NotContains(t, list, "joint_pain=")

	content, err := os.ReadFile(filepath.Join(dataDir, "daily_records.csv"))
	require.NoError(t, err)
	require.Contains(t, string(content), "2024-03-01,5,5,3,0,0,0,0,0,0,0,,,,,,,")
}

func TestDayAddRejectsUnknownTags(t *testing.T) {
	dataDir := t.TempDir()

	result := runCLI(t, dataDir, "day", "add", "--event", "Marathon")
	require.ErrorIs(t, result.err, services.ErrInvalidEvent)
	require.Contains(t, result.stderr, "Invalid input:")
}

func TestDayAddWarnsAboutInactiveMedications(t *testing.T) {
	dataDir := t.TempDir()

	mustRunCLI(t, dataDir, "med", "add", "--name", "Amoxicillin", "--kind", "Temporary", "--start", "2024-01-01", "--end", "2024-01-10")
	result := runCLI(t, dataDir, "day", "add", "--date", "2024-02-01", "--med", "Amoxicillin")

	require.NoError(t, result.err)
	require.Contains(t, result.stdout, "Daily record for 2024-02-01 saved.")
	require.Contains(t, result.stderr, "Warning: not active on 2024-02-01: Amoxicillin")
}

func seedCheeseRecords(t *testing.T, dataDir string) {
	t.Helper()

	mustRunCLI(t, dataDir, "day", "add", "--date", "2024-03-02", "--sleep-quality", "4", "--dinner", "Manchego cheese")
	mustRunCLI(t, dataDir, "day", "add", "--date", "2024-03-01", "--sleep-quality", "6", "--breakfast", "Toast with cheese")
	mustRunCLI(t, dataDir, "day", "add", "--date", "2024-03-03", "--sleep-quality", "8", "--lunch", "Salad")
	mustRunCLI(t, dataDir, "day", "add", "--date", "2024-03-04", "--sleep-quality", "8")
}

func TestAskCheeseSleepQuestion(t *testing.T) {
	dataDir := t.TempDir()
	seedCheeseRecords(t, dataDir)

	out := mustRunCLI(t, dataDir, "ask", "Does", "eating", "cheese", "affect", "my", "sleep?")
	require.Equal(t, "Average sleep quality with cheese is 5.00, and without cheese is 8.00.\n", out)

	out = mustRunCLI(t, dataDir, "--lang", "es", "ask", "¿Comer QUESO afecta al sueño?")
	require.Equal(t, "La calidad del sueño media con queso es 5.00, y sin queso es 8.00.\n", out)
}

func TestAskUnsupportedQuestion(t *testing.T) {
	dataDir := t.TempDir()

	out := mustRunCLI(t, dataDir, "ask", "How", "much", "water", "did", "I", "drink?")
	require.Contains(t, out, "For now I can only answer questions like")
}

func TestTrendPrintsSortedSeries(t *testing.T) {
	dataDir := t.TempDir()
	seedCheeseRecords(t, dataDir)

	out := mustRunCLI(t, dataDir, "trend", "sleep_quality")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "2024-03-01"))
	require.True(t, strings.HasPrefix(lines[1], "2024-03-02"))
	require.True(t, strings.HasPrefix(lines[2], "2024-03-03"))
	require.True(t, strings.HasPrefix(lines[3], "2024-03-04"))
	require.Equal(t, "4 points, mean 6.50, min 4.00, max 8.00 (2024-03-01 to 2024-03-04)", lines[4])
}

func TestTrendUnknownVariable(t *testing.T) {
	dataDir := t.TempDir()

	result := runCLI(t, dataDir, "trend", "happiness")
	require.ErrorIs(t, result.err, services.ErrUnknownTrendVariable)
	require.Contains(t, result.stderr, `Unknown variable "happiness".`)
}

func TestTrendVarsListsBothGroups(t *testing.T) {
	out := mustRunCLI(t, t.TempDir(), "trend", "vars")

	require.Contains(t, out, "Symptoms")
	require.Contains(t, out, "minor_allergy_symptoms")
	require.Contains(t, out, "Sleep (quality and duration)")
	require.Contains(t, out, "sleep_hours")
}

func TestExportWritesJSONForRange(t *testing.T) {
	dataDir := t.TempDir()
	seedCheeseRecords(t, dataDir)

	out := mustRunCLI(t, dataDir, "export", "--from", "2024-03-02", "--to", "2024-03-03")
	var entries []services.ExportJSONEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "2024-03-02", entries[0].Date)
	require.Equal(t, []string{"Manchego cheese"}, entries[0].Meals["Dinner"])
	require.Equal(t, "2024-03-03", entries[1].Date)

	summary := mustRunCLI(t, dataDir, "export", "--summary")
	require.Equal(t, "4 entries from 2024-03-01 to 2024-03-04\n", summary)
}

func TestExportEmptyJournal(t *testing.T) {
	dataDir := t.TempDir()

	require.Equal(t, "[]\n", mustRunCLI(t, dataDir, "export"))
	require.Equal(t, "Nothing to export.\n", mustRunCLI(t, dataDir, "export", "--summary"))
}

func TestSQLiteStorageRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	mustRunCLI(t, dataDir, "--storage", "sqlite", "med", "add", "--name", "Levothyroxine", "--start", "2024-01-01")
	mustRunCLI(t, dataDir, "--storage", "sqlite", "day", "add", "--date", "2024-03-01", "--bedtime", "07:00", "--wake", "23:00", "--dinner", "Brie")

	require.FileExists(t, filepath.Join(dataDir, "healthjournal.db"))
	require.NoFileExists(t, filepath.Join(dataDir, "daily_records.csv"))

	active := mustRunCLI(t, dataDir, "--storage", "sqlite", "med", "active", "--date", "2030-01-01")
	require.Contains(t, active, "Levothyroxine")

	out := mustRunCLI(t, dataDir, "--storage", "sqlite", "export")
	var entries []services.ExportJSONEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Sleep.Hours)
	require.InDelta(t, 16.0, *entries[0].Sleep.Hours, 0.001)
	require.Equal(t, []string{"Brie"}, entries[0].Meals["Dinner"])
}

func TestUnknownStorageDriverFailsBeforeTranslationsLoad(t *testing.T) {
	result := runCLI(t, t.TempDir(), "--storage", "postgres", "med", "list")

	require.Error(t, result.err)
	require.Contains(t, result.stderr, "unsupported STORAGE_DRIVER: postgres")
}

func TestExportRejectsReversedRange(t *testing.T) {
	result := runCLI(t, t.TempDir(), "export", "--from", "2024-03-05", "--to", "2024-03-01")

	require.ErrorIs(t, result.err, services.ErrExportRangeInvalid)
	require.Contains(t, result.stderr, "Invalid input: export invalid range")
}
