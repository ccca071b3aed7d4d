package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/daybook/internal/todo"
)

var today = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func strp(s string) *string { return &s }

func sampleData() []todo.Task {
	return []todo.Task{
		{ID: 1, Text: "Buy milk", Completed: false, DueDate: nil},
		{ID: 2, Text: "File taxes", Completed: false, DueDate: strp("2025-06-10")},
		{ID: 3, Text: "Call mom", Completed: false, DueDate: strp("2025-06-15")},
		{ID: 4, Text: "Ship, release", Completed: true, DueDate: strp("2025-06-01")},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), today, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 4 data rows
	if len(records) != 5 {
		t.Fatalf("expected 5 rows (1 header + 4 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Text", "Completed", "Due", "Due (display)", "Status"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	wantStatus := []string{"pending", "overdue", "due_today", "done"}
	for i, want := range wantStatus {
		if got := records[i+1][5]; got != want {
			t.Fatalf("row %d status = %q, want %q", i+1, got, want)
		}
	}

	row := records[2]
	if row[3] != "2025-06-10" || row[4] != "2025/06/10" {
		t.Fatalf("due columns = %q, %q", row[3], row[4])
	}
	if records[1][3] != "" {
		t.Fatalf("task without due date should have empty due, got %q", records[1][3])
	}
	if records[4][1] != "Ship, release" {
		t.Fatalf("text with comma not round-tripped: %q", records[4][1])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, today, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(sampleData(), today, filepath.Join(t.TempDir(), "missing", "x.csv"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), today, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Count != 4 || len(doc.Tasks) != 4 {
		t.Fatalf("count = %d, tasks = %d", doc.Count, len(doc.Tasks))
	}
	if doc.Today != "2025-06-15" {
		t.Fatalf("today = %q", doc.Today)
	}
	if doc.Stats != (todo.Stats{Total: 4, Completed: 1, Pending: 3}) {
		t.Fatalf("stats = %+v", doc.Stats)
	}
	if doc.Tasks[1].Status != "overdue" {
		t.Fatalf("status = %q", doc.Tasks[1].Status)
	}
	if strings.Contains(string(data), `"due": ""`) {
		t.Fatal("empty due should be omitted")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, today, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"tasks": []`) {
		t.Fatalf("expected empty tasks array, got %s", data)
	}
}

// ============================================================
// YAML
// ============================================================

func TestToYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")

	if err := ToYAML(sampleData(), today, path); err != nil {
		t.Fatalf("ToYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(doc.Tasks))
	}
	if doc.Tasks[2].Status != "due_today" || doc.Tasks[2].Due != "2025-06-15" {
		t.Fatalf("unexpected task: %+v", doc.Tasks[2])
	}
}

// ============================================================
// Dispatch
// ============================================================

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	for _, format := range Formats {
		path := DefaultPath(dir, format, today)
		if err := Write(format, sampleData(), today, path); err != nil {
			t.Fatalf("Write(%s): %v", format, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("%s not written: %v", format, err)
		}
	}

	if err := Write("xml", nil, today, filepath.Join(dir, "x.xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("/home/me", "csv", today)
	want := filepath.Join("/home/me", "daybook-export-2025-06-15.csv")
	if got != want {
		t.Fatalf("DefaultPath = %q, want %q", got, want)
	}
}
