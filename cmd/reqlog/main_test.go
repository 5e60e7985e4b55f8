package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/reqlog/internal/config"
	"github.com/sadopc/reqlog/internal/core/history"
)

// writeConfig creates a config file pointing at a fresh database.
func writeConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	cfg := "db_path: " + filepath.Join(dir, "history.db") + "\n" +
		"services:\n  u: users-service\n  o: orders-service\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	cfg := writeConfig(t)
	out, err := runCLI(t, "", "--config", cfg, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "reqlog dev") {
		t.Fatalf("version output = %q", out)
	}
}

func TestLogThenList(t *testing.T) {
	cfg := writeConfig(t)

	payload := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(payload, []byte(`{"name": "ada"}`), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	out, err := runCLI(t, `{"id": 1}`, "--config", cfg, "log",
		"--method", "post", "--service", "u", "--route", "create",
		"--url", "https://api.example.com/users",
		"--payload", payload, "--response", "-")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if out != "logged #1\n" {
		t.Fatalf("log output = %q", out)
	}

	if _, err := runCLI(t, "", "--config", cfg, "log", "--service", "o", "--url", "https://api.example.com/orders"); err != nil {
		t.Fatalf("log: %v", err)
	}

	out, err = runCLI(t, "", "--config", cfg, "list", "--since", "2000-01-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{
		"POST users-service https://api.example.com/users",
		`"name": "ada"`,
		`"id": 1`,
		"GET orders-service https://api.example.com/orders",
		"response: null",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "users-service") > strings.Index(out, "orders-service") {
		t.Errorf("list output not in insertion order:\n%s", out)
	}

	out, err = runCLI(t, "", "--config", cfg, "list", "--service", "o")
	if err != nil {
		t.Fatalf("list --service: %v", err)
	}
	if strings.Contains(out, "users-service") || !strings.Contains(out, "orders-service") {
		t.Fatalf("service filter not applied:\n%s", out)
	}
}

func TestListFutureDateIsEmpty(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := runCLI(t, "", "--config", cfg, "log", "--service", "u", "--url", "https://x"); err != nil {
		t.Fatalf("log: %v", err)
	}

	tomorrow := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	out, err := runCLI(t, "", "--config", cfg, "list", "--since", tomorrow)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != "No requests" {
		t.Fatalf("list output = %q, want placeholder", out)
	}
}

func TestListRejectsBadDate(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runCLI(t, "", "--config", cfg, "list", "--since", "yesterday")
	if err == nil || !strings.Contains(err.Error(), "invalid --since") {
		t.Fatalf("error = %v, want invalid --since", err)
	}
}

func TestLogRejectsUnknownService(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runCLI(t, "", "--config", cfg, "log", "--service", "userz", "--url", "https://x")
	if !errors.Is(err, config.ErrUnknownService) {
		t.Fatalf("error = %v, want ErrUnknownService", err)
	}
}

func TestLogRejectsInvalidJSON(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runCLI(t, "{not json", "--config", cfg, "log", "--service", "u", "--url", "https://x", "--payload", "-")
	if !errors.Is(err, history.ErrInvalidJSON) {
		t.Fatalf("error = %v, want ErrInvalidJSON", err)
	}
}

func TestLogRejectsDoubleStdin(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runCLI(t, "{}", "--config", cfg, "log", "--service", "u", "--url", "https://x", "--payload", "-", "--response", "-")
	if err == nil {
		t.Fatal("expected error for two stdin documents")
	}
}

func TestLogRequiresURL(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := runCLI(t, "", "--config", cfg, "log", "--service", "u"); err == nil {
		t.Fatal("expected missing --url error")
	}
}

func TestServices(t *testing.T) {
	cfg := writeConfig(t)
	out, err := runCLI(t, "", "--config", cfg, "services")
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "o ") || !strings.Contains(lines[1], "users-service") {
		t.Fatalf("services output = %q", out)
	}
}

func TestDBFlagOverridesConfig(t *testing.T) {
	cfg := writeConfig(t)
	db := filepath.Join(t.TempDir(), "other.db")

	if _, err := runCLI(t, "", "--config", cfg, "--db", db, "log", "--service", "u", "--url", "https://x"); err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("expected database at --db path: %v", err)
	}
}

func TestParseSince(t *testing.T) {
	got, err := parseSince("2025-03-01", "2006-01-02")
	if err != nil {
		t.Fatalf("parseSince: %v", err)
	}
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("parseSince = %v, want %v", got, want)
	}

	got, err = parseSince("", "2006-01-02")
	if err != nil || !got.IsZero() {
		t.Fatalf("parseSince(\"\") = %v, %v", got, err)
	}
}

func TestExport(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := runCLI(t, `{"a":1}`, "--config", cfg, "log", "--method", "PATCH", "--service", "u", "--url", "https://x/users/1", "--payload", "-"); err != nil {
		t.Fatalf("log: %v", err)
	}

	out, err := runCLI(t, "", "--config", cfg, "export", "--format", "curl")
	if err != nil {
		t.Fatalf("export curl: %v", err)
	}
	if want := `curl -X PATCH -H 'Content-Type: application/json' -d '{"a":1}' 'https://x/users/1'` + "\n"; out != want {
		t.Fatalf("curl export = %q, want %q", out, want)
	}

	harPath := filepath.Join(t.TempDir(), "out.har")
	if _, err := runCLI(t, "", "--config", cfg, "export", "-o", harPath); err != nil {
		t.Fatalf("export har: %v", err)
	}
	data, err := os.ReadFile(harPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"url": "https://x/users/1"`) {
		t.Fatalf("HAR missing entry:\n%s", data)
	}

	if _, err := runCLI(t, "", "--config", cfg, "export", "--format", "xml"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestImport(t *testing.T) {
	cfg := writeConfig(t)

	harPath := filepath.Join(t.TempDir(), "in.har")
	har := `{"log": {"entries": [{
		"startedDateTime": "2024-06-01T10:00:00Z",
		"request": {"method": "DELETE", "url": "https://api.example.com/users/7"},
		"response": {"content": {"mimeType": "application/json", "text": "{\"deleted\":true}"}}
	}]}}`
	if err := os.WriteFile(harPath, []byte(har), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	out, err := runCLI(t, "", "--config", cfg, "import", harPath, "--service", "u")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasPrefix(out, "imported 1 requests") {
		t.Fatalf("import output = %q", out)
	}

	out, err = runCLI(t, "", "--config", cfg, "list", "--since", "2024-06-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"[2024-06-01", "DELETE users-service https://api.example.com/users/7", `"deleted": true`} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "", "--config", cfg, "list", "--since", "2024-06-02")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != "No requests" {
		t.Fatalf("imported timestamp not kept, list = %q", out)
	}
}

func TestImportRejectsEmptyHAR(t *testing.T) {
	cfg := writeConfig(t)
	harPath := filepath.Join(t.TempDir(), "empty.har")
	if err := os.WriteFile(harPath, []byte(`{"log": {"entries": []}}`), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := runCLI(t, "", "--config", cfg, "import", harPath); err == nil {
		t.Fatal("expected error for HAR without entries")
	}
}
