package datafile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"data.json", false},
		{"DATA.YAML", false},
		{"data.yml", false},
		{"rows.csv", false},
		{"data.toml", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.name, tt.wantErr, err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedExtension) {
			t.Errorf("%s: expected ErrUnsupportedExtension, got %v", tt.name, err)
		}
	}
}

func TestJSONDecoder(t *testing.T) {
	data, err := JSONDecoder{}.Decode(strings.NewReader(`{"title": "Q3", "items": ["a", "b"]}`), "d.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["title"] != "Q3" {
		t.Errorf("expected title %q, got %v", "Q3", data["title"])
	}
	if items, ok := data["items"].([]any); !ok || len(items) != 2 {
		t.Errorf("expected 2 items, got %v", data["items"])
	}

	if _, err := (JSONDecoder{}).Decode(strings.NewReader(`[1, 2]`), "d.json"); err == nil {
		t.Error("expected error for non-object json")
	}
}

func TestYAMLDecoder(t *testing.T) {
	data, err := YAMLDecoder{}.Decode(strings.NewReader("title: Q3\nowner:\n  name: Ada\n"), "d.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["title"] != "Q3" {
		t.Errorf("expected title %q, got %v", "Q3", data["title"])
	}
	owner, ok := data["owner"].(map[string]any)
	if !ok || owner["name"] != "Ada" {
		t.Errorf("expected nested owner, got %v", data["owner"])
	}

	empty, err := YAMLDecoder{}.Decode(strings.NewReader("  \n"), "d.yaml")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty map, got %v (%v)", empty, err)
	}
}

func TestCSVDecoder(t *testing.T) {
	src := "item, qty\nwidget, 3\ngadget\n"
	data, err := CSVDecoder{}.Decode(strings.NewReader(src), "orders.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["name"] != "orders" {
		t.Errorf("expected name %q, got %v", "orders", data["name"])
	}
	headers := data["headers"].([]any)
	if len(headers) != 2 || headers[1] != "qty" {
		t.Errorf("unexpected headers %v", headers)
	}
	rows := data["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0].(map[string]any)
	if first["item"] != "widget" || first["qty"] != "3" {
		t.Errorf("unexpected first row %v", first)
	}
	second := rows[1].(map[string]any)
	if second["qty"] != "" {
		t.Errorf("expected short row padded, got %v", second)
	}
}

func TestCSVDecoder_Empty(t *testing.T) {
	data, err := CSVDecoder{}.Decode(strings.NewReader(""), "e.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data["rows"].([]any)) != 0 {
		t.Error("expected no rows")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vars.yml")
	if err := os.WriteFile(path, []byte("who: world\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["who"] != "world" {
		t.Errorf("expected %q, got %v", "world", data["who"])
	}

	if _, err := Load(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
