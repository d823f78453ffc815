package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heartpairs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should be valid: %v", err)
	}
	if cfg.WebDir != "web" {
		t.Errorf("Expected default web dir 'web', got %q", cfg.WebDir)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: "127.0.0.1:9000"
title: "For Aylin"
signature_text: "AYLIN"
proposal_message: "Marry me?"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected addr from file, got %q", cfg.Addr)
	}
	if cfg.Title != "For Aylin" {
		t.Errorf("Expected title from file, got %q", cfg.Title)
	}
	if cfg.Name != "HeartPairs" {
		t.Errorf("Fields missing from the file should keep their defaults, got name %q", cfg.Name)
	}

	env := cfg.Env()
	if env["SIGNATURE_TEXT"] != "AYLIN" || env["PROPOSAL_MESSAGE"] != "Marry me?" {
		t.Errorf("Unexpected env: %v", env)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "addr: [", "failed to parse"},
		{"empty signature", `signature_text: " "`, "signature_text"},
		{"empty web dir", `web_dir: ""`, "web_dir"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatalf("Expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}
