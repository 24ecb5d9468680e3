// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/services/logger"
	"github.com/trezcool/clno/storage/jsonfile"
)

// NewConfig returns a test configuration using the json engine on dataDir.
func NewConfig(dataDir string) *core.Config {
	conf := &core.Config{
		TestMode: true,
		Env:      "TEST",
		Build:    "test",
		AppName:  "Clno",
	}
	conf.Server.DisableReqLogs = true
	conf.Storage.Engine = core.EngineJSON
	conf.Storage.DataDir = dataDir
	conf.Storage.BoltPath = filepath.Join(dataDir, "clno.db")
	conf.Email.DefaultFromName = "Clno"
	conf.Email.DefaultFromAddress = "noreply@clno.test"
	return conf
}

// NewLogger returns a logger that discards everything and never reports to Rollbar.
func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
}

// PrepareDataDir returns a temp data dir holding every data file with its empty value.
func PrepareDataDir(t *testing.T) string {
	dir := t.TempDir()
	if _, err := jsonfile.Init(dir); err != nil {
		t.Fatalf("PrepareDataDir() failed: %v", err)
	}
	return dir
}

// WriteJSON replaces the named data file with v encoded as JSON.
func WriteJSON(t *testing.T, dir, name string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	WriteFile(t, dir, name, string(data))
}

// WriteFile replaces the named data file with content.
func WriteFile(t *testing.T, dir, name, content string) {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

// ReadFile returns the content of the named data file.
func ReadFile(t *testing.T, dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	return string(data)
}

// RemoveFile deletes the named data file.
func RemoveFile(t *testing.T, dir, name string) {
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		t.Fatalf("RemoveFile() failed: %v", err)
	}
}
