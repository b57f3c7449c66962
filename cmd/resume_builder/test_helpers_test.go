package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
)

// resetFlags restores every package-level flag variable between runs
func resetFlags() {
	configPath, verbose, storageFlag, dataDirFlag = "", false, "", ""
	serveHost, servePort, serveNoPDF = "", 0, false
	renderOutputFile, renderFragment = "", false
	pdfOutputFile = ""
	exportOutputFile, exportStdout = "", false
	presetsApplyYes = false
	showJSON = false
}

// isolateEnv keeps the developer's environment out of CLI tests
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvStorage, config.EnvDataDir, config.EnvRedisURL,
		config.EnvDatabaseURL, config.EnvChromePath, config.EnvPort,
	} {
		t.Setenv(key, "")
	}
}

// runCLI executes the root command in-process and returns its stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// writeFile creates a file under dir and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const sampleResumeJSON = `{
  "personal": {"fullName": "Grace Hopper", "jobTitle": "Rear Admiral", "email": "grace@navy.mil"},
  "summary": "Invented the first compiler.",
  "skills": ["COBOL", "FLOW-MATIC"],
  "experience": [
    {"id": 1, "company": "US Navy", "position": "Computer Scientist", "startDate": "1943-12", "current": true, "description": "- Led the Mark I team"}
  ],
  "meta": {"template": "classic", "pageSize": "letter", "profession": ""}
}`
