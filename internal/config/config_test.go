package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"storage": "redis",
		"redis_url": "redis://localhost:6379/0",
		"autosave_delay_ms": 250,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "redis", cfg.Storage)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 250, cfg.AutosaveDelayMS)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := `
storage: postgres
database_url: postgres://localhost/resume
data_dir: /var/lib/resume
watch: false
pdf_timeout_seconds: 30
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, "postgres://localhost/resume", cfg.DatabaseURL)
	assert.Equal(t, "/var/lib/resume", cfg.DataDir)
	assert.Equal(t, 30, cfg.PDFTimeoutSeconds)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("port: [not an int"), 0644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownStorage(t *testing.T) {
	cfg := &Config{Storage: "s3"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Storage")
}

func TestValidate_RedisRequiresURL(t *testing.T) {
	cfg := &Config{Storage: "redis"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis_url")
}

func TestValidate_PostgresRequiresURL(t *testing.T) {
	cfg := &Config{Storage: "postgres"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database_url")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{AutosaveDelayMS: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 70000}
	assert.Error(t, cfg.Validate())
}

func TestValidate_WatchNeedsFileBackend(t *testing.T) {
	cfg := &Config{Storage: "memory", Watch: true}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}

func TestValidate_PresetsFileMissing(t *testing.T) {
	cfg := &Config{PresetsFile: "/nonexistent/presets.json"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "presets file not found")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvStorage:     "postgres",
		EnvDatabaseURL: "postgres://db/resume",
		EnvChromePath:  "/usr/bin/chromium",
		EnvPort:        "3000",
	}
	cfg := &Config{Storage: "file", Port: 8080}

	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, "postgres://db/resume", cfg.DatabaseURL)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 3000, cfg.Port)
}

func TestApplyEnv_BadPort(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvPort {
			return "eighty"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Storage: "memory", Port: 9000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "memory", merged.Storage)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "127.0.0.1", merged.Host)
	assert.Equal(t, 1000, merged.AutosaveDelayMS)
	assert.Equal(t, 60, merged.PDFTimeoutSeconds)
	assert.NotEmpty(t, merged.DataDir)
}

func TestDurationsAndAddr(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, time.Second, cfg.AutosaveDelay())
	assert.Equal(t, time.Minute, cfg.PDFTimeout())
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestStorageOptions(t *testing.T) {
	cfg := Config{Storage: "redis", RedisURL: "redis://x:6379", DataDir: "/d"}
	opts := cfg.StorageOptions(nil)
	assert.Equal(t, "redis", opts.Backend)
	assert.Equal(t, "redis://x:6379", opts.RedisURL)
	assert.Equal(t, "/d", opts.Dir)
}
