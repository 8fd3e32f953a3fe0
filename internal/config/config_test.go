package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirview/dirview/internal/listing"
	"github.com/dirview/dirview/internal/normalize"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, listing.DefaultSortConfig(), cfg.SortConfig())
	assert.Equal(t, normalize.DefaultRoot, cfg.Normalizer().Root)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dirview.yaml", `
configVersion: 1
paths:
  style: windows
sort:
  criteria: size
  order: desc
  directoriesFirst: false
server:
  listen: "127.0.0.1:8091"
  rateLimit:
    enabled: true
    rps: 5
    burst: 10
logging:
  level: debug
  format: json
  eventLog: logs/events.jsonl
`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "logs"), 0o755))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, listing.SortConfig{Criteria: listing.CriteriaSize, Order: listing.Descending}, cfg.SortConfig())
	assert.Equal(t, normalize.WindowsRoot, cfg.Normalizer().Root)
	assert.Equal(t, int64(defaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, filepath.Join(dir, "logs", "events.jsonl"), cfg.ResolvePath(cfg.Logging.EventLog))
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dirview.toml", `
configVersion = 1

[sort]
criteria = "date"
order = "asc"
directoriesFirst = true

[metrics]
enabled = true
listen = "127.0.0.1:9191"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, listing.CriteriaDate, cfg.SortConfig().Criteria)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, StyleUnix, cfg.Paths.Style)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "bad.yaml", "sort: [")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.ConfigVersion = 2
	cfg.Paths.Style = "mac"
	cfg.Sort.Criteria = "color"
	cfg.Sort.Order = "up"
	cfg.Server.RateLimit = RateLimitConfig{Enabled: true}
	cfg.Logging.Format = "xml"
	cfg.Metrics = MetricsConfig{Enabled: true, Listen: cfg.Server.Listen}

	err := cfg.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "configVersion must be 1")
	assert.Contains(t, verr.Problems, "paths.style must be unix|windows")
	assert.Contains(t, verr.Problems, "sort.criteria must be none|name|size|date")
	assert.Contains(t, verr.Problems, "sort.order must be asc|desc")
	assert.Contains(t, verr.Problems, "server.rateLimit.rps must be > 0")
	assert.Contains(t, verr.Problems, "server.rateLimit.burst must be > 0")
	assert.Contains(t, verr.Problems, "logging.format must be text|json")
	assert.Contains(t, verr.Problems, "metrics.listen must differ from server.listen")
	assert.IsIncreasing(t, verr.Problems)
}
