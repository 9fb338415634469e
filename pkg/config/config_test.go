package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SMARTSHEET_API_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DataSourceLocal, cfg.App.DataSource)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 60*time.Second, cfg.Cache.FreshnessWindow())
	assert.Equal(t, "s-maxage=60, stale-while-revalidate=300", cfg.Cache.CacheControl())
	assert.Equal(t, 15*time.Second, cfg.Smartsheet.Timeout)
	assert.Equal(t, 1, cfg.Smartsheet.MaxAttempts)
	assert.False(t, cfg.Smartsheet.HasToken())
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("export SERVER_PORT=9999\n# comment\nSMARTSHEET_BASE_URL=http://from-file\n"), 0o600))

	t.Setenv("DOTENV_PATH", envFile)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SMARTSHEET_BASE_URL", "")
	os.Unsetenv("SMARTSHEET_BASE_URL")
	t.Cleanup(func() { os.Unsetenv("SMARTSHEET_BASE_URL") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://from-file", cfg.Smartsheet.BaseURL)
}

func TestLoad_InvalidDataSource(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DATA_SOURCE", "excel")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TokenIsTrimmed(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SMARTSHEET_API_TOKEN", "  secret-token \n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Smartsheet.APIToken)
	assert.True(t, cfg.Smartsheet.HasToken())
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ALLOWED_ORIGINS", "https://board.example.com, ,https://ops.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://board.example.com", "https://ops.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadSheetConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartsheet_config.json")
	doc := `{
  "sheet_id": "1234567890",
  "column_map": {
    "Project Name": "name",
    "Status": "status",
    "Department": "department",
    "Sponsor": "owner",
    "Headline Impact": "impactText"
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadSheetConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "1234567890", cfg.SheetID)
	assert.Equal(t, entities.FieldName, cfg.ColumnMap["Project Name"])
	assert.Equal(t, entities.FieldOwner, cfg.ColumnMap["Sponsor"])
	assert.Equal(t, entities.FieldHeadlineImpact, cfg.ColumnMap["Headline Impact"])
}

func TestLoadSheetConfig_NumericSheetID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartsheet_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sheet_id": 4583173393803140, "column_map": {"Project Name": "name"}}`), 0o600))

	cfg, err := LoadSheetConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "4583173393803140", cfg.SheetID)
}

func TestLoadSheetConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	doc := "sheet_id: \"42\"\ncolumn_map:\n  Use Case: name\n  Stage: status\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadSheetConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "42", cfg.SheetID)
	assert.Equal(t, entities.FieldStatus, cfg.ColumnMap["Stage"])
}

func TestLoadSheetConfig_FileNotFound(t *testing.T) {
	_, err := LoadSheetConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
}

func TestLoadSheetConfig_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sheet_id": `), 0o600))

	_, err := LoadSheetConfig(path)
	assert.Error(t, err)
}

func TestParseSheetConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		sheetID string
		columns map[string]string
	}{
		{"missing sheet id", "", map[string]string{"Name": "name"}},
		{"empty mapping", "1", map[string]string{}},
		{"unknown field", "1", map[string]string{"Name": "name", "Budget": "budget"}},
		{"duplicate target", "1", map[string]string{"Name": "name", "Title": "name"}},
		{"no name column", "1", map[string]string{"Status": "status"}},
		{"blank title", "1", map[string]string{"Name": "name", " ": "owner"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSheetConfig(tc.sheetID, tc.columns)
			assert.Error(t, err)
		})
	}
}
