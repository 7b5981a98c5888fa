package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

func TestDefault(t *testing.T) {
	config := Default()

	assert.Equal(t, "./input", config.InputDir)
	assert.Equal(t, "./output", config.OutputDir)
	assert.Equal(t, "./logs", config.LogDir)
	assert.Equal(t, []string{".edi", ".x12", ".txt"}, config.InputExtensions)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "{source}_{uuid}", config.OutputNameFormat)
	assert.Equal(t, 4, config.MaxConcurrency)
	assert.True(t, config.ContinueOnError)
	assert.True(t, config.Validation.ControlChecks)
	assert.Equal(t, "xml", config.Output.Format)
	assert.Equal(t, "  ", config.Output.Indent)
	assert.Equal(t, 1, config.Catalog.NameColumn)

	d, err := config.Parser.Delimiters()
	require.NoError(t, err)
	assert.Equal(t, x12.DefaultDelimiters(), d)
	assert.NoError(t, validateMainConfig(config))
}

func TestLoadMainConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_dir: /data/in
input_extensions: [EDI, ".x12"]
log_level: debug
log_format: json
max_concurrency: 8
continue_on_error: false
archive: true
parser:
  element_separator: "|"
  sub_element_separator: ":"
  segment_terminator: "\n"
  fixed_delimiters: true
catalog:
  path: partners.xlsx
  sheet: Sets
  code_column: 2
  name_column: 3
output:
  format: XLSX
validation:
  control_checks: true
  treat_warnings_as_errors: true
`), 0644))

	config, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", config.InputDir)
	assert.Equal(t, "./output", config.OutputDir)
	assert.Equal(t, []string{".edi", ".x12"}, config.InputExtensions)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, 8, config.MaxConcurrency)
	assert.False(t, config.ContinueOnError)
	assert.True(t, config.Archive)
	assert.Equal(t, "partners.xlsx", config.Catalog.Path)
	assert.Equal(t, 2, config.Catalog.CodeColumn)
	assert.Equal(t, 3, config.Catalog.NameColumn)
	assert.Equal(t, "xlsx", config.Output.Format)
	assert.True(t, config.Validation.TreatWarningsAsErrors)

	options, err := config.Parser.ParseOptions()
	require.NoError(t, err)
	assert.False(t, options.SniffDelimiters)
	assert.Equal(t, x12.Delimiters{Element: '|', SubElement: ':', Segment: '\n'}, options.Delimiters)
}

func TestLoadMainConfig_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir = "/data/out"
output_name_format = "{source}_{timestamp}"
archive_by_date = true

[parser]
segment_terminator = "'"

[output]
format = "none"
split_components = true
`), 0644))

	config, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/out", config.OutputDir)
	assert.Equal(t, "{source}_{timestamp}", config.OutputNameFormat)
	assert.True(t, config.ArchiveByDate)
	assert.True(t, config.ContinueOnError)
	assert.Equal(t, "none", config.Output.Format)
	assert.True(t, config.Output.SplitComponents)

	d, err := config.Parser.Delimiters()
	require.NoError(t, err)
	assert.Equal(t, x12.Delimiters{Element: '*', SubElement: '>', Segment: '\''}, d)
}

func TestLoadMainConfig_MissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{name: "unknown format", format: "ini", data: ""},
		{name: "bad yaml", format: "yaml", data: "input_dir: [unclosed"},
		{name: "bad toml", format: "toml", data: "input_dir = "},
		{name: "unknown log level", format: "yaml", data: "log_level: verbose"},
		{name: "unknown log format", format: "yaml", data: "log_format: xml"},
		{name: "unknown output format", format: "yaml", data: "output:\n  format: pdf"},
		{name: "negative concurrency", format: "yaml", data: "max_concurrency: -1"},
		{name: "multi-character delimiter", format: "yaml", data: "parser:\n  element_separator: '**'"},
		{name: "colliding delimiters", format: "yaml", data: "parser:\n  element_separator: '~'"},
		{name: "whitespace delimiter", format: "yaml", data: "parser:\n  element_separator: ' '"},
		{name: "negative retention", format: "yaml", data: "archive_retention_days: -3"},
		{name: "same catalog columns", format: "yaml", data: "catalog:\n  code_column: 1\n  name_column: 1"},
		{name: "negative catalog column", format: "yaml", data: "catalog:\n  code_column: -1\n  name_column: 1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.data), test.format)
			assert.Error(t, err)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "toml", formatFromPath("x12.TOML"))
	assert.Equal(t, "yaml", formatFromPath("config.yml"))
	assert.Equal(t, "yaml", formatFromPath("config.yaml"))
	assert.Equal(t, "yaml", formatFromPath("config"))
}
