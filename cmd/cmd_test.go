package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/x12-edi-parser/internal/catalog"
	"github.com/ginjaninja78/x12-edi-parser/internal/config"
	"github.com/ginjaninja78/x12-edi-parser/internal/logging"
	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

const acknowledgment = "ISA*00*          *00*          *ZZ*SELLER         *ZZ*BUYER          *240102*0900*U*00401*000000042*0*T*>~\n" +
	"GS*FA*SELLER*BUYER*20240102*0900*42*X*004010~\n" +
	"ST*997*0001~\n" +
	"AK1*PO*1~\n" +
	"AK9*A*1*1*1~\n" +
	"SE*4*0001~\n" +
	"GE*1*42~\n" +
	"IEA*1*000000042~\n"

func testEnvironment(t *testing.T) *environment {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "input_archive")
	cfg.OutputArchiveDir = filepath.Join(root, "output_archive")
	cfg.LogDir = filepath.Join(root, "logs")
	cfg.OutputNameFormat = "{source}"
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0755))

	return &environment{
		config:  cfg,
		logger:  logging.Discard(),
		catalog: catalog.Default(),
	}
}

func writeInput(t *testing.T, env *environment, name, content string) string {
	t.Helper()
	path := filepath.Join(env.config.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing default file", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(dir, "config.yaml"), false)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(dir, "absent.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("toml file", func(t *testing.T) {
		path := filepath.Join(dir, "x12.toml")
		require.NoError(t, os.WriteFile(path, []byte("max_concurrency = 2\n[output]\nformat = \"xlsx\"\n"), 0644))

		cfg, err := loadConfig(path, true)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.MaxConcurrency)
		assert.Equal(t, "xlsx", cfg.Output.Format)
	})
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,name\n850,Order\n901,Private Set\n"), 0644))

	merged, err := loadCatalog(config.CatalogSettings{Path: path, NameColumn: 1})
	require.NoError(t, err)
	name, ok := merged.Name("850")
	assert.True(t, ok)
	assert.Equal(t, "Order", name)
	_, ok = merged.Name("997")
	assert.True(t, ok, "built-in names are kept")

	replaced, err := loadCatalog(config.CatalogSettings{Path: path, NameColumn: 1, ReplaceDefaults: true})
	require.NoError(t, err)
	assert.Equal(t, 2, replaced.Len())

	builtIn, err := loadCatalog(config.CatalogSettings{})
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Len(), builtIn.Len())

	_, err = loadCatalog(config.CatalogSettings{Path: filepath.Join(t.TempDir(), "names.json")})
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	env := testEnvironment(t)
	writeInput(t, env, "ack.edi", acknowledgment)
	writeInput(t, env, "broken.edi", "GS*FA*SELLER*BUYER*20240102*0900*42*X*004010~")
	writeInput(t, env, "notes.md", "not an interchange")

	var out bytes.Buffer
	summary, err := runBatch(context.Background(), env, batchOptions{}, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 1, summary.TotalTransactions)
	assert.Equal(t, 2, summary.TotalSegments)
	assert.NotEmpty(t, summary.RunID)

	assert.Equal(t, []string{"ack.xml"}, listDir(t, env.config.OutputDir))
	assert.Contains(t, out.String(), "✓ ack.edi")
	assert.Contains(t, out.String(), "✗ broken.edi")

	logs := listDir(t, env.config.LogDir)
	require.Len(t, logs, 2)
	var sawErrorLog, sawSummary bool
	for _, name := range logs {
		sawErrorLog = sawErrorLog || strings.HasPrefix(name, "error_log_")
		sawSummary = sawSummary || strings.HasPrefix(name, "processing_summary_")
	}
	assert.True(t, sawErrorLog)
	assert.True(t, sawSummary)
}

func TestRunBatch_ExplicitFilesAndArchive(t *testing.T) {
	env := testEnvironment(t)
	env.config.Archive = true
	env.config.Output.Format = "none"
	first := writeInput(t, env, "first.x12", acknowledgment)
	writeInput(t, env, "second.x12", acknowledgment)

	var out bytes.Buffer
	summary, err := runBatch(context.Background(), env, batchOptions{Files: []string{first}}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalFiles)
	assert.Equal(t, []string{"second.x12"}, listDir(t, env.config.InputDir))
	assert.Equal(t, []string{"first.x12"}, listDir(t, env.config.InputArchiveDir))
	assert.Empty(t, listDir(t, env.config.OutputDir))
	assert.Contains(t, out.String(), "(no output)")
}

func TestRunBatch_DryRun(t *testing.T) {
	env := testEnvironment(t)
	writeInput(t, env, "ack.edi", acknowledgment)

	var out bytes.Buffer
	summary, err := runBatch(context.Background(), env, batchOptions{DryRun: true}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessfulFiles)

	_, err = os.Stat(env.config.OutputDir)
	assert.True(t, os.IsNotExist(err), "dry run creates no directories")
	_, err = os.Stat(env.config.LogDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunBatch_StopOnError(t *testing.T) {
	env := testEnvironment(t)
	env.config.ContinueOnError = false
	env.config.MaxConcurrency = 1
	writeInput(t, env, "a.edi", "IEA*1*000000001~")
	writeInput(t, env, "b.edi", acknowledgment)

	var out bytes.Buffer
	summary, err := runBatch(context.Background(), env, batchOptions{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.edi")
	assert.GreaterOrEqual(t, summary.FailedFiles, 1)
}

func TestRunBatch_NoFiles(t *testing.T) {
	env := testEnvironment(t)

	var out bytes.Buffer
	summary, err := runBatch(context.Background(), env, batchOptions{}, &out)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalFiles)
	assert.Contains(t, out.String(), "No X12 files found")
}

func TestValidateFile(t *testing.T) {
	env := testEnvironment(t)
	good := writeInput(t, env, "good.edi", acknowledgment)
	miscounted := writeInput(t, env, "miscounted.edi", strings.Replace(acknowledgment, "SE*4*0001", "SE*7*0001", 1))
	broken := writeInput(t, env, "broken.edi", "SE*4*0001~")

	var out bytes.Buffer
	assert.True(t, validateFile(env, good, false, &out))
	assert.Contains(t, out.String(), "✓ good.edi: 1 interchange(s), 1 group(s), 1 transaction(s)")

	out.Reset()
	assert.True(t, validateFile(env, miscounted, false, &out))
	assert.Contains(t, out.String(), "[WARNING] SE01")

	out.Reset()
	assert.False(t, validateFile(env, miscounted, true, &out))
	assert.Contains(t, out.String(), "[ERROR] SE01")

	out.Reset()
	assert.False(t, validateFile(env, broken, false, &out))
	assert.Contains(t, out.String(), "✗ broken.edi")
}

func TestPrintTree(t *testing.T) {
	doc, err := x12.Parse(acknowledgment, catalog.Default())
	require.NoError(t, err)

	var out bytes.Buffer
	printTree(&out, "ack.edi", doc, true)

	assert.Equal(t, `ack.edi: element '*', sub-element '>', segment '~'
Interchange 000000042  ZZ:SELLER -> ZZ:BUYER  version 00401 (T)
  Group 42  FA  004010  1 transaction(s)
    Transaction 0001  997 Functional Acknowledgment  2 segment(s)
      AK1*PO*1
      AK9*A*1*1*1
`, out.String())

	out.Reset()
	printTree(&out, "empty.edi", &x12.Document{Delimiters: x12.DefaultDelimiters()}, false)
	assert.Contains(t, out.String(), "(no interchanges)")
}
