package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "../../testdata/sample.igs"

// run executes igsdump with args and a throwaway home directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGlobalCommand(t *testing.T) {
	out, err := run(t, "global", samplePath)
	require.NoError(t, err)

	assert.Contains(t, out, "units_name")
	assert.Contains(t, out, "MM")
	assert.Contains(t, out, "Filename.iges")
	assert.Contains(t, out, "(unset)")
}

func TestEntriesCommand(t *testing.T) {
	t.Run("all entries", func(t *testing.T) {
		out, err := run(t, "entries", samplePath)
		require.NoError(t, err)
		assert.Contains(t, out, "16 entries")
		assert.Contains(t, out, "Trimmed Parametric Surface")
	})

	t.Run("by type", func(t *testing.T) {
		out, err := run(t, "entries", samplePath, "--type", "102")
		require.NoError(t, err)
		assert.Contains(t, out, "2 entries")
		assert.Contains(t, out, "Composite Curve")
		assert.NotContains(t, out, "16 entries")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "entries", "nonexistent.igs")
		assert.Error(t, err)
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("csv to stdout", func(t *testing.T) {
		out, err := run(t, "export", samplePath, "--format", "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Len(t, lines, 17)
		assert.True(t, strings.HasPrefix(lines[0], "key,entity_type"))
	})

	t.Run("json with parameters", func(t *testing.T) {
		out, err := run(t, "export", samplePath, "--params")
		require.NoError(t, err)

		var doc struct {
			Units   string `json:"units"`
			Entries []struct {
				Key        int      `json:"key"`
				Parameters []string `json:"parameters"`
			} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "MM", doc.Units)
		require.Len(t, doc.Entries, 16)
		assert.Equal(t, []string{"402", "2", "3", "19"}, doc.Entries[0].Parameters)
	})

	t.Run("format from output extension", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "report.html")
		_, err := run(t, "export", samplePath, "--output", output)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), `<table id="entries">`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "export", samplePath, "--format", "pdf")
		assert.Error(t, err)
	})
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "igsdump.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"yaml\"\n"), 0644))

	out, err := run(t, "--config", path, "export", samplePath)
	require.NoError(t, err)
	assert.Contains(t, out, "units: MM")
}

func TestInvalidEncodingFlag(t *testing.T) {
	_, err := run(t, "--encoding", "klingon", "global", samplePath)
	assert.Error(t, err)
}

func TestIndexAndFiles(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.igs"), data, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.iges"), data, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a part\n"), 0644))

	db := filepath.Join(t.TempDir(), "index.db")

	out, err := run(t, "index", dir, "--db", db, "--jobs", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "indexed "))
	assert.NotContains(t, out, "notes.txt")

	out, err = run(t, "files", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "a.igs")
	assert.Contains(t, out, "b.iges")
}

func TestIndexReportsFailures(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.igs")
	require.NoError(t, os.WriteFile(bad, []byte("short\n"), 0644))
	db := filepath.Join(t.TempDir(), "index.db")

	_, err := run(t, "index", samplePath, bad, "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to index 1 of 2 files")
}

func TestCollectPaths(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	for _, name := range []string{"a.igs", "sub/b.igs.gz", "c.step"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	explicit := filepath.Join(dir, "c.step")

	paths, err := collectPaths([]string{dir, explicit})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.igs"),
		filepath.Join(sub, "b.igs.gz"),
		explicit,
	}, paths)

	_, err = collectPaths([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
