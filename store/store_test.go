package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/iges/internal/igestest"
	"github.com/tsawler/iges/model"
	"github.com/tsawler/iges/reader"
)

// setupTestStore creates an index in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func sampleDocument(t *testing.T) *model.Document {
	t.Helper()
	doc, err := reader.NewReader(strings.NewReader(igestest.Sample)).Parse()
	require.NoError(t, err)
	return doc
}

func TestOpen_CreatesSchema(t *testing.T) {
	s := setupTestStore(t)
	assert.True(t, strings.HasSuffix(s.Path(), filepath.Join("nested", "index.db")))

	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveDocument(ctx, "part.igs", sampleDocument(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	files, err := s.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "part.igs", files[0].Path)
}

func TestSaveDocument(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.SaveDocument(ctx, "/parts/bracket.igs", sampleDocument(t))
	require.NoError(t, err)

	f, err := s.File(ctx, "/parts/bracket.igs")
	require.NoError(t, err)
	assert.Equal(t, id, f.ID)
	assert.Equal(t, "Filename.iges", f.FileName)
	assert.Equal(t, "MM", f.Units)
	assert.Equal(t, 16, f.EntryCount)
	assert.False(t, f.IndexedAt.IsZero())

	lines, err := s.EntriesByType(ctx, id, 110)
	require.NoError(t, err)
	require.Len(t, lines, 7)
	assert.Equal(t, 11, lines[0].Sequence)
	assert.Equal(t, 6, lines[0].ParameterData)
	assert.Equal(t, "Default", lines[0].LineFont)
	assert.True(t, strings.HasPrefix(lines[0].ParamStr, "110,4.550729124"))

	counts, err := s.CountByType(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{402: 1, 144: 2, 108: 2, 142: 2, 102: 2, 110: 7}, counts)
}

func TestGlobalParams(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.SaveDocument(ctx, "part.igs", sampleDocument(t))
	require.NoError(t, err)

	params, err := s.GlobalParams(ctx, id)
	require.NoError(t, err)
	require.Len(t, params, 26)

	assert.Equal(t, GlobalRecord{Index: 1, Name: model.ParameterDelimiter, Value: ",", Set: true}, params[0])
	assert.Equal(t, GlobalRecord{Index: 12, Name: model.ProductIdentificationReceiver}, params[11])
	assert.Equal(t, "MM", params[14].Value)
	assert.Equal(t, "1e-07", params[18].Value)
}

func TestSaveDocument_ReplacesPreviousIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.SaveDocument(ctx, "part.igs", sampleDocument(t))
	require.NoError(t, err)

	doc := sampleDocument(t)
	for key, e := range doc.Entries {
		if e.EntityType() == 110 {
			delete(doc.Entries, key)
		}
	}
	second, err := s.SaveDocument(ctx, "part.igs", doc)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	files, err := s.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 9, files[0].EntryCount)

	stale, err := s.EntriesByType(ctx, first, 110)
	require.NoError(t, err)
	assert.Empty(t, stale, "rows of the replaced index should be gone")

	lines, err := s.EntriesByType(ctx, second, 110)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestFiles_OrderedByPath(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, p := range []string{"c.igs", "a.igs", "b.igs"} {
		_, err := s.SaveDocument(ctx, p, sampleDocument(t))
		require.NoError(t, err)
	}

	files, err := s.Files(ctx)
	require.NoError(t, err)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a.igs", "b.igs", "c.igs"}, paths)
}

func TestFile_NotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.File(context.Background(), "missing.igs")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFile(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.SaveDocument(ctx, "part.igs", sampleDocument(t))
	require.NoError(t, err)
	require.NoError(t, s.DeleteFile(ctx, "part.igs"))

	counts, err := s.CountByType(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, counts)

	assert.ErrorIs(t, s.DeleteFile(ctx, "part.igs"), ErrNotFound)
}

func TestSaveDocument_Nil(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.SaveDocument(context.Background(), "part.igs", nil)
	assert.Error(t, err)
}
