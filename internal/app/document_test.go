package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()

	doc, err := LoadDocument("")
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())

	doc, err = LoadDocument(filepath.Join(dir, "new.txt"))
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())

	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi @ann\r\nbye\r"), 0o644))
	doc, err = LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "hi @ann\nbye\n", doc.Text())
	assert.Equal(t, 3, doc.BlockCount())

	_, err = LoadDocument(dir)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "open", fileErr.Op)
}

func TestSaveDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	doc, err := LoadDocument("")
	require.NoError(t, err)
	doc, err = doc.Insert(0, "cc  now")
	require.NoError(t, err)
	doc, err = doc.InsertLeaf(3, "@joan")
	require.NoError(t, err)

	require.NoError(t, SaveDocument(path, doc))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cc @joan now", string(data))

	assert.ErrorIs(t, SaveDocument("", doc), ErrNoFilePath)

	err = SaveDocument(filepath.Join(t.TempDir(), "missing", "out.txt"), doc)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "save", fileErr.Op)
}
