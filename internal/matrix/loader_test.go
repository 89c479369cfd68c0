package matrix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darmiel/gatecheck/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "refund.yaml", `
id: refund-001
title: Customer refund
user_prompt: Please issue a refund to the customer
`)

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, core.Matrix{
		ID:         "refund-001",
		Title:      "Customer refund",
		UserPrompt: "Please issue a refund to the customer",
		Source:     path,
	}, got[0])
}

func TestLoad_DirectorySortedByFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yml", "id: second\nuser_prompt: two\n")
	writeFile(t, dir, "a.yaml", "id: first\nuser_prompt: one\n")
	writeFile(t, dir, "c.yaml", "id: third\n")
	writeFile(t, dir, "notes.txt", "not a matrix")
	writeFile(t, dir, ".hidden.yaml", "id: hidden\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700))
	writeFile(t, filepath.Join(dir, "nested.yaml"), "deep.yaml", "id: deep\n")

	got, err := Load(dir)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
	assert.Equal(t, "", got[2].UserPrompt)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    core.Matrix
	}{
		{
			name:    "Missing ID",
			content: "user_prompt: hello\n",
			want:    core.Matrix{ID: core.UnknownMatrixID, UserPrompt: "hello"},
		},
		{
			name:    "Empty Document",
			content: "",
			want:    core.Matrix{ID: core.UnknownMatrixID},
		},
		{
			name:    "Numeric ID",
			content: "id: 42\nuser_prompt: x\n",
			want:    core.Matrix{ID: "42", UserPrompt: "x"},
		},
		{
			name:    "Unknown Keys Ignored",
			content: "id: m1\nexpected: DENY\ntags: [a, b]\n",
			want:    core.Matrix{ID: "m1"},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, filepath.Base(t.Name())+".yaml", tt.content)
			got, err := Load(path)
			require.NoError(t, err, "case %d", i)
			require.Len(t, got, 1)

			tt.want.Source = path
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("not found", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := writeFile(t, dir, "matrix.json", `{"id": "x"}`)
		_, err := Load(path)

		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, path, fe.Path)
	})

	t.Run("list document", func(t *testing.T) {
		path := writeFile(t, dir, "list.yaml", "- id: a\n- id: b\n")
		_, err := Load(path)

		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe.Error(), "must be a mapping")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, dir, "broken.yaml", "id: [unterminated\n")
		_, err := Load(path)

		var fe *FormatError
		require.ErrorAs(t, err, &fe)
	})
}

func TestLoad_DirectoryFailsOnAnyBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "id: good\n")
	writeFile(t, dir, "b.yaml", "just a string\n")

	got, err := Load(dir)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestIsMatrixFile(t *testing.T) {
	assert.True(t, IsMatrixFile("a.yaml"))
	assert.True(t, IsMatrixFile("a.YML"))
	assert.False(t, IsMatrixFile("a.json"))
	assert.False(t, IsMatrixFile("yaml"))
}
