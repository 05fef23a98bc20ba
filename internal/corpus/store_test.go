// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperprompt/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.CorpusConfig{Dir: filepath.Join(t.TempDir(), "corpus")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDoc() types.Document {
	return types.Document{
		ID:                "2301.07041",
		Path:              "papers/raw/2301.07041.pdf",
		Backend:           types.BackendNative,
		Pages:             12,
		ReferencesRemoved: true,
		FileModTime:       time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC),
		ExtractedAt:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Text:              "Body text with e\u0301 decomposed.",
	}
}

func TestSaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	doc := sampleDoc()

	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Get(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, doc, *got)
}

func TestSave_ReplacesByPath(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	doc := sampleDoc()
	require.NoError(t, s.Save(ctx, doc))

	doc.Text = "updated"
	doc.Pages = 3
	require.NoError(t, s.Save(ctx, doc))

	docs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "updated", docs[0].Text)
	assert.Equal(t, 3, docs[0].Pages)
}

func TestGet_NotFound(t *testing.T) {
	_, err := testStore(t).Get(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnchanged(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	doc := sampleDoc()

	same, err := s.Unchanged(ctx, doc)
	require.NoError(t, err)
	assert.False(t, same, "no record yet")

	require.NoError(t, s.Save(ctx, doc))

	tests := []struct {
		name   string
		mutate func(*types.Document)
		want   bool
	}{
		{"identical", func(*types.Document) {}, true},
		{"newer file", func(d *types.Document) { d.FileModTime = d.FileModTime.Add(time.Second) }, false},
		{"other backend", func(d *types.Document) { d.Backend = types.BackendPdftotext }, false},
		{"references kept", func(d *types.Document) { d.ReferencesRemoved = false }, false},
		{"accents stripped", func(d *types.Document) { d.AccentsStripped = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := doc
			probe.Text = ""
			tt.mutate(&probe)
			got, err := s.Unchanged(ctx, probe)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListAndDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	b := sampleDoc()
	b.Path, b.ID = "b.pdf", "b"
	a := sampleDoc()
	a.Path, a.ID = "a.pdf", "a"
	require.NoError(t, s.Save(ctx, b))
	require.NoError(t, s.Save(ctx, a))

	docs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.pdf", docs[0].Path)
	assert.Equal(t, "b.pdf", docs[1].Path)

	require.NoError(t, s.Delete(ctx, "a.pdf"))
	require.NoError(t, s.Delete(ctx, "a.pdf"))
	docs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var empty bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &empty))
	assert.Equal(t, "[]\n", empty.String())

	doc := sampleDoc()
	require.NoError(t, s.Save(ctx, doc))

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &buf))

	var got []types.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, doc.ID, got[0].ID)
	assert.Equal(t, doc.Text, got[0].Text)
	assert.Contains(t, buf.String(), "references_removed: true")
}

func TestNewStore_ReopensExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "corpus")
	ctx := context.Background()

	s, err := NewStore(types.CorpusConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleDoc()))
	require.NoError(t, s.Close())

	s, err = NewStore(types.CorpusConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
