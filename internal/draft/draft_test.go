package draft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_CUE(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.cue", `
title:    "Hello"
excerpt:  "Short"
content:  "Body"
status:   "published"
category: "tech"
tags: ["go", 7]
`)

	d, err := Load(path)
	require.NoError(t, err)

	f, err := d.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Hello", f.Title)
	assert.Equal(t, "Short", f.Excerpt)
	assert.Equal(t, "Body", f.Content)
	assert.Equal(t, model.StatusPublished, f.Status)
	assert.Equal(t, "tech", f.Category)
	assert.Equal(t, []string{"go", "7"}, f.Tags)
	assert.Nil(t, f.Cover)
}

func TestLoad_YAMLDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.yaml", "title: Hello\nexcerpt: Short\ncontent: |\n  Line one\n  Line two\n")

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "draft", d.Status)
	assert.Empty(t, d.Tags)
	assert.Nil(t, d.Category)
	assert.Equal(t, "Line one\nLine two\n", d.Content)
}

func TestLoad_YAMLCategoryID(t *testing.T) {
	d, err := Parse("post.yml", []byte("title: T\nexcerpt: E\ncontent: C\ncategory: 3\n"))
	require.NoError(t, err)

	f, err := d.Fields()
	require.NoError(t, err)
	assert.Equal(t, "3", f.Category)
}

func TestLoad_ReadsCoverRelativeToDraft(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cover.png", "PNGDATA")
	path := writeFile(t, dir, "post.cue", `title: "T", excerpt: "E", content: "C", cover: "cover.png"`)

	d, err := Load(path)
	require.NoError(t, err)
	f, err := d.Fields()
	require.NoError(t, err)
	require.NotNil(t, f.Cover)
	assert.Equal(t, "cover.png", f.Cover.Name)
	assert.Equal(t, []byte("PNGDATA"), f.Cover.Data)
}

func TestLoad_MissingCover(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.cue", `title: "T", excerpt: "E", content: "C", cover: "nope.png"`)

	d, err := Load(path)
	require.NoError(t, err)
	_, err = d.Fields()
	assert.ErrorContains(t, err, "nope.png")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{"empty title", "a.cue", `title: "", excerpt: "E", content: "C"`},
		{"missing content", "a.cue", `title: "T", excerpt: "E"`},
		{"bad status", "a.yaml", "title: T\nexcerpt: E\ncontent: C\nstatus: deleted\n"},
		{"unknown field", "a.yaml", "title: T\nexcerpt: E\ncontent: C\nauthor: me\n"},
		{"syntax", "a.cue", `title: "T`},
		{"bad yaml", "a.yaml", "title: [\n"},
		{"empty yaml", "a.yaml", ""},
		{"unsupported", "a.json", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.src))
			require.Error(t, err)
			var le *LoadError
			assert.ErrorAs(t, err, &le)
		})
	}
}

func TestLoadError_Position(t *testing.T) {
	_, err := Parse("post.cue", []byte("title: \"T\"\nexcerpt: \"E\"\ncontent: \"C\"\nstatus: \"gone\"\n"))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, err.Error(), "post.cue")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cue"))
	assert.ErrorContains(t, err, "read draft")
}

func TestExport_RoundTrip(t *testing.T) {
	in := viewmodel.ArticleFields{
		Title:    "Hello",
		Excerpt:  "Short",
		Content:  "Body\nMore\n",
		Status:   model.StatusPublished,
		Category: "tech",
		Tags:     []string{"go"},
	}
	data, err := Export(in)
	require.NoError(t, err)

	d, err := Parse("out.yaml", data)
	require.NoError(t, err)
	out, err := d.Fields()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestExport_DefaultsStatus(t *testing.T) {
	data, err := Export(viewmodel.ArticleFields{Title: "T", Excerpt: "E", Content: "C"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "status: draft")
}
