package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTemplateSearchesConfiguredPaths(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	target := filepath.Join(other, "biped.sgt")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	got, err := findTemplate([]string{dir, other}, ".sgt", "biped")
	require.NoError(t, err)
	assert.Equal(t, target, got)

	// An explicit existing path wins over the search paths.
	local := filepath.Join(dir, "local.sgt")
	require.NoError(t, os.WriteFile(local, []byte("{}"), 0o644))
	got, err = findTemplate([]string{other}, ".sgt", local)
	require.NoError(t, err)
	assert.Equal(t, local, got)

	_, err = findTemplate([]string{dir, other}, ".sgt", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestTemplateCandidates(t *testing.T) {
	got := templateCandidates([]string{"/srv/templates"}, ".sgt", "biped")
	assert.Equal(t, []string{
		"biped",
		"biped.sgt",
		filepath.Join("/srv/templates", "biped"),
		filepath.Join("/srv/templates", "biped.sgt"),
	}, got)

	// A name that already carries an extension is not doubled up.
	got = templateCandidates([]string{"/srv/templates"}, ".sgt", "biped.json")
	assert.Equal(t, []string{
		"biped.json",
		filepath.Join("/srv/templates", "biped.json"),
	}, got)

	// Absolute arguments skip the search paths.
	got = templateCandidates([]string{"/srv/templates"}, ".sgt", "/tmp/biped")
	assert.Equal(t, []string{"/tmp/biped", "/tmp/biped.sgt"}, got)
}
