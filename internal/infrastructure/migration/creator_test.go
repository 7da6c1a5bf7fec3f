package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"trailing_", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add product tags", "tags on products")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_product_tags.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_product_tags.down.sql"), first.DownPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- Migration: add_product_tags")
	assert.Contains(t, string(content), "-- Description: tags on products")

	second, err := CreateMigration(dir, "Index Orders", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_add_product_tags", "000002_index_orders"}, names)
}

func TestCreateMigration_EmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000010_later.up.sql", "000010_later.down.sql",
		"000002_early.up.sql", "000002_early.down.sql",
		"README.md", "notes.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_early", "000010_later"}, names)

	missing, err := ListMigrations(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestEmbeddedSource_Creator(t *testing.T) {
	src, err := EmbeddedSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, identifier, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init_schema", identifier)
}
