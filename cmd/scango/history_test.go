package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/scango/internal/config"
	"github.com/vmunix/scango/internal/history"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{10 * 1024, "10.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{5*1<<20 + 1<<19, "5.5 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.bytes), "formatSize(%d)", tt.bytes)
	}
}

func TestEntryFlags(t *testing.T) {
	assert.Empty(t, entryFlags(&history.Entry{}))
	assert.Equal(t, "fake", entryFlags(&history.Entry{Simulated: true}))
	assert.Equal(t, "renamed", entryFlags(&history.Entry{Renamed: true}))
	assert.Equal(t, "fake,renamed", entryFlags(&history.Entry{Simulated: true, Renamed: true}))
}

func TestHistoryPath(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, history.DefaultPath(), historyPath(cfg))

	cfg.History.Path = "/var/lib/scango/history.db"
	assert.Equal(t, "/var/lib/scango/history.db", historyPath(cfg))
}
