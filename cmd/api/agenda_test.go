package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-dashboard/internal/app"
	"github.com/jwalitptl/clinic-dashboard/internal/config"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("schedule:\n  timezone: UTC\n"), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	return a
}

func TestPrintAgenda_Day(t *testing.T) {
	a := newTestApp(t)

	var buf bytes.Buffer
	require.NoError(t, printAgenda(context.Background(), &buf, a.Schedule, model.ViewDay, datekey.MustParseDay("2023-06-15")))

	out := buf.String()
	assert.Contains(t, out, "Thursday 2023-06-15")
	assert.Contains(t, out, "09:30")
	assert.Contains(t, out, "Sarah Johnson")
	assert.Contains(t, out, "Jason Rodriguez")
	assert.NotContains(t, out, "Michael Chen")
}

func TestPrintAgenda_Week(t *testing.T) {
	a := newTestApp(t)

	var buf bytes.Buffer
	require.NoError(t, printAgenda(context.Background(), &buf, a.Schedule, model.ViewWeek, datekey.MustParseDay("2023-06-15")))

	out := buf.String()
	assert.Contains(t, out, "Week 2023-06-11 - 2023-06-17")
	assert.Contains(t, out, "Michael Chen")
	assert.Contains(t, out, "Emma Wilson")
	assert.NotContains(t, out, "Olivia Smith")
}
