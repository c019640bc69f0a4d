package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/repositories/session"
)

func TestSessionDatabaseOpensWithoutExtraImports(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "session.db")

	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	store := session.NewSQLiteStore(db, "tty-1", time.Hour)
	require.NoError(t, store.Save(ctx, "token"))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token", got)
}

func TestOpenLogOutput(t *testing.T) {
	w, closeFn, err := openLogOutput("")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	closeFn()

	path := filepath.Join(t.TempDir(), "logs", "console.log")
	w, closeFn, err = openLogOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
