package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"booktracker/internal/config"
	"booktracker/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoutes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf))

	out := buf.String()
	assert.Contains(t, out, "PATH")
	assert.Regexp(t, `/catalog\s+catalog\s+singleton`, out)
	assert.Regexp(t, `/book/\{id\}\s+book\s+transient`, out)
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["routes"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	store, err := openStore(ctx, cfg)
	require.NoError(t, err)
	defer store.close()
	_, ok := store.repo.(*session.MemoryRepo)
	assert.True(t, ok)
	assert.Nil(t, store.ping)

	cfg.SessionStore = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "sessions.db")
	store, err = openStore(ctx, cfg)
	require.NoError(t, err)
	defer store.close()
	require.NoError(t, store.ping(ctx))
	require.NoError(t, store.repo.Set(ctx, "client", session.KeyToken, "tok"))
	v, err := store.repo.Get(ctx, "client", session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
}
