package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/infrastructure/memory"
	"github.com/jhoicas/staffdir/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "arangodb"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arangodb")
}
