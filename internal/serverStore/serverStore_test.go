package serverstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerListAddAndFind(t *testing.T) {
	list := NewServerList()
	assert.True(t, list.IsEmpty())

	require.NoError(t, list.Add(models.NewServer("test", "user", "192.168.1.1")))
	assert.Len(t, list.List(), 1)

	server, ok := list.Find("test")
	require.True(t, ok)
	assert.Equal(t, "192.168.1.1", server.Ip)

	_, ok = list.Find("nonexistent")
	assert.False(t, ok)

	_, err := list.Get("nonexistent")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestServerListRejectsDuplicateNames(t *testing.T) {
	list := NewServerList()
	require.NoError(t, list.Add(models.NewServer("test", "user", "192.168.1.1")))

	err := list.Add(models.NewServer("test", "user", "192.168.1.2"))
	assert.Error(t, err)
	assert.Len(t, list.List(), 1)
}

func TestServerListRemove(t *testing.T) {
	list := NewServerList()
	require.NoError(t, list.Add(models.NewServer("a", "user", "10.0.0.1")))
	require.NoError(t, list.Add(models.NewServer("b", "user", "10.0.0.2")))

	removed, err := list.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.Name)
	assert.Equal(t, []models.Server{models.NewServer("b", "user", "10.0.0.2")}, list.List())

	_, err = list.Remove("a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestServerListReplace(t *testing.T) {
	list := NewServerList()
	require.NoError(t, list.Add(models.NewServer("a", "user", "10.0.0.1")))
	require.NoError(t, list.Add(models.NewServer("b", "user", "10.0.0.2")))

	require.NoError(t, list.Replace("a", models.NewServer("c", "admin", "10.0.0.3")))
	_, ok := list.Find("a")
	assert.False(t, ok)

	server, ok := list.Find("c")
	require.True(t, ok)
	assert.Equal(t, "admin", server.User)

	assert.Error(t, list.Replace("c", models.NewServer("b", "admin", "10.0.0.3")))
	assert.ErrorIs(t, list.Replace("missing", models.NewServer("x", "u", "10.0.0.9")), apperrors.ErrNotFound)
}

func TestServerManagerMissingAndBlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hop", "servers.json")
	manager := NewServerManager(path)

	list, err := manager.Load()
	require.NoError(t, err)
	assert.True(t, list.IsEmpty())
	assert.False(t, manager.Exists())

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	list, err = manager.Load()
	require.NoError(t, err)
	assert.True(t, list.IsEmpty())
}

func TestServerManagerSaveAndLoad(t *testing.T) {
	manager := NewServerManager(filepath.Join(t.TempDir(), "hop", "servers.json"))

	list := NewServerList()
	require.NoError(t, list.Add(models.NewServer("web", "ubuntu", "10.1.2.3")))
	require.NoError(t, manager.Save(list))

	loaded, err := manager.Load()
	require.NoError(t, err)
	assert.Equal(t, list.List(), loaded.List())

	data, err := os.ReadFile(manager.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"servers\"")
}

func TestServerManagerInvalidJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewServerManager(path).Load()
	assert.ErrorIs(t, err, apperrors.ErrSchema)
}

func TestServerManagerInit(t *testing.T) {
	manager := NewServerManager(filepath.Join(t.TempDir(), "hop", "servers.json"))

	created, err := manager.Init()
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, manager.Exists())

	created, err = manager.Init()
	require.NoError(t, err)
	assert.False(t, created)
}
