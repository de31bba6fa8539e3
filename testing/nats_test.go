package testing

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestStartEmbeddedNATS(t *testing.T) {
	ns, nc := StartEmbeddedNATS(t)

	require.NotNil(t, ns)
	require.NotNil(t, nc)
	require.True(t, nc.IsConnected())
	require.True(t, ns.ReadyForConnections(1*time.Second))

	js, err := jetstream.New(nc)
	require.NoError(t, err)
	require.NotNil(t, js)
}

func TestConnect(t *testing.T) {
	ns, first := StartEmbeddedNATS(t)
	second := Connect(t, ns)

	require.True(t, second.IsConnected())
	require.NotEqual(t, first.ConnectedServerId(), "")
	require.Equal(t, first.ConnectedServerId(), second.ConnectedServerId())
}

func TestCreateOverrideBucket(t *testing.T) {
	_, nc := StartEmbeddedNATS(t)
	kv := CreateOverrideBucket(t, nc, "test-overrides", map[string]bool{
		"dark-mode":  true,
		"new-search": false,
	})

	entry, err := kv.Get(t.Context(), "dark-mode")
	require.NoError(t, err)
	require.Equal(t, "true", string(entry.Value()))

	entry, err = kv.Get(t.Context(), "new-search")
	require.NoError(t, err)
	require.Equal(t, "false", string(entry.Value()))

	status, err := kv.Status(t.Context())
	require.NoError(t, err)
	require.Equal(t, int64(1), status.History())
}

func TestRecordingLogger(t *testing.T) {
	log := NewRecordingLogger()

	log.Warn("experiment not found", "experiment", "dark-mode")
	log.Info("plan computed", "seed", 42, "dangling")

	require.Equal(t, 1, log.Count("WARN", "not found"))
	require.Equal(t, 2, log.Count("", ""))
	require.Zero(t, log.Count("ERROR", ""))

	entries := log.Entries()
	require.Equal(t, "dark-mode", entries[0].Fields["experiment"])
	require.Equal(t, 42, entries[1].Fields["seed"])
	require.Contains(t, entries[1].Fields, "dangling")

	log.Reset()
	require.Empty(t, log.Entries())
}
