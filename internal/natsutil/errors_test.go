package natsutil

import (
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestIsConnectivityError(t *testing.T) {
	require.False(t, IsConnectivityError(nil))
	require.False(t, IsConnectivityError(errors.New("bad value")))
	require.True(t, IsConnectivityError(nats.ErrTimeout))
	require.True(t, IsConnectivityError(nats.ErrConnectionClosed))
	require.True(t, IsConnectivityError(errors.New("dial tcp: connection refused")))
}

func TestWrapStoreError(t *testing.T) {
	require.NoError(t, WrapStoreError("get", nil))

	err := WrapStoreError("get", nats.ErrNoServers)
	require.ErrorIs(t, err, types.ErrOverrideStore)
	require.ErrorIs(t, err, types.ErrStoreUnavailable)
	require.ErrorIs(t, err, nats.ErrNoServers)

	err = WrapStoreError("put", errors.New("bad value"))
	require.ErrorIs(t, err, types.ErrOverrideStore)
	require.NotErrorIs(t, err, types.ErrStoreUnavailable)
	require.Contains(t, err.Error(), "put")
}
