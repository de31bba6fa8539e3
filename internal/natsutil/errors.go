// Package natsutil holds helpers shared by the NATS-backed components.
package natsutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/yhekr/abexp/types"
)

// IsConnectivityError checks if an error is caused by connectivity issues.
//
// This includes NATS timeouts, connection refused, disconnections, etc.
//
// Kept in internal/natsutil to avoid importing NATS dependencies in types/ package.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error indicates connectivity issue
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, types.ErrStoreUnavailable) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// WrapStoreError annotates a NATS failure with the store sentinels.
//
// Connectivity failures match both types.ErrOverrideStore and
// types.ErrStoreUnavailable; everything else matches types.ErrOverrideStore.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectivityError(err) {
		return fmt.Errorf("%w: %w: %s: %w", types.ErrOverrideStore, types.ErrStoreUnavailable, op, err)
	}

	return fmt.Errorf("%w: %s: %w", types.ErrOverrideStore, op, err)
}
