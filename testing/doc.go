// Package testing provides test utilities for the abexp module.
//
// It offers an embedded NATS server with JetStream for exercising the
// KeyValue override store and the NATS telemetry sink, plus loggers that
// either forward to testing.T or record entries for assertions. It follows
// Go's convention of keeping test helpers in a dedicated package (similar to
// net/http/httptest).
//
// Example usage:
//
//	import (
//	    "testing"
//	    abtest "github.com/yhekr/abexp/testing"
//	)
//
//	func TestMyStore(t *testing.T) {
//	    _, nc := abtest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
