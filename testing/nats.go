package testing

import (
	"strconv"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StartEmbeddedNATS starts an in-process JetStream server and connects to it.
//
// The server binds a random local port and keeps its store under t.TempDir().
// The connection and the server are shut down via t.Cleanup.
//
// Example:
//
//	func TestOverrides(t *testing.T) {
//	    _, nc := abtest.StartEmbeddedNATS(t)
//	    store, err := natskv.New(t.Context(), nc, natskv.Config{Bucket: "overrides"})
//	    require.NoError(t, err)
//	}
func StartEmbeddedNATS(t *testing.T) (*server.Server, *nats.Conn) {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	if err != nil {
		t.Fatalf("create embedded NATS server: %v", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("embedded NATS server not ready")
	}
	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	return ns, Connect(t, ns)
}

// Connect opens another client connection to an embedded server, standing in
// for a second machine. The connection is closed via t.Cleanup, before the
// server stops.
func Connect(t *testing.T, ns *server.Server) *nats.Conn {
	t.Helper()

	nc, err := nats.Connect(ns.ClientURL(),
		nats.Name(t.Name()),
		nats.Timeout(2*time.Second),
	)
	if err != nil {
		t.Fatalf("connect to embedded NATS server: %v", err)
	}
	t.Cleanup(nc.Close)

	return nc
}

// CreateOverrideBucket creates an in-memory KV bucket laid out like the
// natskv override store and seeds it with overrides.
//
// Values are stored as "true"/"false". Raw values, including malformed ones,
// can be written afterwards through the returned bucket.
func CreateOverrideBucket(t *testing.T, nc *nats.Conn, bucket string, overrides map[string]bool) jetstream.KeyValue {
	t.Helper()

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("open JetStream: %v", err)
	}

	kv, err := js.CreateKeyValue(t.Context(), jetstream.KeyValueConfig{
		Bucket:  bucket,
		History: 1,
		Storage: jetstream.MemoryStorage,
	})
	if err != nil {
		t.Fatalf("create KV bucket %s: %v", bucket, err)
	}

	for key, enabled := range overrides {
		if _, err := kv.Put(t.Context(), key, []byte(strconv.FormatBool(enabled))); err != nil {
			t.Fatalf("seed override %s: %v", key, err)
		}
	}

	return kv
}
