package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
	"github.com/louisbranch/dipbot/internal/services/dipbot/storage"
	"github.com/louisbranch/dipbot/internal/services/dipbot/transport/discord"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Discord:         discord.Config{Token: "token", ApplicationID: "app"},
		OutputChannelID: "out",
		Roles:           testRoles,
		StateBackend:    storage.BackendJSON,
		StatePath:       filepath.Join(t.TempDir(), "state.json"),
	}
}

func TestOpenSnapshotStoreBackends(t *testing.T) {
	for _, backend := range []storage.Backend{storage.BackendJSON, storage.BackendBolt, storage.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			store, err := OpenSnapshotStore(backend, filepath.Join(t.TempDir(), "state"))
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer store.Close()

			ctx := context.Background()
			if err := store.Save(ctx, []byte(`{"turn":[1902,"Fall"]}`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(got) != `{"turn":[1902,"Fall"]}` {
				t.Fatalf("load = %s", got)
			}
		})
	}
}

func TestOpenSnapshotStoreDefaultPathPerBackend(t *testing.T) {
	for backend, want := range map[storage.Backend]string{
		storage.BackendJSON:   filepath.Join("data", "state.json"),
		storage.BackendBolt:   filepath.Join("data", "state.db"),
		storage.BackendSQLite: filepath.Join("data", "state.db"),
	} {
		t.Run(string(backend), func(t *testing.T) {
			t.Chdir(t.TempDir())
			store, err := OpenSnapshotStore(backend, "")
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer store.Close()
			if err := store.Save(context.Background(), []byte(`{}`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			if _, err := os.Stat(want); err != nil {
				t.Fatalf("expected state at %s: %v", want, err)
			}
		})
	}
}

func TestOpenSnapshotStoreUnknownBackend(t *testing.T) {
	if _, err := OpenSnapshotStore("redis", filepath.Join(t.TempDir(), "state")); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputChannelID = ""
	cfg.Roles = Roles{domain.Austria: "r1"}

	_, err := New(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected config error")
	}
	for _, want := range []string{"output channel", "role id for turkey"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}

	cfg = testConfig(t)
	cfg.Discord.Token = ""
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestNewLoadsSavedGame(t *testing.T) {
	cfg := testConfig(t)
	store, err := OpenSnapshotStore(cfg.StateBackend, cfg.StatePath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(context.Background(), []byte(`{"turn":[1903,"Fall"],"orders":{"france":"F Bre H"}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = store.Close()

	srv, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.Close()

	st := srv.service.store.State()
	if st.Turn != (domain.Turn{Year: 1903, Season: domain.Fall}) {
		t.Fatalf("turn = %s", st.Turn)
	}
	if text, ok := st.Orders.Get("france"); !ok || text != "F Bre H" {
		t.Fatalf("orders = %v", st.Orders)
	}
	if srv.health != nil {
		t.Fatal("health server must be off without an address")
	}
}

func TestHealthServer(t *testing.T) {
	h, err := newHealthServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new health server: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		done <- h.serve()
	}()
	t.Cleanup(func() {
		h.stop()
		if err := <-done; err != nil {
			t.Fatalf("serve: %v", err)
		}
	})

	conn, err := grpc.NewClient(h.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})
	client := grpc_health_v1.NewHealthClient(conn)

	check := func() grpc_health_v1.HealthCheckResponse_ServingStatus {
		t.Helper()
		resp, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: healthService})
		if err != nil {
			t.Fatalf("health check: %v", err)
		}
		return resp.GetStatus()
	}
	if got := check(); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status before connect = %v", got)
	}
	h.setServing(true)
	if got := check(); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status after connect = %v", got)
	}
}
