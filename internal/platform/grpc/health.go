// Package grpc holds gRPC client helpers shared by the process entrypoints.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = time.Second
)

// Probe connects to the health endpoint at addr and waits until service
// reports SERVING or ctx ends.
func Probe(ctx context.Context, addr string, service string, logf func(string, ...any)) error {
	if addr == "" {
		return errors.New("health address is required")
	}
	conn, err := gogrpc.NewClient(addr,
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	return WaitForHealth(ctx, conn, service, logf)
}

// WaitForHealth blocks until the gRPC health check reports SERVING for
// service or the context ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := initialBackoff
	for {
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		switch {
		case err != nil:
			logf("waiting for %q health: %v", service, err)
		case response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("%q is SERVING", service)
			return nil
		default:
			logf("waiting for %q health: status %s", service, response.GetStatus().String())
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}
