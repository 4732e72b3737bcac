package app

import (
	"errors"
	"fmt"
	"log"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// healthService is the service name reported once the bot is connected.
const healthService = "dipbot"

// healthServer exposes the gRPC health protocol for the bot process.
type healthServer struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
}

func newHealthServer(addr string) (*healthServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	checks := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, checks)
	checks.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	checks.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &healthServer{listener: listener, grpcServer: grpcServer, health: checks}, nil
}

// Addr returns the listener address.
func (h *healthServer) Addr() string {
	if h == nil || h.listener == nil {
		return ""
	}
	return h.listener.Addr().String()
}

func (h *healthServer) setServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(healthService, status)
}

// serve blocks until the server stops.
func (h *healthServer) serve() error {
	log.Printf("health server listening at %v", h.listener.Addr())
	err := h.grpcServer.Serve(h.listener)
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

func (h *healthServer) stop() {
	h.health.Shutdown()
	h.grpcServer.GracefulStop()
}
