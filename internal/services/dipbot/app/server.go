package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/dipbot/internal/platform/events"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
	"github.com/louisbranch/dipbot/internal/services/dipbot/gamestate"
	"github.com/louisbranch/dipbot/internal/services/dipbot/storage"
	boltstore "github.com/louisbranch/dipbot/internal/services/dipbot/storage/bbolt"
	"github.com/louisbranch/dipbot/internal/services/dipbot/storage/jsonfile"
	sqlitestore "github.com/louisbranch/dipbot/internal/services/dipbot/storage/sqlite"
	"github.com/louisbranch/dipbot/internal/services/dipbot/transport/discord"
)

// Config is the runtime configuration of the bot process.
type Config struct {
	Discord         discord.Config
	OutputChannelID string
	Roles           Roles
	Rooms           Rooms
	StateBackend    storage.Backend
	StatePath       string
	// HealthAddr enables the gRPC health endpoint when set.
	HealthAddr string
	// NATSURL enables game event publishing when set.
	NATSURL string
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.OutputChannelID) == "" {
		errs = append(errs, errors.New("output channel id is required"))
	}
	for _, f := range domain.Factions() {
		if strings.TrimSpace(c.Roles[f]) == "" {
			errs = append(errs, fmt.Errorf("role id for %s is required", f))
		}
	}
	return errors.Join(errs...)
}

// OpenSnapshotStore opens the persistence backend named by backend.
func OpenSnapshotStore(backend storage.Backend, path string) (storage.SnapshotStore, error) {
	if strings.TrimSpace(path) == "" {
		path = backend.DefaultPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}
	switch backend {
	case storage.BackendJSON, "":
		return jsonfile.Open(path)
	case storage.BackendBolt:
		return boltstore.Open(path)
	case storage.BackendSQLite:
		return sqlitestore.Open(path)
	default:
		return nil, fmt.Errorf("unknown state backend %q", backend)
	}
}

// Server hosts the bot session, the game state and the optional health and
// event endpoints.
type Server struct {
	snapshots storage.SnapshotStore
	events    events.Publisher
	service   *Service
	bot       *discord.Bot
	health    *healthServer
}

// New loads the game state and prepares every collaborator. Nothing talks to
// Discord until Serve.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return nil, err
	}

	s := &Server{}
	s.snapshots, err = OpenSnapshotStore(cfg.StateBackend, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	s.events = events.Noop{}
	if url := strings.TrimSpace(cfg.NATSURL); url != "" {
		publisher, err := events.Connect(url, "dipbot")
		if err != nil {
			s.Close()
			return nil, err
		}
		s.events = publisher
	}

	store := gamestate.New(s.snapshots)
	store.Load(ctx)

	voice := discord.NewVoice(session.State, session, cfg.Discord.GuildID)
	s.service, err = NewService(Deps{
		Store:   store,
		Channel: discord.NewChannel(session, cfg.OutputChannelID),
		Roster:  voice,
		Mover:   voice,
		Events:  s.events,
		Namer:   discord.Namer{Roles: cfg.Roles},
		Roles:   cfg.Roles,
		Rooms:   cfg.Rooms,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.bot, err = discord.NewBot(session, cfg.Discord, s.service.Registry(), s.service)
	if err != nil {
		s.Close()
		return nil, err
	}

	if addr := strings.TrimSpace(cfg.HealthAddr); addr != "" {
		s.health, err = newHealthServer(addr)
		if err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Run creates and serves the bot until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve connects the bot and blocks until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	defer s.Close()

	serveErr := make(chan error, 1)
	if s.health != nil {
		go func() {
			serveErr <- s.health.serve()
		}()
	}

	if err := s.bot.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.bot.Close(); err != nil {
			log.Printf("close discord session: %v", err)
		}
	}()
	if s.health != nil {
		s.health.setServing(true)
	}
	log.Printf("dipbot running")

	select {
	case <-ctx.Done():
		return nil
	case err := <-serveErr:
		return err
	}
}

// Close releases the server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.stop()
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			log.Printf("close event publisher: %v", err)
		}
	}
	if s.snapshots != nil {
		if err := s.snapshots.Close(); err != nil {
			log.Printf("close state store: %v", err)
		}
	}
}
