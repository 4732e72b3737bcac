// Package dipbot parses bot configuration and launches the bot process.
package dipbot

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	entrypoint "github.com/louisbranch/dipbot/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/dipbot/internal/platform/grpc"
	"github.com/louisbranch/dipbot/internal/platform/timeouts"
	server "github.com/louisbranch/dipbot/internal/services/dipbot/app"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
	"github.com/louisbranch/dipbot/internal/services/dipbot/storage"
	"github.com/louisbranch/dipbot/internal/services/dipbot/transport/discord"
)

// FactionIDs holds one id per faction.
type FactionIDs struct {
	Austria string `env:"AUSTRIA"`
	England string `env:"ENGLAND"`
	France  string `env:"FRANCE"`
	Germany string `env:"GERMANY"`
	Italy   string `env:"ITALY"`
	Russia  string `env:"RUSSIA"`
	Turkey  string `env:"TURKEY"`
}

// Map keys the ids by faction, skipping empty ones.
func (f FactionIDs) Map() map[domain.Faction]string {
	out := make(map[domain.Faction]string, 7)
	for faction, id := range map[domain.Faction]string{
		domain.Austria: f.Austria,
		domain.England: f.England,
		domain.France:  f.France,
		domain.Germany: f.Germany,
		domain.Italy:   f.Italy,
		domain.Russia:  f.Russia,
		domain.Turkey:  f.Turkey,
	} {
		if id != "" {
			out[faction] = id
		}
	}
	return out
}

// Config holds bot command configuration.
type Config struct {
	BotToken        string     `env:"DIPBOT_BOT_TOKEN"`
	ApplicationID   string     `env:"DIPBOT_APPLICATION_ID"`
	GuildID         string     `env:"DIPBOT_GUILD_ID"`
	OutputChannelID string     `env:"DIPBOT_OUTPUT_CHANNEL_ID"`
	Roles           FactionIDs `envPrefix:"DIPBOT_ROLE_"`
	StateBackend    string     `env:"DIPBOT_STATE_BACKEND" envDefault:"json"`
	StatePath       string     `env:"DIPBOT_STATE_PATH"`
	CentralRoomID   string     `env:"DIPBOT_CENTRAL_ROOM_ID"`
	JailRoomID      string     `env:"DIPBOT_JAIL_ROOM_ID"`
	Rooms           FactionIDs `envPrefix:"DIPBOT_ROOM_"`
	HealthAddr      string     `env:"DIPBOT_HEALTH_ADDR"`
	NATSURL         string     `env:"DIPBOT_NATS_URL"`

	// Probe checks the health endpoint of a running bot instead of starting one.
	Probe bool
}

// probeTimeout bounds a -probe run.
const probeTimeout = 5 * time.Second

// ParseConfig parses .env, environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, entrypoint.DefaultDotEnvFile); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.StateBackend, "state-backend", cfg.StateBackend, "Game state backend: json, bbolt or sqlite")
	fs.StringVar(&cfg.StatePath, "state-path", cfg.StatePath, "Game state file path (default data/state.json, or data/state.db for bbolt and sqlite)")
	fs.StringVar(&cfg.GuildID, "guild", cfg.GuildID, "Register commands in this server only")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "The gRPC health server address, empty to disable")
	fs.StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "NATS server for game events, empty to disable")
	fs.BoolVar(&cfg.Probe, "probe", false, "Exit successfully once the running bot reports healthy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig converts the command configuration to the runtime one.
func (c Config) ServerConfig() server.Config {
	return server.Config{
		Discord: discord.Config{
			Token:         c.BotToken,
			ApplicationID: c.ApplicationID,
			GuildID:       c.GuildID,
		},
		OutputChannelID: c.OutputChannelID,
		Roles:           server.Roles(c.Roles.Map()),
		Rooms: server.Rooms{
			Central:  c.CentralRoomID,
			Jail:     c.JailRoomID,
			Factions: c.Rooms.Map(),
		},
		StateBackend: storage.Backend(c.StateBackend),
		StatePath:    c.StatePath,
		HealthAddr:   c.HealthAddr,
		NATSURL:      c.NATSURL,
	}
}

// Run starts the bot.
func Run(ctx context.Context, cfg Config) error {
	options := entrypoint.RunOptions{ShutdownTimeout: timeouts.Shutdown}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceDipbot, options, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}

// Probe waits for the bot behind the health address to report serving.
func Probe(ctx context.Context, cfg Config) error {
	if cfg.HealthAddr == "" {
		return errors.New("probe needs DIPBOT_HEALTH_ADDR or -health-addr")
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return platformgrpc.Probe(ctx, cfg.HealthAddr, entrypoint.ServiceDipbot, log.Printf)
}
