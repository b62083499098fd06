package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/duelgrid/duelgrid/internal/dependencies/clock"
	"github.com/duelgrid/duelgrid/internal/dependencies/random"
	"github.com/duelgrid/duelgrid/internal/services/arena"
	"github.com/duelgrid/duelgrid/internal/services/lifecycle"
	"github.com/duelgrid/duelgrid/internal/services/queue"
	"github.com/duelgrid/duelgrid/internal/services/rules"
	"github.com/duelgrid/duelgrid/internal/services/session"
	"github.com/duelgrid/duelgrid/internal/services/stats"
	"github.com/duelgrid/duelgrid/internal/storage"
	"github.com/duelgrid/duelgrid/internal/storage/memory"
	redisstorage "github.com/duelgrid/duelgrid/internal/storage/redis"
	"github.com/duelgrid/duelgrid/internal/transport"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Transport
	Hub *transport.Hub

	// Services
	Queue           *queue.Service
	Registry        *session.Registry
	Supervisor      *lifecycle.Supervisor
	Recorder        *stats.Recorder
	ArenaController *arena.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// SkillTolerance is the maximum skill gap for pairing (optional)
	// If zero, defaults to queue.DefaultSkillTolerance
	SkillTolerance int
	// LifecycleConfig holds timeout settings (optional)
	// If zero value, defaults to lifecycle.DefaultConfig()
	LifecycleConfig lifecycle.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	tolerance := cfg.SkillTolerance
	if tolerance == 0 {
		tolerance = queue.DefaultSkillTolerance
	}

	lifecycleCfg := cfg.LifecycleConfig
	if lifecycleCfg.QueueTimeout == 0 {
		lifecycleCfg = lifecycle.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), tolerance, lifecycleCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	tolerance int,
	lifecycleCfg lifecycle.Config,
	logger *slog.Logger,
) *App {
	hub := transport.NewHub(logger)
	matchQueue := queue.New(queue.SkillRegionPredicate(tolerance), clk, logger)
	registry := session.NewRegistry(rules.NewTicTacToe(), clk, rnd, logger)
	supervisor := lifecycle.NewSupervisor(matchQueue, registry, hub, clk, lifecycleCfg, logger)
	recorder := stats.NewRecorder(store, clk, logger)
	controller := arena.NewController(matchQueue, registry, supervisor, recorder, hub, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Hub:             hub,
		Queue:           matchQueue,
		Registry:        registry,
		Supervisor:      supervisor,
		Recorder:        recorder,
		ArenaController: controller,
	}
}
