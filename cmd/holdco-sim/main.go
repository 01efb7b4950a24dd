package main

import (
	"github.com/google/uuid"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/affordability"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/dealgen"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/dealheat"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/integration"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/platform"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/turnaround"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/logger"

	catalogstore "github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	runID := uuid.NewString()
	log.Info().
		Str("run_id", runID).
		Int64("seed", cfg.Seed).
		Int("rounds", cfg.Rounds).
		Msg("Starting holdco simulation")

	// Load tunables (defaults plus optional YAML overrides)
	tunables, err := config.LoadTunables(cfg.TunablesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load tunables")
	}

	// Open the sector catalog store, seeding defaults on first run
	store, err := catalogstore.OpenStore(cfg.CatalogPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer store.Close()

	cat, err := store.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load sector catalog")
	}

	// Seeded simulation context: identical seeds replay identical runs
	ctx := sim.NewContext(cfg.Seed)

	// Wire the engine modules
	afford := affordability.NewModel(tunables, log)
	heat := dealheat.NewEngine(tunables, log)
	gen := dealgen.NewGenerator(tunables, cat, afford, heat, log)
	resolver := integration.NewResolver(tunables, cat, log)
	platforms := platform.NewManager(platform.DefaultRecipes(), log)
	turnarounds := turnaround.NewEngine(tunables, cat, log)

	world := newWorld(cfg, tunables, log)

	for round := 1; round <= cfg.Rounds; round++ {
		world.playRound(round, gen, afford, resolver, platforms, turnarounds, ctx)
	}

	world.logSummary(runID)
	log.Info().Msg("Simulation finished")
}
