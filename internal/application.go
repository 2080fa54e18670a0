package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/onitama/internal/arena"
	"github.com/rocketscienceinc/onitama/internal/config"
	"github.com/rocketscienceinc/onitama/internal/repository"
	"github.com/rocketscienceinc/onitama/internal/repository/storage"
	"github.com/rocketscienceinc/onitama/internal/service"
	"github.com/rocketscienceinc/onitama/internal/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// Options come from the command line; ArenaGames > 0 selects arena mode.
type Options struct {
	ArenaGames int
	Arena      arena.Matchup
}

// RunApp - runs the application.
func RunApp(logger zerolog.Logger, conf *config.Config, opts Options) error {
	log := logger.With().Str("component", "app").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statsRepo, closeRepo, err := newStatsRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	stats := service.NewStatsService(logger, statsRepo)

	if opts.ArenaGames > 0 {
		return runArena(ctx, logger, conf, stats, opts)
	}

	view := console.NewView(os.Stdout)
	session := console.NewSession(logger, view, console.NewPrompter(os.Stdin, view), stats, conf.AIDelay)

	log.Debug().Msg("starting console session")

	return session.Run(ctx)
}

func runArena(ctx context.Context, logger zerolog.Logger, conf *config.Config, stats service.StatsService, opts Options) error {
	matchup := opts.Arena
	matchup.Games = opts.ArenaGames

	summary, err := arena.NewArena(logger, stats, conf.Arena.Workers).Run(ctx, matchup)
	if err != nil {
		return fmt.Errorf("arena failed: %w", err)
	}

	view := console.NewView(os.Stdout)
	xName, oName := matchup.PlayerNames()
	view.Info(fmt.Sprintf("%d parties : %s %d, %s %d, nuls %d",
		summary.Games(), xName, summary.XWins, oName, summary.OWins, summary.Draws))

	ranking, err := stats.Ranking(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ranking: %w", err)
	}

	view.Ranking(ranking)

	return nil
}

func newStatsRepository(ctx context.Context, log zerolog.Logger, conf *config.Config) (repository.StatsRepository, func(), error) {
	if conf.Stats.Backend != config.StatsBackendRedis {
		return repository.NewMemoryStatsRepository(), func() {}, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info().Str("addr", conf.Redis.GetRedisAddr()).Msg("stats shared through redis")

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error().Err(err).Msg("could not close redis storage")
		}
	}

	return repository.NewRedisStatsRepository(redisStorage.Connection), closeFn, nil
}
