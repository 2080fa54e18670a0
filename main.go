package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	app "github.com/rocketscienceinc/onitama/internal"
	"github.com/rocketscienceinc/onitama/internal/arena"
	"github.com/rocketscienceinc/onitama/internal/config"
	"github.com/rocketscienceinc/onitama/internal/strategy"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "", "path to config.yml (default: ./config.yml)")
	arenaGames := flag.Int("arena", 0, "play N ai-vs-ai games instead of the console game")
	arenaX := flag.String("x", "hard", "arena difficulty for X (easy, medium, hard)")
	arenaO := flag.String("o", "hard", "arena difficulty for O (easy, medium, hard)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "arena random seed") //nolint: gosec // it's ok
	flag.Parse()

	conf := initConfig(*configPath)
	logger := initLogger(conf)

	opts := app.Options{
		ArenaGames: *arenaGames,
		Arena: arena.Matchup{
			X:    mustParseDifficulty(*arenaX),
			O:    mustParseDifficulty(*arenaO),
			Seed: *seed,
		},
	}

	if err := app.RunApp(logger, conf, opts); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig(path string) *config.Config {
	if path != "" {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func mustParseDifficulty(value string) strategy.Difficulty {
	difficulty, err := strategy.ParseDifficulty(value)
	if err != nil {
		panic(err)
	}

	return difficulty
}
