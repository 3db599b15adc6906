package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/minaorangina/memory"
	"github.com/minaorangina/memory/config"
	"github.com/minaorangina/memory/players"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err.Error())
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer logger.Sync()

	player := players.NewCLIPlayer(os.Stdin, os.Stdout, cfg.Columns, logger)

	game, err := memory.NewGame(memory.GameOpts{
		Rows:          cfg.Rows,
		Columns:       cfg.Columns,
		AutoFlipDelay: cfg.AutoFlipDelay,
		Strict:        cfg.Strict,
		Rand:          cfg.Rand(),
		Logger:        logger,
		Observer:      player,
		Ask:           player.Ask,
	})
	if err != nil {
		logger.Fatal("could not initialise a new game", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := game.Start(ctx); err != nil {
		logger.Fatal("could not start game", zap.Error(err))
	}

	if err := player.Listen(game); err != nil {
		logger.Error("stopped reading input", zap.Error(err))
	}
	if err := game.Wait(); err != nil {
		logger.Error("game stopped", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
