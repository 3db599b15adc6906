package main

import (
	"log"

	"github.com/minaorangina/memory/config"
	"github.com/minaorangina/memory/server"
	"github.com/minaorangina/memory/store"
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

	s := server.NewServer(server.ServerOpts{
		Store:  store.NewInMemoryGameStore(),
		Config: cfg,
		Logger: logger,
	})

	logger.Info("listening", zap.String("addr", s.Addr))
	logger.Fatal("server stopped", zap.Error(s.ListenAndServe()))
}
