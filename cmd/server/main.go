package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"rival-server/internal/agent"
	"rival-server/internal/content"
	"rival-server/internal/engine"
	"rival-server/internal/infrastructure/storage"
	"rival-server/internal/server"
	"rival-server/internal/version"
	"rival-server/pkg/logger"
	"rival-server/pkg/stage"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Конфигурация: окружение + флаги (флаги перекрывают env)
	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config error:", err)
	}

	var sparringBot string
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP/WebSocket listen address")
	flag.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "BoltDB file with character profiles (empty to disable persistence)")
	flag.StringVar(&cfg.AbilitiesPath, "abilities", cfg.AbilitiesPath, "Ability database YAML (empty for the embedded one)")
	flag.Int64Var(&cfg.CombatSeed, "seed", cfg.CombatSeed, "Combat RNG seed (0 for random)")
	flag.StringVar(&sparringBot, "bot", "", "Character ID for a headless sparring bot (empty to disable)")
	flag.Parse()

	logger.Log.Info("Starting Rival Academies Server...")
	logger.Log.Info(version.String())

	if cfg.CombatSeed != 0 {
		logger.Log.Infof("🎲 Using explicit combat seed: %d", cfg.CombatSeed)
	}

	// 2. Контент: база способностей + горячая перезагрузка
	catalog, err := content.NewCatalog()
	if err != nil {
		logger.Log.Fatal("Embedded ability database is broken:", err)
	}
	if cfg.AbilitiesPath != "" {
		if err := catalog.LoadFile(cfg.AbilitiesPath); err != nil {
			logger.Log.Fatal("Failed to load ability database:", err)
		}
		watcher, err := content.WatchCatalog(catalog, cfg.AbilitiesPath)
		if err != nil {
			logger.Log.WithError(err).Warn("Ability hot-reload unavailable")
		} else {
			defer watcher.Close()
		}
	}

	library, err := stage.LoadLibrary()
	if err != nil {
		logger.Log.Fatal("Embedded stage library is broken:", err)
	}

	// 3. Персистентность. Без хранилища сервер жив, но профили не переживут рестарт.
	var store *storage.Store
	if cfg.StoragePath != "" {
		store, err = storage.Open(cfg.StoragePath)
		if err != nil {
			logger.Log.WithError(err).Warn("Profile storage unavailable, running without persistence")
			store = nil
		} else {
			defer store.Close()
		}
	}

	// 4. Движок
	gameService, err := engine.NewService(cfg, catalog, library, store)
	if err != nil {
		logger.Log.Fatal("Engine start error:", err)
	}
	gameService.Start()

	if sparringBot != "" {
		bot, err := agent.NewBot(gameService, sparringBot)
		if err != nil {
			logger.Log.WithError(err).Warn("Sparring bot failed to attach")
		} else {
			go bot.Run()
		}
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 5. HTTP/WebSocket сервер
	srv := server.New(gameService, cfg.Addr)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Stop сохраняет профили всех подключенных персонажей
	gameService.Stop()

	logger.Log.Info("Done.")
}
