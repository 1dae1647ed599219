// Package main is the entry point for TambayanBot.
// It wires configuration, logging, the moderation journal and the Discord
// client, then serves the keep-alive endpoint until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/commands"
	"github.com/TambayanDev/TambayanBot/internal/events"
	"github.com/TambayanDev/TambayanBot/pkg/config"
	"github.com/TambayanDev/TambayanBot/pkg/database"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/journal"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/mqtt"
	"github.com/TambayanDev/TambayanBot/pkg/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Dir:          cfg.LogsDir,
		ErrorWebhook: cfg.ErrorWebhook,
		LogsWebhook:  cfg.LogsWebhook,
	})
	defer log.Close()

	logger.System(fmt.Sprintf("Starting TambayanBot %s (built %s)...", config.Version, config.BuildTime), "Main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errors.Init(cfg.ErrorWebhook, stop)

	var (
		sinks   []journal.Sink
		db      *database.Database
		modlogs *database.ModLogs
		broker  *mqtt.Communicator
	)

	if cfg.HasMongo() {
		db = database.NewDatabase(cfg.MongoDBURL, cfg.DBName)
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := db.Connect(connectCtx); err != nil {
			logger.Error(fmt.Sprintf("Error connecting to database, retrying in background: %v", err), "Main")
		}
		cancel()
		modlogs = database.NewModLogs(db)
		sinks = append(sinks, modlogs)
	} else {
		logger.Warn("MONGODB_URL not set, moderation journal is not persisted", "Main")
	}

	if cfg.HasMQTT() {
		clientID := "tambayan-bot"
		if !cfg.IsProd() {
			clientID = "tambayan-bot-canary"
		}
		broker = mqtt.Connect(mqtt.Options{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			Username: cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			ClientID: clientID,
		})
		sinks = append(sinks, broker)
	}

	st, err := app.New(cfg, journal.New(sinks...))
	if err != nil {
		logger.Critical(fmt.Sprintf("Error opening bot state: %v", err), "Main")
		os.Exit(1)
	}

	if broker != nil {
		answerBrokerRequests(broker, st)
	}

	client, err := discord.NewClient(cfg.BotToken, cfg.GuildID)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}
	client.AppID = cfg.ClientID

	commands.RegisterAll(client, st)
	events.RegisterAll(client, st)

	if err := client.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}

	server := web.NewServer(web.DefaultRateLimit)
	deps := web.APIDeps{
		Bot:   client,
		AFK:   st.Tracker,
		Sinks: st.Journal.Sinks(),
	}
	if db != nil {
		deps.Database = db
		deps.ModLogs = modlogs
	}
	web.SetupAPIRoutes(server, deps)

	logger.Success("TambayanBot started!", "Main")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, cfg.Port)
	})
	g.Go(func() error {
		return events.ReportMemory(gctx, cfg.MemoryReportInterval)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("Stopped with error: %v", err), "Main")
	}

	logger.System("Shutting down TambayanBot...", "Main")
	shutdown(client, db, broker)
}

// answerBrokerRequests exposes read-only bot state to MQTT consumers.
func answerBrokerRequests(broker *mqtt.Communicator, st *app.State) {
	handlers := map[string]mqtt.RequestHandler{
		"afk.list": func(map[string]interface{}) (interface{}, error) {
			return st.Tracker.AFKUsers(), nil
		},
		"warnings.list": func(map[string]interface{}) (interface{}, error) {
			return st.Tracker.WarningCounts(), nil
		},
	}
	for name, h := range handlers {
		if err := broker.On(name, h); err != nil {
			logger.Warn(fmt.Sprintf("MQTT request %s not available: %v", name, err), "Main")
		}
	}
}

func shutdown(client *discord.ExtendedClient, db *database.Database, broker *mqtt.Communicator) {
	if err := client.Stop(); err != nil {
		logger.Warn(fmt.Sprintf("Error closing Discord session: %v", err), "Main")
	}
	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			logger.Warn(fmt.Sprintf("Error disconnecting database: %v", err), "Main")
		}
	}
	if broker != nil {
		broker.Destroy()
	}
}
