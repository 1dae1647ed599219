// Package main provides a utility to sync Discord slash commands without
// starting the bot.
//
// Usage:
//
//	go run ./cmd/sync-commands [options]
//
// Options:
//
//	-list           List the commands Discord holds
//	-clean          Remove all commands without registering new ones
//	-guild <id>     Target a guild instead of GUILD_ID ("global" for global commands)
//	-sync           Overwrite Discord's commands with the current set (default)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/commands"
	"github.com/TambayanDev/TambayanBot/pkg/config"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

func main() {
	listCmd := flag.Bool("list", false, "List registered commands")
	cleanCmd := flag.Bool("clean", false, "Remove all commands without registering new ones")
	guildFlag := flag.String("guild", "", "Target guild (defaults to GUILD_ID, \"global\" for global commands)")
	flag.Bool("sync", false, "Overwrite commands with the current set (default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{})
	defer log.Close()

	if cfg.ClientID == "" {
		logger.Critical("CLIENT_ID is required to manage commands without a gateway session", "SyncCommands")
		os.Exit(1)
	}

	guildID := cfg.GuildID
	switch *guildFlag {
	case "":
	case "global":
		guildID = ""
	default:
		guildID = *guildFlag
	}

	client, err := discord.NewClient(cfg.BotToken, guildID)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "SyncCommands")
		os.Exit(1)
	}
	client.AppID = cfg.ClientID

	st, err := app.New(cfg, nil)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error opening bot state: %v", err), "SyncCommands")
		os.Exit(1)
	}
	commands.RegisterAll(client, st)

	switch {
	case *listCmd:
		err = listCommands(client, guildID)
	case *cleanCmd:
		err = client.CommandHandler.UnregisterCommands(guildID)
	default:
		err = client.CommandHandler.RegisterCommands()
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Operation failed: %v", err), "SyncCommands")
		os.Exit(1)
	}

	logger.Success("Done", "SyncCommands")
}

func listCommands(client *discord.ExtendedClient, guildID string) error {
	cmds, err := client.CommandHandler.ListCommands(guildID)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		logger.Info("No commands registered", "SyncCommands")
		return nil
	}

	logger.Info(fmt.Sprintf("📋 %d commands:", len(cmds)), "SyncCommands")
	for i, cmd := range cmds {
		logger.Info(fmt.Sprintf("  %d. /%s - %s (ID: %s)", i+1, cmd.Name, cmd.Description, cmd.ID), "SyncCommands")
	}
	return nil
}
