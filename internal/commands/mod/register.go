// Package mod provides the moderation commands: /ban, /kick, /timeout and /warn.
// Each command is in its own file.
package mod

import (
	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
)

// RegisterModCommands registers all moderation commands
func RegisterModCommands(client *discord.ExtendedClient, st *app.State) {
	client.CommandHandler.RegisterCommand(createBanCommand(st))
	client.CommandHandler.RegisterCommand(createTimeoutCommand(st))
	client.CommandHandler.RegisterCommand(createKickCommand(st))
	client.CommandHandler.RegisterCommand(createWarnCommand(st))
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func reasonOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: description,
		Required:    true,
	}
}
