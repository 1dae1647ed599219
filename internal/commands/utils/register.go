// Package utils provides /help, /post and /report.
package utils

import (
	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
)

// RegisterUtilsCommands registers the utility commands
func RegisterUtilsCommands(client *discord.ExtendedClient, st *app.State) {
	client.CommandHandler.RegisterCommand(createPostCommand())
	client.CommandHandler.RegisterCommand(createReportCommand(st))
	client.CommandHandler.RegisterCommand(createHelpCommand())
}
