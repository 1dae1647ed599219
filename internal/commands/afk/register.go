// Package afk provides /afk, /afk-remove and /config-afk.
package afk

import (
	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
)

// RegisterAFKCommands registers the AFK commands
func RegisterAFKCommands(client *discord.ExtendedClient, st *app.State) {
	client.CommandHandler.RegisterCommand(createAFKCommand(st))
	client.CommandHandler.RegisterCommand(createAFKRemoveCommand(st))
	client.CommandHandler.RegisterCommand(createConfigAFKCommand(st))
}
