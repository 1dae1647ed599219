// Package commands registers every slash command with the client.
// Commands are organized in subdirectories by category.
package commands

import (
	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/commands/afk"
	"github.com/TambayanDev/TambayanBot/internal/commands/filter"
	"github.com/TambayanDev/TambayanBot/internal/commands/mod"
	"github.com/TambayanDev/TambayanBot/internal/commands/utils"
	"github.com/TambayanDev/TambayanBot/internal/commands/welcome"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
)

// RegisterAll registers all commands with the Discord client. Order is
// the order /help lists them in.
func RegisterAll(client *discord.ExtendedClient, st *app.State) {
	welcome.RegisterWelcomeCommands(client, st)
	utils.RegisterUtilsCommands(client, st)
	mod.RegisterModCommands(client, st)
	afk.RegisterAFKCommands(client, st)
	filter.RegisterFilterCommands(client, st)
}
