package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

// Registrar manages application commands on Discord's side.
type Registrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// CommandHandler manages command loading and registration
type CommandHandler struct {
	client    *ExtendedClient
	registrar Registrar
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	ch := &CommandHandler{client: client}
	if client.Session != nil {
		ch.registrar = client.Session
	}
	return ch
}

// SetRegistrar replaces the Discord endpoint used for registration.
func (ch *CommandHandler) SetRegistrar(r Registrar) {
	ch.registrar = r
}

// RegisterCommand adds a command to the dispatch table
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)
	logger.Debug("Command registered: "+cmd.Name, "CommandHandler")
}

// Definitions returns the application commands for every registered command.
func (ch *CommandHandler) Definitions() []*discordgo.ApplicationCommand {
	cmds := ch.client.Commands.List()
	defs := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, cmd := range cmds {
		defs = append(defs, cmd.ToApplicationCommand())
	}
	return defs
}

func (ch *CommandHandler) appID() (string, error) {
	if ch.client.AppID != "" {
		return ch.client.AppID, nil
	}
	if s := ch.client.Session; s != nil && s.State != nil && s.State.User != nil {
		return s.State.User.ID, nil
	}
	return "", fmt.Errorf("application id unknown: set CLIENT_ID or connect first")
}

func scope(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return "guild " + guildID
}

// RegisterCommands replaces the application's command set with the
// registered definitions in one bulk overwrite.
func (ch *CommandHandler) RegisterCommands() error {
	appID, err := ch.appID()
	if err != nil {
		return err
	}
	defs := ch.Definitions()
	target := ch.client.GuildID

	logger.Info(fmt.Sprintf("🔄 Registering %d commands (%s)...", len(defs), scope(target)), "CommandHandler")
	registered, err := ch.registrar.ApplicationCommandBulkOverwrite(appID, target, defs)
	if err != nil {
		return err
	}
	logger.Success(fmt.Sprintf("✅ %d commands registered (%s).", len(registered), scope(target)), "CommandHandler")
	return nil
}

// ListCommands returns the commands Discord holds for guildID ("" for global).
func (ch *CommandHandler) ListCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	appID, err := ch.appID()
	if err != nil {
		return nil, err
	}
	return ch.registrar.ApplicationCommands(appID, guildID)
}

// UnregisterCommands deletes every command Discord holds for guildID.
// Individual failures are logged and the first one is returned.
func (ch *CommandHandler) UnregisterCommands(guildID string) error {
	appID, err := ch.appID()
	if err != nil {
		return err
	}
	cmds, err := ch.registrar.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}

	var first error
	for _, cmd := range cmds {
		if err := ch.registrar.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			logger.Error("Error deleting command "+cmd.Name+": "+err.Error(), "CommandHandler")
			if first == nil {
				first = err
			}
		}
	}
	logger.Success(fmt.Sprintf("Commands removed (%s).", scope(guildID)), "CommandHandler")
	return first
}
