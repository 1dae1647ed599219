package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

const (
	// AdminRequired is the reply to a non-administrator invoking a gated command.
	AdminRequired = "❌ You need Administrator permissions to use this command."
	// GuildOnly is the reply to a command used outside a server.
	GuildOnly = "❌ This command can only be used in a server."
	// GenericFailure is shown when a command fails without its own message.
	GenericFailure = "❌ Something went wrong while running this command."
)

func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			logger.Error(msg, "DiscordGo")
		case discordgo.LogWarning:
			logger.Warn(msg, "DiscordGo")
		default:
			logger.Debug(msg, "DiscordGo")
		}
	}
}

// ExtendedClient wraps discordgo.Session with the command registry.
type ExtendedClient struct {
	Session        *discordgo.Session
	Commands       *CommandCollection
	CommandHandler *CommandHandler
	EventHandler   *EventHandler
	StartTime      time.Time
	// GuildID scopes command registration; empty registers globally.
	GuildID string
	// AppID overrides the application id taken from the ready payload.
	AppID string

	mu      sync.RWMutex
	isReady bool
}

// CommandCollection holds registered commands
type CommandCollection struct {
	commands map[string]*Command
	order    []string
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
	}
}

// Set adds or updates a command
func (cc *CommandCollection) Set(name string, cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if _, exists := cc.commands[name]; !exists {
		cc.order = append(cc.order, name)
	}
	cc.commands[name] = cmd
}

// Get retrieves a command by name
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.commands[name]
	return cmd, ok
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// List returns the commands in registration order.
func (cc *CommandCollection) List() []*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	out := make([]*Command, 0, len(cc.order))
	for _, name := range cc.order {
		out = append(out, cc.commands[name])
	}
	return out
}

// NewClient creates a new ExtendedClient
func NewClient(token, guildID string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	c := &ExtendedClient{
		Session:  session,
		Commands: NewCommandCollection(),
		GuildID:  guildID,
	}
	c.CommandHandler = NewCommandHandler(c)
	c.EventHandler = NewEventHandler(c)
	return c, nil
}

// Start opens the gateway. Commands are pushed to Discord once the
// session is ready.
func (c *ExtendedClient) Start() error {
	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Connected as "+r.User.Username, "Client")

		if err := c.CommandHandler.RegisterCommands(); err != nil {
			logger.Error("Failed to register commands: "+err.Error(), "CommandHandler")
		}
	})
	c.Session.AddHandler(c.handleInteraction)

	c.StartTime = time.Now()
	return c.Session.Open()
}

func (c *ExtendedClient) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer errors.RecoverMiddleware()()
	c.Dispatch(s, s.State, i)
}

// Dispatch runs the command named by the interaction. Permission and
// validation failures are answered ephemerally; external failures are
// logged with their cause and answered with the command's own message.
func (c *ExtendedClient) Dispatch(api API, state *discordgo.State, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	cmd, ok := c.Commands.Get(data.Name)
	if !ok {
		logger.Warn("Command not found: "+data.Name, "Client")
		return
	}

	ctx := &CommandContext{
		Session:     api,
		State:       state,
		Interaction: i,
		Client:      c,
	}

	if i.Member == nil {
		ctx.ReplyEphemeral(GuildOnly)
		return
	}
	if cmd.UserPermissions != 0 && !ctx.HasPermission(cmd.UserPermissions) {
		ctx.ReplyEphemeral(AdminRequired)
		return
	}

	err := cmd.Run(ctx)
	if err == nil {
		return
	}

	ce, ok := errors.AsCommandError(err)
	if !ok {
		ce = &errors.CommandError{Kind: errors.KindExternal, Message: GenericFailure, Cause: err}
	}
	if ce.Kind == errors.KindExternal {
		logger.Error(fmt.Sprintf("/%s by %s: %v", cmd.Name, ctx.User().ID, ce), "Commands")
	}
	if notifyErr := ctx.Notify(ce.Message); notifyErr != nil {
		logger.Warn(fmt.Sprintf("/%s: could not report failure: %v", cmd.Name, notifyErr), "Commands")
	}
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// Uptime returns how long the gateway has been open.
func (c *ExtendedClient) Uptime() time.Duration {
	if c.StartTime.IsZero() {
		return 0
	}
	return time.Since(c.StartTime)
}
