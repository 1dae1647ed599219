// Package discord wraps discordgo with the bot's command and event plumbing.
package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Command represents a Discord slash command
type Command struct {
	Name        string
	Description string
	Category    string
	Options     []*discordgo.ApplicationCommandOption
	// UserPermissions are checked by the dispatcher before Run is called.
	UserPermissions int64
	Run             CommandRunFunc
}

// CommandRunFunc is the function type for command execution. Returned
// errors are turned into an ephemeral reply by the dispatcher.
type CommandRunFunc func(ctx *CommandContext) error

// NewCommand creates a new Command with required fields
func NewCommand(name, description, category string, run CommandRunFunc) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Category:    category,
		Run:         run,
	}
}

// WithOptions sets the command options
func (c *Command) WithOptions(opts ...*discordgo.ApplicationCommandOption) *Command {
	c.Options = opts
	return c
}

// WithUserPermissions sets required user permissions
func (c *Command) WithUserPermissions(perms int64) *Command {
	c.UserPermissions = perms
	return c
}

// AdminOnly is shorthand for WithUserPermissions(Administrator).
func (c *Command) AdminOnly() *Command {
	return c.WithUserPermissions(discordgo.PermissionAdministrator)
}

// ToApplicationCommand converts the command to a Discord application command
func (c *Command) ToApplicationCommand() *discordgo.ApplicationCommand {
	dmPermission := false
	appCmd := &discordgo.ApplicationCommand{
		Name:         c.Name,
		Description:  c.Description,
		Options:      c.Options,
		DMPermission: &dmPermission,
	}
	if c.UserPermissions != 0 {
		perms := c.UserPermissions
		appCmd.DefaultMemberPermissions = &perms
	}
	return appCmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Session     API
	State       *discordgo.State
	Interaction *discordgo.InteractionCreate
	Client      *ExtendedClient

	mu        sync.Mutex
	responded bool
	deferred  bool
}

func (ctx *CommandContext) respond(resp *discordgo.InteractionResponse) error {
	err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, resp)
	if err == nil {
		ctx.mu.Lock()
		ctx.responded = true
		ctx.deferred = resp.Type == discordgo.InteractionResponseDeferredChannelMessageWithSource
		ctx.mu.Unlock()
	}
	return err
}

func message(content string, embed *discordgo.MessageEmbed, ephemeral bool) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: content}
	if embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{embed}
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// Reply sends a public reply to the interaction
func (ctx *CommandContext) Reply(content string) error {
	return ctx.respond(message(content, nil, false))
}

// ReplyEmbed sends a public embed reply
func (ctx *CommandContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return ctx.respond(message("", embed, false))
}

// ReplyEphemeral sends a reply visible only to the invoker
func (ctx *CommandContext) ReplyEphemeral(content string) error {
	return ctx.respond(message(content, nil, true))
}

// ReplyEphemeralEmbed sends an embed visible only to the invoker
func (ctx *CommandContext) ReplyEphemeralEmbed(embed *discordgo.MessageEmbed) error {
	return ctx.respond(message("", embed, true))
}

// Defer acknowledges the interaction; the answer follows with EditReply.
func (ctx *CommandContext) Defer(ephemeral bool) error {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return ctx.respond(resp)
}

// EditReply edits the original interaction response
func (ctx *CommandContext) EditReply(content string) error {
	_, err := ctx.Session.InteractionResponseEdit(ctx.Interaction.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

// EditReplyEmbed edits the original interaction response with an embed
func (ctx *CommandContext) EditReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := ctx.Session.InteractionResponseEdit(ctx.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

// Notify answers ephemerally, editing the deferred reply when there is one
// and sending a followup when the interaction was already answered.
func (ctx *CommandContext) Notify(content string) error {
	ctx.mu.Lock()
	responded, deferred := ctx.responded, ctx.deferred
	ctx.mu.Unlock()

	switch {
	case deferred:
		return ctx.EditReply(content)
	case responded:
		_, err := ctx.Session.FollowupMessageCreate(ctx.Interaction.Interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return err
	default:
		return ctx.ReplyEphemeral(content)
	}
}

// Responded reports whether the interaction has been acknowledged.
func (ctx *CommandContext) Responded() bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.responded
}

// GetOption retrieves an option value by name
func (ctx *CommandContext) GetOption(name string) *discordgo.ApplicationCommandInteractionDataOption {
	return findOption(ctx.Interaction.ApplicationCommandData().Options, name)
}

// findOption recursively finds an option by name
func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
		if len(opt.Options) > 0 {
			if found := findOption(opt.Options, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// HasOption reports whether the invoker supplied the option.
func (ctx *CommandContext) HasOption(name string) bool {
	return ctx.GetOption(name) != nil
}

// GetStringOption retrieves a string option value
func (ctx *CommandContext) GetStringOption(name string) string {
	opt := ctx.GetOption(name)
	if opt == nil {
		return ""
	}
	return opt.StringValue()
}

// GetIntOption retrieves an integer option value
func (ctx *CommandContext) GetIntOption(name string) int64 {
	opt := ctx.GetOption(name)
	if opt == nil {
		return 0
	}
	return opt.IntValue()
}

// GetBoolOption retrieves a boolean option value
func (ctx *CommandContext) GetBoolOption(name string) bool {
	opt := ctx.GetOption(name)
	if opt == nil {
		return false
	}
	return opt.BoolValue()
}

// snowflakeOption returns the id carried by a user, channel or role option.
func (ctx *CommandContext) snowflakeOption(name string) string {
	opt := ctx.GetOption(name)
	if opt == nil {
		return ""
	}
	if id, ok := opt.Value.(string); ok {
		return id
	}
	return fmt.Sprint(opt.Value)
}

func (ctx *CommandContext) resolved() *discordgo.ApplicationCommandInteractionDataResolved {
	return ctx.Interaction.ApplicationCommandData().Resolved
}

// GetUserOption retrieves a user option value
func (ctx *CommandContext) GetUserOption(name string) *discordgo.User {
	id := ctx.snowflakeOption(name)
	if id == "" {
		return nil
	}
	if r := ctx.resolved(); r != nil {
		if u, ok := r.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id}
}

// GetMemberOption returns the guild member behind a user option, fetching
// it when the interaction did not carry it.
func (ctx *CommandContext) GetMemberOption(name string) (*discordgo.Member, error) {
	user := ctx.GetUserOption(name)
	if user == nil {
		return nil, fmt.Errorf("option %q not supplied", name)
	}
	if r := ctx.resolved(); r != nil {
		if m, ok := r.Members[user.ID]; ok {
			member := *m
			member.User = user
			member.GuildID = ctx.Interaction.GuildID
			return &member, nil
		}
	}
	return ResolveMember(ctx.Session, ctx.State, ctx.Interaction.GuildID, user.ID)
}

// GetChannelOption retrieves a channel option value
func (ctx *CommandContext) GetChannelOption(name string) *discordgo.Channel {
	id := ctx.snowflakeOption(name)
	if id == "" {
		return nil
	}
	if r := ctx.resolved(); r != nil {
		if ch, ok := r.Channels[id]; ok {
			return ch
		}
	}
	return &discordgo.Channel{ID: id}
}

// GetRoleOption retrieves a role option value
func (ctx *CommandContext) GetRoleOption(name string) *discordgo.Role {
	id := ctx.snowflakeOption(name)
	if id == "" {
		return nil
	}
	if r := ctx.resolved(); r != nil {
		if role, ok := r.Roles[id]; ok {
			return role
		}
	}
	return &discordgo.Role{ID: id}
}

// Guild returns the guild where the interaction occurred
func (ctx *CommandContext) Guild() (*discordgo.Guild, error) {
	return ResolveGuild(ctx.Session, ctx.State, ctx.Interaction.GuildID)
}

// User returns the user who triggered the interaction
func (ctx *CommandContext) User() *discordgo.User {
	if ctx.Interaction.Member != nil {
		return ctx.Interaction.Member.User
	}
	return ctx.Interaction.User
}

// Member returns the guild member who triggered the interaction
func (ctx *CommandContext) Member() *discordgo.Member {
	return ctx.Interaction.Member
}

// HasPermission reports whether the invoker holds perms. Administrators
// hold every permission.
func (ctx *CommandContext) HasPermission(perms int64) bool {
	m := ctx.Interaction.Member
	if m == nil {
		return false
	}
	if m.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return m.Permissions&perms == perms
}
