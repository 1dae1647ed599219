// Package apptest wires an app.State and a command dispatcher around the
// in-memory Discord fake.
package apptest

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/config"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/discord/discordtest"
)

const (
	GuildID          = "guild-1"
	ChannelID        = "general"
	WelcomeChannelID = "welcome"
	SupportChannelID = "support"
	SupportRoleID    = "mods"
)

// Harness bundles the state, the dispatcher and the fake API.
type Harness struct {
	State  *app.State
	Client *discord.ExtendedClient
	API    *discordtest.API
}

// New returns a harness whose JSON files live in a temp dir.
func New(t *testing.T) *Harness {
	t.Helper()
	cfg := &config.Config{
		GuildID:          GuildID,
		DataDir:          t.TempDir(),
		WelcomeChannelID: WelcomeChannelID,
		SupportChannelID: SupportChannelID,
		SupportRoleID:    SupportRoleID,
	}
	st, err := app.New(cfg, nil)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}

	client := &discord.ExtendedClient{Commands: discord.NewCommandCollection(), GuildID: GuildID}
	client.CommandHandler = discord.NewCommandHandler(client)

	api := discordtest.New()
	api.Guilds[GuildID] = &discordgo.Guild{ID: GuildID, Name: "Tambayan", MemberCount: 42}
	api.Channels[ChannelID] = &discordgo.Channel{ID: ChannelID, GuildID: GuildID, Type: discordgo.ChannelTypeGuildText}
	api.Channels[WelcomeChannelID] = &discordgo.Channel{ID: WelcomeChannelID, GuildID: GuildID, Type: discordgo.ChannelTypeGuildText}
	api.Channels[SupportChannelID] = &discordgo.Channel{ID: SupportChannelID, GuildID: GuildID, Type: discordgo.ChannelTypeGuildText}

	return &Harness{State: st, Client: client, API: api}
}

// Run dispatches /name invoked by invoker with opts.
func (h *Harness) Run(name string, invoker *discordgo.Member, opts ...*discordgo.ApplicationCommandInteractionDataOption) {
	h.RunResolved(name, invoker, nil, opts...)
}

// RunResolved is Run with resolved users and members attached.
func (h *Harness) RunResolved(name string, invoker *discordgo.Member, resolved *discordgo.ApplicationCommandInteractionDataResolved, opts ...*discordgo.ApplicationCommandInteractionDataOption) {
	inv := discordtest.Invocation{
		GuildID:   GuildID,
		ChannelID: ChannelID,
		Invoker:   invoker,
		Options:   opts,
		Resolved:  resolved,
	}
	h.Client.Dispatch(h.API, nil, inv.Command(name))
}

// Answer returns what the invoker saw last: the deferred-reply edit when
// there is one, otherwise the interaction response content.
func (h *Harness) Answer() string {
	if len(h.API.Edits) > 0 {
		return h.API.LastEdit()
	}
	content, _ := h.API.Reply()
	return content
}
