package discordtest

import (
	"github.com/bwmarrin/discordgo"
)

// Invocation builds a slash command interaction.
type Invocation struct {
	GuildID   string
	ChannelID string
	Invoker   *discordgo.Member
	Options   []*discordgo.ApplicationCommandInteractionDataOption
	Resolved  *discordgo.ApplicationCommandInteractionDataResolved
}

// Command returns an interaction for /name.
func (inv Invocation) Command(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "interaction-1",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   inv.GuildID,
		ChannelID: inv.ChannelID,
		Member:    inv.Invoker,
		Data: discordgo.ApplicationCommandInteractionData{
			ID:       "cmd-1",
			Name:     name,
			Options:  inv.Options,
			Resolved: inv.Resolved,
		},
	}}
}

// Admin returns a member holding the Administrator permission.
func Admin(id, username string) *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: id, Username: username},
		Permissions: discordgo.PermissionAdministrator,
	}
}

// Member returns a member with ordinary permissions.
func Member(id, username string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: id, Username: username},
		Roles:       roles,
		Permissions: discordgo.PermissionSendMessages,
	}
}

func String(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func Int(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func Bool(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

func User(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

func Channel(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionChannel, Value: id}
}

func Role(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionRole, Value: id}
}

// Resolve returns resolved data carrying the given users and their members.
func Resolve(members ...*discordgo.Member) *discordgo.ApplicationCommandInteractionDataResolved {
	r := &discordgo.ApplicationCommandInteractionDataResolved{
		Users:   map[string]*discordgo.User{},
		Members: map[string]*discordgo.Member{},
	}
	for _, m := range members {
		r.Users[m.User.ID] = m.User
		r.Members[m.User.ID] = m
	}
	return r
}
