package afk

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

const configUpdated = "✅ AFK configuration updated successfully!"

// createConfigAFKCommand creates the /config-afk command. Every supplied
// option toggles that id in its set.
func createConfigAFKCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"config-afk",
		"Configure the AFK system",
		"afk",
		configAFKHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "allowed_roles",
			Description: "Toggle a role allowed to use /afk",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "ignored_channels",
			Description:  "Toggle a channel where AFK is not cleared",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "ignored_roles",
			Description: "Toggle a role whose messages do not clear AFK",
			Required:    false,
		},
	).AdminOnly()
}

func configAFKHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		changed := false
		if role := ctx.GetRoleOption("allowed_roles"); role != nil {
			if _, err := st.AFKConfig.ToggleAllowedRole(role.ID); err != nil {
				return errors.External("❌ An error occurred while updating the AFK configuration.", err)
			}
			changed = true
		}
		if ch := ctx.GetChannelOption("ignored_channels"); ch != nil {
			if _, err := st.AFKConfig.ToggleIgnoredChannel(ch.ID); err != nil {
				return errors.External("❌ An error occurred while updating the AFK configuration.", err)
			}
			changed = true
		}
		if role := ctx.GetRoleOption("ignored_roles"); role != nil {
			if _, err := st.AFKConfig.ToggleIgnoredRole(role.ID); err != nil {
				return errors.External("❌ An error occurred while updating the AFK configuration.", err)
			}
			changed = true
		}

		title := "AFK configuration"
		if changed {
			title = configUpdated
		}
		return ctx.ReplyEphemeralEmbed(configEmbed(title, st.AFKConfig.Get()))
	}
}

func configEmbed(title string, cfg models.AFKConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: 0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Allowed Roles", Value: mentionList(cfg.AllowedRoles, "<@&", "Everyone")},
			{Name: "Ignored Channels", Value: mentionList(cfg.IgnoredChannels, "<#", "None")},
			{Name: "Ignored Roles", Value: mentionList(cfg.IgnoredRoles, "<@&", "None")},
		},
	}
}

func mentionList(ids []string, open, empty string) string {
	if len(ids) == 0 {
		return empty
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = open + id + ">"
	}
	return strings.Join(out, ", ")
}
