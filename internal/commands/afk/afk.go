package afk

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

const (
	notAllowed   = "❌ You don't have a role that can use /afk."
	noNickPerms  = "❌ I don't have permission to change your nickname."
	afkFailed    = "❌ An error occurred while setting your AFK status."
	afkNoticeFmt = "✅ <@%s> is now AFK: %s"
)

// createAFKCommand creates the /afk command
func createAFKCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"afk",
		"Set your AFK status",
		"afk",
		afkHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "message",
			Description: "Why you are away",
			Required:    false,
		},
	)
}

// afkHandler marks the invoker away. Administrators bypass allowedRoles.
func afkHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		member := ctx.Member()
		if !st.AFKConfig.Allows(member.Roles) && !ctx.HasPermission(discordgo.PermissionAdministrator) {
			return errors.Permission(notAllowed)
		}

		if err := ctx.Defer(true); err != nil {
			return err
		}

		rec, out := st.Tracker.SetAFK(ctx.Session, ctx.Interaction.GuildID, member, ctx.GetStringOption("message"))
		if !out.OK() {
			if discord.IsMissingPermissions(out.Err) {
				return errors.External(noNickPerms, out.Err)
			}
			return errors.External(afkFailed, out.Err)
		}

		notice := fmt.Sprintf(afkNoticeFmt, member.User.ID, rec.Message)
		if err := ctx.EditReply(notice); err != nil {
			return err
		}
		if _, err := ctx.Session.ChannelMessageSend(ctx.Interaction.ChannelID, notice); err != nil {
			logger.Warn("Could not announce AFK status: "+err.Error(), "AFK")
		}
		logger.Info(fmt.Sprintf("%s is now AFK: %s", member.User.ID, rec.Message), "AFK")
		return nil
	}
}
