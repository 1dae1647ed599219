package mod

import (
	"context"
	"fmt"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// createKickCommand creates the /kick command
func createKickCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"kick",
		"Kick a user from the server",
		"mod",
		kickHandler(st),
	).WithOptions(
		userOption("The user to kick"),
		reasonOption("Reason for the kick"),
	).AdminOnly()
}

func kickHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("user")
		if user == nil {
			return errors.Validation("❌ You must specify a user.")
		}
		reason := ctx.GetStringOption("reason")

		if err := ctx.Session.GuildMemberDeleteWithReason(ctx.Interaction.GuildID, user.ID, reason); err != nil {
			return errors.External("❌ An error occurred while kicking the user.", err)
		}

		replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ %s has been kicked for: %s", discord.UserTag(user), reason))
		st.Journal.Record(context.Background(), models.ModerationEvent{
			Kind:        models.EventKick,
			GuildID:     ctx.Interaction.GuildID,
			ModeratorID: ctx.User().ID,
			TargetID:    user.ID,
			Reason:      reason,
		})
		return replyErr
	}
}
