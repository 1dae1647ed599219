package mod

import (
	"context"
	"fmt"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/tracker"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// createWarnCommand creates the /warn command
func createWarnCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"warn",
		"Warn a user and mark their nickname",
		"mod",
		warnHandler(st),
	).WithOptions(
		userOption("The user to warn"),
	).AdminOnly()
}

// warnHandler increments the counter even when the nickname cannot be
// marked, and says so in the reply.
func warnHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		member, err := ctx.GetMemberOption("user")
		if err != nil {
			return errors.External("❌ An error occurred while warning the user.", err)
		}

		count, out := st.Tracker.Warn(ctx.Session, ctx.Interaction.GuildID, member)
		reply := fmt.Sprintf("✅ %s has been warned. Current warnings: %d", discord.UserTag(member.User), count)
		if out.Result == tracker.Partial {
			logger.Warn(fmt.Sprintf("Warning marker not applied to %s: %v", member.User.ID, out.Err), "Mod")
			reply += "\n⚠️ I couldn't update their nickname."
		}

		replyErr := ctx.ReplyEphemeral(reply)
		st.Journal.Record(context.Background(), models.ModerationEvent{
			Kind:        models.EventWarn,
			GuildID:     ctx.Interaction.GuildID,
			ModeratorID: ctx.User().ID,
			TargetID:    member.User.ID,
			Detail:      fmt.Sprintf("warnings=%d", count),
		})
		return replyErr
	}
}
