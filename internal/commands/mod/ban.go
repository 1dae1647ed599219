package mod

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// banPurgeDays is how much message history delete_messages removes.
const banPurgeDays = 7

// createBanCommand creates the /ban command
func createBanCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"ban",
		"Ban a user from the server",
		"mod",
		banHandler(st),
	).WithOptions(
		userOption("The user to ban"),
		reasonOption("Reason for the ban"),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "delete_messages",
			Description: "Delete the user's messages from the last 7 days",
			Required:    false,
		},
	).AdminOnly()
}

// banHandler handles the /ban command
func banHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("user")
		if user == nil {
			return errors.Validation("❌ You must specify a user.")
		}
		reason := ctx.GetStringOption("reason")

		days := 0
		if ctx.GetBoolOption("delete_messages") {
			days = banPurgeDays
		}

		if err := ctx.Session.GuildBanCreateWithReason(ctx.Interaction.GuildID, user.ID, reason, days); err != nil {
			return errors.External("❌ An error occurred while banning the user.", err)
		}

		replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ %s has been banned for: %s", discord.UserTag(user), reason))
		st.Journal.Record(context.Background(), models.ModerationEvent{
			Kind:        models.EventBan,
			GuildID:     ctx.Interaction.GuildID,
			ModeratorID: ctx.User().ID,
			TargetID:    user.ID,
			Reason:      reason,
			Detail:      fmt.Sprintf("delete_days=%d", days),
		})
		return replyErr
	}
}
