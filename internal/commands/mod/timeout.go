package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// Timeout bounds in minutes. Discord caps a timeout at 28 days; the bot
// allows up to one week.
const (
	minTimeoutMinutes     = 1
	maxTimeoutMinutes     = 10080
	defaultTimeoutMinutes = 1
)

const badDuration = "❌ Duration must be between 1 minute and 7 days (10080 minutes)."

// now is replaced in tests.
var now = time.Now

// createTimeoutCommand creates the /timeout command
func createTimeoutCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"timeout",
		"Timeout a user",
		"mod",
		timeoutHandler(st),
	).WithOptions(
		userOption("The user to timeout"),
		reasonOption("Reason for the timeout"),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duration",
			Description: "Duration in minutes (default 1, max 10080)",
			Required:    false,
		},
	).AdminOnly()
}

func timeoutHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("user")
		if user == nil {
			return errors.Validation("❌ You must specify a user.")
		}
		reason := ctx.GetStringOption("reason")

		minutes := int64(defaultTimeoutMinutes)
		if ctx.HasOption("duration") {
			minutes = ctx.GetIntOption("duration")
		}
		if minutes < minTimeoutMinutes || minutes > maxTimeoutMinutes {
			return errors.Validation(badDuration)
		}

		until := now().Add(time.Duration(minutes) * time.Minute)
		if err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, user.ID, &until); err != nil {
			return errors.External("❌ An error occurred while timing out the user.", err)
		}

		replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ %s has been timed out for %d minutes for: %s", discord.UserTag(user), minutes, reason))
		st.Journal.Record(context.Background(), models.ModerationEvent{
			Kind:        models.EventTimeout,
			GuildID:     ctx.Interaction.GuildID,
			ModeratorID: ctx.User().ID,
			TargetID:    user.ID,
			Reason:      reason,
			Detail:      fmt.Sprintf("minutes=%d", minutes),
		})
		return replyErr
	}
}
