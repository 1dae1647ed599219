package afk

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/tracker"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// createAFKRemoveCommand creates the /afk-remove command
func createAFKRemoveCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"afk-remove",
		"Remove AFK status from a user",
		"afk",
		afkRemoveHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to remove AFK from",
			Required:    true,
		},
	).AdminOnly()
}

func afkRemoveHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("user")
		if user == nil {
			return errors.Validation("❌ You must specify a user.")
		}
		tag := discord.UserTag(user)

		_, ok, out := st.Tracker.ClearAFK(ctx.Session, ctx.Interaction.GuildID, user.ID)
		if !ok {
			return errors.Validation(fmt.Sprintf("❌ %s is not AFK.", tag))
		}
		if out.Result == tracker.Partial {
			logger.Warn(fmt.Sprintf("AFK removed from %s but the nickname was not restored: %v", user.ID, out.Err), "AFK")
		}

		replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ AFK status removed from %s.", tag))
		st.Journal.Record(context.Background(), models.ModerationEvent{
			Kind:        models.EventAFKRemove,
			GuildID:     ctx.Interaction.GuildID,
			ModeratorID: ctx.User().ID,
			TargetID:    user.ID,
		})
		return replyErr
	}
}
