package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

const appealNotice = "You have been reported for violating the server rules. If you believe this is a mistake, please contact the support team to appeal."

// createReportCommand creates the /report command
func createReportCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"report",
		"Report a user to the support team.",
		"utils",
		reportHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to report",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "The reason for the report",
			Required:    true,
		},
	)
}

// reportHandler notifies the support channel, DMs the reported user and
// confirms to the reporter. The three effects do not depend on each other.
func reportHandler(st *app.State) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		reported := ctx.GetUserOption("user")
		if reported == nil {
			return errors.Validation("❌ You must specify a user.")
		}
		reason := ctx.GetStringOption("reason")
		reporter := ctx.User()
		ref := uuid.NewString()

		notifySupport(ctx, st, reported, reporter, reason, ref)

		if err := sendDM(ctx.Session, reported.ID, appealNotice); err != nil {
			logger.Warn(fmt.Sprintf("Could not DM reported user %s: %v", reported.ID, err), "Report")
		}

		replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ Your report against <@%s> has been submitted.", reported.ID))
		st.Journal.Record(context.Background(), models.ModerationEvent{
			ID:          ref,
			Kind:        models.EventReport,
			GuildID:     ctx.Interaction.GuildID,
			ModeratorID: reporter.ID,
			TargetID:    reported.ID,
			Reason:      reason,
		})
		return replyErr
	}
}

func notifySupport(ctx *discord.CommandContext, st *app.State, reported, reporter *discordgo.User, reason, ref string) {
	channelID := st.Config.SupportChannelID
	if channelID == "" {
		logger.Warn("SUPPORT_CHANNEL_ID is not set, report not forwarded", "Report")
		return
	}
	ch, err := discord.ResolveChannel(ctx.Session, ctx.State, channelID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Support channel %s not found: %v", channelID, err), "Report")
		return
	}

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title: "New User Report",
			Description: fmt.Sprintf("**Reported User:** <@%s>\n**Reason:** %s\n**Reported By:** <@%s>",
				reported.ID, reason, reporter.ID),
			Color:     0xff0000,
			Footer:    &discordgo.MessageEmbedFooter{Text: "Reference: " + ref},
			Timestamp: time.Now().Format(time.RFC3339),
		}},
	}
	if roleID := st.Config.SupportRoleID; roleID != "" {
		msg.Content = "<@&" + roleID + ">"
		msg.AllowedMentions = &discordgo.MessageAllowedMentions{Roles: []string{roleID}}
	}

	if _, err := ctx.Session.ChannelMessageSendComplex(ch.ID, msg); err != nil {
		logger.Error(fmt.Sprintf("Could not forward report %s: %v", ref, err), "Report")
	}
}

func sendDM(api discord.API, userID, content string) error {
	dm, err := api.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = api.ChannelMessageSend(dm.ID, content)
	return err
}
