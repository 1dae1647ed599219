// Package filter provides /blacklist and /whitelist, which edit the word
// list the message filter enforces.
package filter

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
	"github.com/TambayanDev/TambayanBot/pkg/store"
)

const updateFailed = "❌ An error occurred while updating the blacklist."

// RegisterFilterCommands registers the blacklist commands
func RegisterFilterCommands(client *discord.ExtendedClient, st *app.State) {
	client.CommandHandler.RegisterCommand(createBlacklistCommand(st))
	client.CommandHandler.RegisterCommand(createWhitelistCommand(st))
}

func wordOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "word",
		Description: description,
		Required:    true,
	}
}

// createBlacklistCommand creates the /blacklist command
func createBlacklistCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"blacklist",
		"Add a word to the blacklist",
		"filter",
		func(ctx *discord.CommandContext) error {
			word, err := st.Blacklist.Add(ctx.GetStringOption("word"))
			switch {
			case stderrors.Is(err, store.ErrWordExists):
				return errors.Validation(fmt.Sprintf("❌ The word \"%s\" is already in the blacklist.", word))
			case stderrors.Is(err, store.ErrEmptyWord):
				return errors.Validation("❌ You must provide a word.")
			case err != nil:
				return errors.External(updateFailed, err)
			}

			replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ The word \"%s\" has been added to the blacklist.", word))
			record(ctx, st, models.EventBlacklistAdd, word)
			return replyErr
		},
	).WithOptions(wordOption("The word to block")).AdminOnly()
}

// createWhitelistCommand creates the /whitelist command
func createWhitelistCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"whitelist",
		"Remove a word from the blacklist",
		"filter",
		func(ctx *discord.CommandContext) error {
			word, err := st.Blacklist.Remove(ctx.GetStringOption("word"))
			switch {
			case stderrors.Is(err, store.ErrWordNotFound):
				return errors.Validation(fmt.Sprintf("❌ The word \"%s\" is not in the blacklist.", word))
			case stderrors.Is(err, store.ErrEmptyWord):
				return errors.Validation("❌ You must provide a word.")
			case err != nil:
				return errors.External(updateFailed, err)
			}

			replyErr := ctx.ReplyEphemeral(fmt.Sprintf("✅ The word \"%s\" has been removed from the blacklist.", word))
			record(ctx, st, models.EventBlacklistDel, word)
			return replyErr
		},
	).WithOptions(wordOption("The word to allow again")).AdminOnly()
}

func record(ctx *discord.CommandContext, st *app.State, kind models.EventKind, word string) {
	logger.Info(fmt.Sprintf("%s %s by %s", kind, word, ctx.User().ID), "Filter")
	st.Journal.Record(context.Background(), models.ModerationEvent{
		Kind:        kind,
		GuildID:     ctx.Interaction.GuildID,
		ModeratorID: ctx.User().ID,
		Detail:      "word=" + word,
	})
}
