package welcome

import (
	stderrors "errors"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/store"
)

const (
	testSucceeded = "✅ Welcome message tested successfully!"
	noChannel     = "❌ Welcome channel not found!"
	testFailed    = "❌ An error occurred while testing the welcome message."
	updated       = "✅ Welcome embed updated successfully!"
	badColor      = "❌ Invalid color format. Use a valid hex code (e.g., #FF5733)."
	nothingToSet  = "❌ Provide at least one field to update."
)

// RegisterWelcomeCommands registers /test and /setwelcome
func RegisterWelcomeCommands(client *discord.ExtendedClient, st *app.State) {
	client.CommandHandler.RegisterCommand(createTestCommand(st))
	client.CommandHandler.RegisterCommand(createSetWelcomeCommand(st))
}

// createTestCommand creates /test, which sends the announcement for the invoker.
func createTestCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"test",
		"Test the welcome message",
		"welcome",
		func(ctx *discord.CommandContext) error {
			err := Announce(ctx.Session, ctx.State, st, ctx.Interaction.GuildID, ctx.Member())
			switch {
			case stderrors.Is(err, ErrChannelNotFound):
				return errors.External(noChannel, err)
			case err != nil:
				return errors.External(testFailed, err)
			}
			return ctx.ReplyEphemeral(testSucceeded)
		},
	).AdminOnly()
}

func stringOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    false,
	}
}

// createSetWelcomeCommand creates /setwelcome. Only supplied fields change.
func createSetWelcomeCommand(st *app.State) *discord.Command {
	return discord.NewCommand(
		"setwelcome",
		"Customize the welcome embed",
		"welcome",
		func(ctx *discord.CommandContext) error {
			var u store.WelcomeUpdate
			if ctx.HasOption("title") {
				v := ctx.GetStringOption("title")
				u.Title = &v
			}
			if ctx.HasOption("description") {
				v := ctx.GetStringOption("description")
				u.Description = &v
			}
			if ctx.HasOption("footer") {
				v := ctx.GetStringOption("footer")
				u.Footer = &v
			}
			if ctx.HasOption("color") {
				c, ok := discord.ParseHexColor(ctx.GetStringOption("color"))
				if !ok {
					return errors.Validation(badColor)
				}
				u.Color = &c
			}
			if u.Empty() {
				return errors.Validation(nothingToSet)
			}

			if _, err := st.Welcome.Update(u); err != nil {
				return errors.External("❌ An error occurred while updating the welcome embed.", err)
			}
			return ctx.ReplyEphemeral(updated)
		},
	).WithOptions(
		stringOption("title", "Embed title ({server}, {user}, {user_tag}, {member_count})"),
		stringOption("description", "Embed description"),
		stringOption("footer", "Embed footer"),
		stringOption("color", "Hex color, e.g. #FF5733"),
	).AdminOnly()
}
