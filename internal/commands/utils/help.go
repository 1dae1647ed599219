package utils

import (
	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/pkg/discord"
)

// createHelpCommand creates the /help command
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"List all available commands.",
		"utils",
		helpHandler,
	)
}

// helpHandler lists every registered command in registration order
func helpHandler(ctx *discord.CommandContext) error {
	cmds := ctx.Client.Commands.List()
	fields := make([]*discordgo.MessageEmbedField, 0, len(cmds))
	for _, cmd := range cmds {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "/" + cmd.Name,
			Value: cmd.Description,
		})
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "Available Commands",
		Description: "Here are all the commands you can use:",
		Color:       0x00ff00,
		Fields:      fields,
	})
}
