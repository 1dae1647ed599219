package utils

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

const (
	postSent       = "✅ Post sent successfully!"
	postFailed     = "❌ An error occurred while sending the post."
	badChannel     = "❌ Please provide a valid text channel."
	missingText    = "❌ Message content is required for text type."
	badColor       = "❌ Invalid color format. Use a valid hex code (e.g., #FF5733)."
	emptyEmbed     = "❌ You must provide at least a title, description, footer, or image."
	defaultPostHex = "#FFFFFF"
	postTypeText   = "text"
	postTypeEmbed  = "embed"
)

// createPostCommand creates the /post command
func createPostCommand() *discord.Command {
	opt := func(name, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: description,
		}
	}

	return discord.NewCommand(
		"post",
		"Post a message in a selected channel.",
		"utils",
		postHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Select the channel to post in",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "type",
			Description: "Choose between 'text' or 'embed'",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Text", Value: postTypeText},
				{Name: "Embed", Value: postTypeEmbed},
			},
		},
		opt("message", "Message content (required for text type)"),
		opt("title", "Embed title"),
		opt("description", "Embed description"),
		opt("thumbnail", "Embed thumbnail URL"),
		opt("image", "Embed image URL"),
		opt("color", "Embed color (hex)"),
		opt("footer", "Embed footer text"),
	).AdminOnly()
}

func postHandler(ctx *discord.CommandContext) error {
	channel := ctx.GetChannelOption("channel")
	if channel == nil {
		return errors.Validation(badChannel)
	}
	if channel.Name == "" {
		// Not carried by the interaction.
		ch, err := discord.ResolveChannel(ctx.Session, ctx.State, channel.ID)
		if err != nil {
			return errors.Validation(badChannel)
		}
		channel = ch
	}
	if !isTextChannel(channel) {
		return errors.Validation(badChannel)
	}

	if err := ctx.Defer(true); err != nil {
		return err
	}

	switch ctx.GetStringOption("type") {
	case postTypeText:
		content := ctx.GetStringOption("message")
		if content == "" {
			return errors.Validation(missingText)
		}
		if _, err := ctx.Session.ChannelMessageSend(channel.ID, content); err != nil {
			return errors.External(postFailed, err)
		}
	case postTypeEmbed:
		embed, err := buildPostEmbed(ctx)
		if err != nil {
			return err
		}
		if _, err := ctx.Session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
			return errors.External(postFailed, err)
		}
	default:
		return errors.Validation("❌ Type must be text or embed.")
	}

	return ctx.EditReply(postSent)
}

func buildPostEmbed(ctx *discord.CommandContext) (*discordgo.MessageEmbed, error) {
	title := ctx.GetStringOption("title")
	description := ctx.GetStringOption("description")
	footer := ctx.GetStringOption("footer")
	image := fixDiscordImageURL(ctx.GetStringOption("image"))
	thumbnail := fixDiscordImageURL(ctx.GetStringOption("thumbnail"))

	hex := ctx.GetStringOption("color")
	if hex == "" {
		hex = defaultPostHex
	}
	color, ok := discord.ParseHexColor(hex)
	if !ok {
		return nil, errors.Validation(badColor)
	}
	if color == 0 {
		color = models.FallbackWelcomeColor
	}

	if title == "" && description == "" && footer == "" && image == "" && thumbnail == "" {
		return nil, errors.Validation(emptyEmbed)
	}

	embed := &discordgo.MessageEmbed{Title: title, Description: description, Color: color}
	if footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}
	if image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: image}
	}
	if thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnail}
	}
	return embed, nil
}

// fixDiscordImageURL rewrites media-proxy links to the CDN host and asks
// for a PNG rendition.
func fixDiscordImageURL(url string) string {
	if url == "" {
		return ""
	}
	url = strings.Replace(url, "media.discordapp.net", "cdn.discordapp.com", 1)
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	return url + "?format=png"
}

func isTextChannel(ch *discordgo.Channel) bool {
	switch ch.Type {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	}
	return false
}
