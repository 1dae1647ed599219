// Package welcome renders the join announcement and provides /test and
// /setwelcome.
package welcome

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// ErrChannelNotFound is returned when the configured channel cannot be resolved.
var ErrChannelNotFound = stderrors.New("welcome channel not found")

// now is replaced in tests.
var now = time.Now

// Render fills the template for member joining guild. Placeholders are
// replaced in every text field.
func Render(cfg models.WelcomeConfig, guild *discordgo.Guild, member *discordgo.Member) *discordgo.MessageEmbed {
	r := strings.NewReplacer(
		"{server}", guild.Name,
		"{user}", "<@"+member.User.ID+">",
		"{user_tag}", discord.UserTag(member.User),
		"{member_count}", strconv.Itoa(discord.MemberCount(guild)),
	)

	thumbnail := r.Replace(cfg.Thumbnail)
	if thumbnail == "" {
		thumbnail = member.User.AvatarURL("512")
	}
	color := cfg.Color
	if color == 0 {
		color = models.FallbackWelcomeColor
	}

	return &discordgo.MessageEmbed{
		Title:       r.Replace(cfg.Title),
		Description: r.Replace(cfg.Description),
		Color:       color,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumbnail},
		Footer:      &discordgo.MessageEmbedFooter{Text: r.Replace(cfg.Footer)},
		Timestamp:   now().Format(time.RFC3339),
	}
}

// Announce posts the welcome embed for member to the configured channel.
func Announce(api discord.API, state *discordgo.State, st *app.State, guildID string, member *discordgo.Member) error {
	cfg := st.Welcome.Get()
	if cfg.ChannelID == "" {
		return ErrChannelNotFound
	}
	ch, err := discord.ResolveChannel(api, state, cfg.ChannelID)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrChannelNotFound, cfg.ChannelID, err)
	}
	guild, err := discord.ResolveGuild(api, state, guildID)
	if err != nil {
		return fmt.Errorf("resolve guild %s: %w", guildID, err)
	}

	_, err = api.ChannelMessageSendEmbed(ch.ID, Render(cfg, guild, member))
	return err
}
