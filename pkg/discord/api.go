package discord

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// API is the part of the Discord REST surface the bot uses.
// *discordgo.Session satisfies it; tests substitute a fake.
type API interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)

	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberNickname(guildID, userID, nickname string, options ...discordgo.RequestOption) error
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error
	GuildMemberTimeout(guildID string, userID string, until *time.Time, options ...discordgo.RequestOption) error
}

var _ API = (*discordgo.Session)(nil)

// ResolveChannel looks the channel up in the state cache, then over REST.
func ResolveChannel(api API, state *discordgo.State, channelID string) (*discordgo.Channel, error) {
	if channelID == "" {
		return nil, discordgo.ErrStateNotFound
	}
	if state != nil {
		if ch, err := state.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	return api.Channel(channelID)
}

// ResolveGuild looks the guild up in the state cache, then over REST.
func ResolveGuild(api API, state *discordgo.State, guildID string) (*discordgo.Guild, error) {
	if state != nil {
		if g, err := state.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return api.Guild(guildID)
}

// ResolveMember looks the member up in the state cache, then over REST.
func ResolveMember(api API, state *discordgo.State, guildID, userID string) (*discordgo.Member, error) {
	if state != nil {
		if m, err := state.Member(guildID, userID); err == nil {
			return m, nil
		}
	}
	return api.GuildMember(guildID, userID)
}

// MemberCount prefers the gateway count and falls back to the approximate one.
func MemberCount(g *discordgo.Guild) int {
	if g.MemberCount > 0 {
		return g.MemberCount
	}
	return g.ApproximateMemberCount
}

// UserTag renders a user the way moderators see them in replies.
func UserTag(u *discordgo.User) string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// IsMissingPermissions reports whether Discord rejected a call because the
// bot lacks a permission or sits below the target in the role hierarchy.
func IsMissingPermissions(err error) bool {
	var restErr *discordgo.RESTError
	if !stderrors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}
