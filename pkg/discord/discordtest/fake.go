// Package discordtest provides an in-memory stand-in for the Discord REST
// API used by the bot's handlers.
package discordtest

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Sent is a message posted through the fake.
type Sent struct {
	ChannelID string
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Reference *discordgo.MessageReference
}

// Rename is a nickname change.
type Rename struct {
	GuildID  string
	UserID   string
	Nickname string
}

// Sanction is a ban, kick or timeout.
type Sanction struct {
	UserID string
	Reason string
	Days   int
	Until  *time.Time
}

// API records every call. Set Fail[method] to make that method error.
type API struct {
	mu sync.Mutex

	Channels map[string]*discordgo.Channel
	Guilds   map[string]*discordgo.Guild
	Members  map[string]*discordgo.Member
	Fail     map[string]error

	Responses []*discordgo.InteractionResponse
	Edits     []*discordgo.WebhookEdit
	Followups []*discordgo.WebhookParams
	Sent      []Sent
	Deleted   []string
	Renames   []Rename
	Bans      []Sanction
	Kicks     []Sanction
	Timeouts  []Sanction
	DMs       []string
}

func New() *API {
	return &API{
		Channels: map[string]*discordgo.Channel{},
		Guilds:   map[string]*discordgo.Guild{},
		Members:  map[string]*discordgo.Member{},
		Fail:     map[string]error{},
	}
}

// Forbidden mimics Discord's missing-permissions rejection.
var Forbidden = &discordgo.RESTError{
	Response:     &http.Response{Status: "403 Forbidden", StatusCode: http.StatusForbidden},
	ResponseBody: []byte(`{"message": "Missing Permissions", "code": 50013}`),
	Message:      &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
}

func (f *API) fail(method string) error {
	if err, ok := f.Fail[method]; ok {
		return err
	}
	return nil
}

// AddMember stores a member for GuildMember lookups.
func (f *API) AddMember(guildID string, m *discordgo.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Members[guildID+"/"+m.User.ID] = m
}

func (f *API) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("InteractionRespond"); err != nil {
		return err
	}
	f.Responses = append(f.Responses, resp)
	return nil
}

func (f *API) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("InteractionResponseEdit"); err != nil {
		return nil, err
	}
	f.Edits = append(f.Edits, edit)
	return &discordgo.Message{}, nil
}

func (f *API) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("FollowupMessageCreate"); err != nil {
		return nil, err
	}
	f.Followups = append(f.Followups, data)
	return &discordgo.Message{Content: data.Content, Flags: data.Flags}, nil
}

func (f *API) send(method string, s Sent) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(method); err != nil {
		return nil, err
	}
	f.Sent = append(f.Sent, s)
	return &discordgo.Message{ChannelID: s.ChannelID, Content: s.Content, Embeds: s.Embeds}, nil
}

func (f *API) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return f.send("ChannelMessageSend", Sent{ChannelID: channelID, Content: content})
}

func (f *API) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return f.send("ChannelMessageSendEmbed", Sent{ChannelID: channelID, Embeds: []*discordgo.MessageEmbed{embed}})
}

func (f *API) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return f.send("ChannelMessageSendComplex", Sent{ChannelID: channelID, Content: data.Content, Embeds: data.Embeds, Reference: data.Reference})
}

func (f *API) ChannelMessageSendReply(channelID string, content string, ref *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return f.send("ChannelMessageSendReply", Sent{ChannelID: channelID, Content: content, Reference: ref})
}

func (f *API) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ChannelMessageDelete"); err != nil {
		return err
	}
	f.Deleted = append(f.Deleted, channelID+"/"+messageID)
	return nil
}

func (f *API) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.Channels[channelID]; ok {
		return ch, nil
	}
	return nil, fmt.Errorf("HTTP 404 Not Found: unknown channel %s", channelID)
}

func (f *API) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UserChannelCreate"); err != nil {
		return nil, err
	}
	f.DMs = append(f.DMs, recipientID)
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (f *API) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.Guilds[guildID]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("HTTP 404 Not Found: unknown guild %s", guildID)
}

func (f *API) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.Members[guildID+"/"+userID]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("HTTP 404 Not Found: unknown member %s", userID)
}

func (f *API) GuildMemberNickname(guildID, userID, nickname string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GuildMemberNickname"); err != nil {
		return err
	}
	f.Renames = append(f.Renames, Rename{GuildID: guildID, UserID: userID, Nickname: nickname})
	if m, ok := f.Members[guildID+"/"+userID]; ok {
		m.Nick = nickname
	}
	return nil
}

func (f *API) GuildBanCreateWithReason(_, userID, reason string, days int, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GuildBanCreateWithReason"); err != nil {
		return err
	}
	f.Bans = append(f.Bans, Sanction{UserID: userID, Reason: reason, Days: days})
	return nil
}

func (f *API) GuildMemberDeleteWithReason(_, userID, reason string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GuildMemberDeleteWithReason"); err != nil {
		return err
	}
	f.Kicks = append(f.Kicks, Sanction{UserID: userID, Reason: reason})
	return nil
}

func (f *API) GuildMemberTimeout(_ string, userID string, until *time.Time, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GuildMemberTimeout"); err != nil {
		return err
	}
	f.Timeouts = append(f.Timeouts, Sanction{UserID: userID, Until: until})
	return nil
}

// LastResponse returns the most recent interaction response.
func (f *API) LastResponse() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Responses) == 0 {
		return nil
	}
	return f.Responses[len(f.Responses)-1]
}

// LastEdit returns the content of the most recent deferred-reply edit.
func (f *API) LastEdit() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Edits) == 0 || f.Edits[len(f.Edits)-1].Content == nil {
		return ""
	}
	return *f.Edits[len(f.Edits)-1].Content
}

// Reply returns the content and ephemeral flag of the last response.
func (f *API) Reply() (string, bool) {
	resp := f.LastResponse()
	if resp == nil || resp.Data == nil {
		return "", false
	}
	return resp.Data.Content, resp.Data.Flags&discordgo.MessageFlagsEphemeral != 0
}
