package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/tracker"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// FilterWarningColor is the color of the blocked-word notice.
const FilterWarningColor = 0xff0000

// MessageHandler runs the message pipeline: blacklist filter, implicit AFK
// clear, AFK mention notices and auto replies. A blocked message stops
// the pipeline.
type MessageHandler struct {
	st  *app.State
	now func() time.Time
}

func NewMessageHandler(st *app.State) *MessageHandler {
	return &MessageHandler{st: st, now: time.Now}
}

// Handle processes one message from a human in a guild.
func (h *MessageHandler) Handle(api discord.API, _ *discordgo.State, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if h.filter(api, m) {
		return
	}
	h.clearAFK(api, m)
	h.notifyMentions(api, m)
	h.autoReply(api, m)
}

// filter deletes a message containing a blacklisted word and reports
// whether it did.
func (h *MessageHandler) filter(api discord.API, m *discordgo.MessageCreate) bool {
	word, found, err := h.st.Blacklist.Match(m.Content)
	if err != nil {
		logger.Error("Could not read the blacklist: "+err.Error(), "Filter")
		return false
	}
	if !found {
		return false
	}

	if err := api.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		logger.Error(fmt.Sprintf("Could not delete message %s: %v", m.ID, err), "Filter")
	}
	_, err = api.ChannelMessageSendEmbed(m.ChannelID, &discordgo.MessageEmbed{
		Title:       "Warning",
		Description: fmt.Sprintf("That word is not allowed here, <@%s>.", m.Author.ID),
		Color:       FilterWarningColor,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Could not send filter warning: %v", err), "Filter")
	}

	h.st.Journal.Record(context.Background(), models.ModerationEvent{
		Kind:     models.EventFiltered,
		GuildID:  m.GuildID,
		TargetID: m.Author.ID,
		Detail:   fmt.Sprintf("word=%s channel=%s", word, m.ChannelID),
	})
	return true
}

// clearAFK removes the author's AFK status unless the channel or one of
// their roles is ignored.
func (h *MessageHandler) clearAFK(api discord.API, m *discordgo.MessageCreate) {
	if _, ok := h.st.Tracker.AFK(m.Author.ID); !ok {
		return
	}
	if h.st.AFKConfig.IsIgnoredChannel(m.ChannelID) {
		return
	}
	if m.Member != nil && h.st.AFKConfig.HasIgnoredRole(m.Member.Roles) {
		return
	}

	_, cleared, out := h.st.Tracker.ClearAFK(api, m.GuildID, m.Author.ID)
	if !cleared {
		return
	}
	if out.Result == tracker.Partial {
		logger.Warn(fmt.Sprintf("AFK cleared for %s but the nickname was not restored: %v", m.Author.ID, out.Err), "AFK")
	}
	h.reply(api, m, fmt.Sprintf("Welcome back, <@%s>! I removed your AFK", m.Author.ID))
}

// notifyMentions tells the channel when a mentioned user is away.
func (h *MessageHandler) notifyMentions(api discord.API, m *discordgo.MessageCreate) {
	seen := make(map[string]bool, len(m.Mentions))
	for _, u := range m.Mentions {
		if u == nil || u.Bot || u.ID == m.Author.ID || seen[u.ID] {
			continue
		}
		seen[u.ID] = true

		rec, ok := h.st.Tracker.AFK(u.ID)
		if !ok {
			continue
		}
		name := rec.OriginalDisplayName
		if name == "" {
			name = u.Username
		}
		elapsed := tracker.FormatElapsed(h.now().Sub(rec.Since))
		h.reply(api, m, fmt.Sprintf("💤 %s is AFK: %s (%s ago)", name, rec.Message, elapsed))
	}
}

func (h *MessageHandler) autoReply(api discord.API, m *discordgo.MessageCreate) {
	content := strings.ToLower(m.Content)
	if strings.Contains(content, "pogi") {
		h.reply(api, m, "Oo naman, napaka-pogi mo! 😎")
	}
	switch content {
	case "hi":
		h.reply(api, m, "Hello! 👋")
	case "ping":
		h.reply(api, m, "Pong! 🏓")
	}
}

func (h *MessageHandler) reply(api discord.API, m *discordgo.MessageCreate, content string) {
	if _, err := api.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		logger.Warn(fmt.Sprintf("Could not reply in %s: %v", m.ChannelID, err), "Messages")
	}
}
