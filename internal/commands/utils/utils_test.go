package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app/apptest"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/discord/discordtest"
)

var admin = discordtest.Admin("a1", "admin")

func newHarness(t *testing.T) *apptest.Harness {
	h := apptest.New(t)
	RegisterUtilsCommands(h.Client, h.State)
	return h
}

func TestHelpListsCommandsPublicly(t *testing.T) {
	h := newHarness(t)
	h.Run("help", discordtest.Member("u1", "alice"))

	resp := h.API.LastResponse()
	if resp.Data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		t.Error("help should be public")
	}
	embed := resp.Data.Embeds[0]
	if embed.Title != "Available Commands" {
		t.Errorf("title = %q", embed.Title)
	}
	var names []string
	for _, f := range embed.Fields {
		names = append(names, f.Name)
	}
	if got := strings.Join(names, " "); got != "/post /report /help" {
		t.Errorf("fields = %q", got)
	}
}

func TestPostText(t *testing.T) {
	h := newHarness(t)
	h.Run("post", admin,
		discordtest.Channel("channel", apptest.ChannelID),
		discordtest.String("type", "text"),
		discordtest.String("message", "Hello everyone"))

	if got := h.Answer(); got != postSent {
		t.Errorf("answer = %q", got)
	}
	if len(h.API.Sent) != 1 || h.API.Sent[0].Content != "Hello everyone" || h.API.Sent[0].ChannelID != apptest.ChannelID {
		t.Errorf("sent = %+v", h.API.Sent)
	}
}

func TestPostTextRequiresMessage(t *testing.T) {
	h := newHarness(t)
	h.Run("post", admin, discordtest.Channel("channel", apptest.ChannelID), discordtest.String("type", "text"))

	if got := h.Answer(); got != missingText {
		t.Errorf("answer = %q", got)
	}
	if len(h.API.Sent) != 0 {
		t.Error("nothing should be sent")
	}
}

func TestPostEmbed(t *testing.T) {
	h := newHarness(t)
	h.Run("post", admin,
		discordtest.Channel("channel", apptest.ChannelID),
		discordtest.String("type", "embed"),
		discordtest.String("title", "News"),
		discordtest.String("image", "https://media.discordapp.net/attachments/1/2/pic.jpg?ex=abc&is=def"),
		discordtest.String("color", "FF5733"))

	if got := h.Answer(); got != postSent {
		t.Fatalf("answer = %q", got)
	}
	embed := h.API.Sent[0].Embeds[0]
	if embed.Title != "News" || embed.Color != 0xff5733 {
		t.Errorf("embed = %+v", embed)
	}
	if want := "https://cdn.discordapp.com/attachments/1/2/pic.jpg?format=png"; embed.Image.URL != want {
		t.Errorf("image = %q, want %q", embed.Image.URL, want)
	}
}

func TestPostEmbedValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []*discordgo.ApplicationCommandInteractionDataOption
		want string
	}{
		{"bad color", []*discordgo.ApplicationCommandInteractionDataOption{discordtest.String("title", "x"), discordtest.String("color", "#12")}, badColor},
		{"nothing to show", nil, emptyEmbed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			opts := append([]*discordgo.ApplicationCommandInteractionDataOption{
				discordtest.Channel("channel", apptest.ChannelID),
				discordtest.String("type", "embed"),
			}, tt.opts...)
			h.Run("post", admin, opts...)

			if got := h.Answer(); got != tt.want {
				t.Errorf("answer = %q, want %q", got, tt.want)
			}
			if len(h.API.Sent) != 0 {
				t.Error("nothing should be sent")
			}
		})
	}
}

func TestPostDefaultColor(t *testing.T) {
	h := newHarness(t)
	h.Run("post", admin,
		discordtest.Channel("channel", apptest.ChannelID),
		discordtest.String("type", "embed"),
		discordtest.String("description", "body"))
	if got := h.API.Sent[0].Embeds[0].Color; got != 0xffffff {
		t.Errorf("color = %#x, want white", got)
	}
}

func TestPostRejectsNonTextChannel(t *testing.T) {
	h := newHarness(t)
	h.API.Channels["cat"] = &discordgo.Channel{ID: "cat", Type: discordgo.ChannelTypeGuildCategory}

	h.Run("post", admin, discordtest.Channel("channel", "cat"), discordtest.String("type", "text"), discordtest.String("message", "x"))

	if content, ephemeral := h.API.Reply(); content != badChannel || !ephemeral {
		t.Errorf("reply = %q (ephemeral %v)", content, ephemeral)
	}
}

func TestPostRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	h.Run("post", discordtest.Member("u1", "alice"), discordtest.Channel("channel", apptest.ChannelID), discordtest.String("type", "text"))
	if content, _ := h.API.Reply(); content != discord.AdminRequired {
		t.Errorf("reply = %q", content)
	}
}

func TestFixDiscordImageURL(t *testing.T) {
	tests := map[string]string{
		"": "",
		"https://example.com/a.png":                     "https://example.com/a.png?format=png",
		"https://media.discordapp.net/x/y.webp?width=5": "https://cdn.discordapp.com/x/y.webp?format=png",
	}
	for in, want := range tests {
		if got := fixDiscordImageURL(in); got != want {
			t.Errorf("fixDiscordImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReport(t *testing.T) {
	h := newHarness(t)
	reported := discordtest.Member("u2", "troll")

	h.RunResolved("report", discordtest.Member("u1", "alice"), discordtest.Resolve(reported),
		discordtest.User("user", "u2"), discordtest.String("reason", "spamming links"))

	content, ephemeral := h.API.Reply()
	if content != "✅ Your report against <@u2> has been submitted." || !ephemeral {
		t.Errorf("reply = %q (ephemeral %v)", content, ephemeral)
	}

	if len(h.API.Sent) != 2 {
		t.Fatalf("sent = %+v", h.API.Sent)
	}
	support := h.API.Sent[0]
	if support.ChannelID != apptest.SupportChannelID || support.Content != "<@&"+apptest.SupportRoleID+">" {
		t.Errorf("support message = %+v", support)
	}
	embed := support.Embeds[0]
	if embed.Title != "New User Report" || embed.Color != 0xff0000 {
		t.Errorf("embed = %+v", embed)
	}
	if want := "**Reported User:** <@u2>\n**Reason:** spamming links\n**Reported By:** <@u1>"; embed.Description != want {
		t.Errorf("description = %q", embed.Description)
	}
	if !strings.HasPrefix(embed.Footer.Text, "Reference: ") {
		t.Errorf("footer = %q", embed.Footer.Text)
	}

	if dm := h.API.Sent[1]; dm.ChannelID != "dm-u2" || dm.Content != appealNotice {
		t.Errorf("dm = %+v", dm)
	}
}

func TestReportDMFailureStillConfirms(t *testing.T) {
	h := newHarness(t)
	h.API.Fail["UserChannelCreate"] = errors.New("Cannot send messages to this user")

	h.Run("report", discordtest.Member("u1", "alice"), discordtest.User("user", "u2"), discordtest.String("reason", "x"))

	if content, _ := h.API.Reply(); content != "✅ Your report against <@u2> has been submitted." {
		t.Errorf("reply = %q", content)
	}
	if len(h.API.Sent) != 1 {
		t.Errorf("support message should still be sent, got %+v", h.API.Sent)
	}
}

func TestReportMissingSupportChannel(t *testing.T) {
	h := newHarness(t)
	delete(h.API.Channels, apptest.SupportChannelID)

	h.Run("report", discordtest.Member("u1", "alice"), discordtest.User("user", "u2"), discordtest.String("reason", "x"))

	if content, _ := h.API.Reply(); content != "✅ Your report against <@u2> has been submitted." {
		t.Errorf("reply = %q", content)
	}
	if len(h.API.Sent) != 1 || h.API.Sent[0].ChannelID != "dm-u2" {
		t.Errorf("only the DM should be sent, got %+v", h.API.Sent)
	}
}
