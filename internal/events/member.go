package events

import (
	stderrors "errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/internal/commands/welcome"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

// onGuildMemberAdd announces a new member. Failures are logged only.
func onGuildMemberAdd(api discord.API, state *discordgo.State, st *app.State, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}
	logger.Info(fmt.Sprintf("👋 New member: %s in guild %s", discord.UserTag(m.User), m.GuildID), "Member")

	err := welcome.Announce(api, state, st, m.GuildID, m.Member)
	switch {
	case stderrors.Is(err, welcome.ErrChannelNotFound):
		logger.Warn(fmt.Sprintf("⚠️ Welcome channel not found: %v", err), "Member")
	case err != nil:
		logger.Error(fmt.Sprintf("Error sending welcome message: %v", err), "Member")
	}
}
