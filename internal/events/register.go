// Package events provides the gateway event handlers: message filtering and
// AFK handling, member join announcements, presence and shard logging.
package events

import (
	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/internal/app"
	"github.com/TambayanDev/TambayanBot/pkg/discord"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, st *app.State) {
	logger.System("📋 Registering bot events...", "Events")

	messages := NewMessageHandler(st)
	client.EventHandler.OnMessageCreate(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		defer errors.RecoverMiddleware()()
		messages.Handle(s, s.State, m)
	})

	client.EventHandler.OnGuildMemberAdd(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		defer errors.RecoverMiddleware()()
		onGuildMemberAdd(s, s.State, st, m)
	})

	client.EventHandler.OnReady(onReady)
	client.EventHandler.OnDisconnect(onShardDisconnect)
	client.EventHandler.OnResumed(onShardResumed)

	logger.Success("✅ All events registered", "Events")
}
