package discord

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"

	"github.com/TambayanDev/TambayanBot/pkg/discord/discordtest"
	"github.com/TambayanDev/TambayanBot/pkg/errors"
)

func newTestClient(cmds ...*Command) *ExtendedClient {
	c := &ExtendedClient{Commands: NewCommandCollection()}
	c.CommandHandler = &CommandHandler{client: c}
	for _, cmd := range cmds {
		c.CommandHandler.RegisterCommand(cmd)
	}
	return c
}

func TestCommandCreation(t *testing.T) {
	cmd := NewCommand("test", "Test command", "test", func(ctx *CommandContext) error { return nil })

	if cmd.Name != "test" || cmd.Description != "Test command" || cmd.Category != "test" {
		t.Errorf("NewCommand() = %+v", cmd)
	}
	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
}

func TestToApplicationCommand(t *testing.T) {
	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "word",
		Description: "Word",
		Required:    true,
	}

	appCmd := NewCommand("blacklist", "Add a word", "filter", nil).
		WithOptions(option).
		AdminOnly().
		ToApplicationCommand()

	if appCmd.Name != "blacklist" || len(appCmd.Options) != 1 {
		t.Fatalf("ToApplicationCommand() = %+v", appCmd)
	}
	if appCmd.DefaultMemberPermissions == nil || *appCmd.DefaultMemberPermissions != discordgo.PermissionAdministrator {
		t.Error("admin command should default to administrator visibility")
	}
	if appCmd.DMPermission == nil || *appCmd.DMPermission {
		t.Error("commands should be disabled in DMs")
	}

	open := NewCommand("help", "Help", "utils", nil).ToApplicationCommand()
	if open.DefaultMemberPermissions != nil {
		t.Error("open command should not restrict member permissions")
	}
}

func TestCommandCollectionOrder(t *testing.T) {
	cc := NewCommandCollection()
	for _, name := range []string{"afk", "ban", "help"} {
		cc.Set(name, NewCommand(name, name, "x", nil))
	}
	cc.Set("afk", NewCommand("afk", "replaced", "x", nil))

	var names []string
	for _, cmd := range cc.List() {
		names = append(names, cmd.Name)
	}
	if diff := cmp.Diff([]string{"afk", "ban", "help"}, names); diff != "" {
		t.Errorf("List() order mismatch (-want +got):\n%s", diff)
	}
	if cmd, _ := cc.Get("afk"); cmd.Description != "replaced" {
		t.Error("Set should replace an existing command")
	}
	if cc.Size() != 3 {
		t.Errorf("Size() = %d, want 3", cc.Size())
	}
}

func TestDispatchRequiresAdministrator(t *testing.T) {
	ran := false
	c := newTestClient(NewCommand("ban", "Ban", "mod", func(ctx *CommandContext) error {
		ran = true
		return nil
	}).AdminOnly())
	api := discordtest.New()

	inv := discordtest.Invocation{GuildID: "g", Invoker: discordtest.Member("u1", "bob")}
	c.Dispatch(api, nil, inv.Command("ban"))

	if ran {
		t.Error("admin command ran for a regular member")
	}
	content, ephemeral := api.Reply()
	if content != AdminRequired || !ephemeral {
		t.Errorf("reply = %q (ephemeral=%v), want %q ephemeral", content, ephemeral, AdminRequired)
	}

	inv.Invoker = discordtest.Admin("a1", "alice")
	c.Dispatch(api, nil, inv.Command("ban"))
	if !ran {
		t.Error("admin command did not run for an administrator")
	}
}

func TestDispatchGuildOnly(t *testing.T) {
	c := newTestClient(NewCommand("help", "Help", "utils", func(ctx *CommandContext) error { return nil }))
	api := discordtest.New()

	c.Dispatch(api, nil, discordtest.Invocation{}.Command("help"))
	if content, _ := api.Reply(); content != GuildOnly {
		t.Errorf("reply = %q, want %q", content, GuildOnly)
	}
}

func TestDispatchTypedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", errors.Validation("❌ Invalid color format."), "❌ Invalid color format."},
		{"external", errors.External("❌ An error occurred while banning the user.", stderrors.New("403")), "❌ An error occurred while banning the user."},
		{"untyped", fmt.Errorf("boom"), GenericFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(NewCommand("x", "x", "x", func(ctx *CommandContext) error { return tt.err }))
			api := discordtest.New()

			c.Dispatch(api, nil, discordtest.Invocation{GuildID: "g", Invoker: discordtest.Member("u", "u")}.Command("x"))

			content, ephemeral := api.Reply()
			if content != tt.want || !ephemeral {
				t.Errorf("reply = %q (ephemeral=%v), want %q ephemeral", content, ephemeral, tt.want)
			}
		})
	}
}

func TestDispatchErrorAfterDeferEditsReply(t *testing.T) {
	c := newTestClient(NewCommand("afk", "AFK", "afk", func(ctx *CommandContext) error {
		if err := ctx.Defer(true); err != nil {
			return err
		}
		return errors.External("❌ I don't have permission to change your nickname.", discordtest.Forbidden)
	}))
	api := discordtest.New()

	c.Dispatch(api, nil, discordtest.Invocation{GuildID: "g", Invoker: discordtest.Member("u", "u")}.Command("afk"))

	if got := api.LastEdit(); got != "❌ I don't have permission to change your nickname." {
		t.Errorf("edited reply = %q", got)
	}
	if len(api.Responses) != 1 {
		t.Errorf("responses = %d, want only the deferral", len(api.Responses))
	}
}

func TestDispatchErrorAfterReplyIsPrivateFollowup(t *testing.T) {
	c := newTestClient(NewCommand("post", "Post", "utils", func(ctx *CommandContext) error {
		if err := ctx.Reply("working on it"); err != nil {
			return err
		}
		return errors.Validation("❌ Something was off.")
	}))
	api := discordtest.New()

	c.Dispatch(api, nil, discordtest.Invocation{GuildID: "g", ChannelID: "c", Invoker: discordtest.Member("u", "u")}.Command("post"))

	if len(api.Sent) != 0 {
		t.Errorf("error posted to the channel: %+v", api.Sent)
	}
	if len(api.Followups) != 1 {
		t.Fatalf("followups = %d, want 1", len(api.Followups))
	}
	f := api.Followups[0]
	if f.Content != "❌ Something was off." || f.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Errorf("followup = %q (flags %v), want ephemeral error", f.Content, f.Flags)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	c := newTestClient()
	api := discordtest.New()
	c.Dispatch(api, nil, discordtest.Invocation{GuildID: "g", Invoker: discordtest.Member("u", "u")}.Command("nope"))
	if len(api.Responses) != 0 {
		t.Error("unknown command should not be answered")
	}
}

func TestOptionAccessors(t *testing.T) {
	target := discordtest.Member("t1", "target")
	target.Nick = "Tee"
	inv := discordtest.Invocation{
		GuildID: "g",
		Invoker: discordtest.Admin("a", "admin"),
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			discordtest.User("user", "t1"),
			discordtest.String("reason", "spam"),
			discordtest.Int("duration", 30),
			discordtest.Bool("delete_messages", true),
			discordtest.Channel("channel", "c9"),
			discordtest.Role("role", "r7"),
		},
		Resolved: discordtest.Resolve(target),
	}
	ctx := &CommandContext{Session: discordtest.New(), Interaction: inv.Command("x")}

	if u := ctx.GetUserOption("user"); u == nil || u.Username != "target" {
		t.Errorf("GetUserOption() = %+v", u)
	}
	m, err := ctx.GetMemberOption("user")
	if err != nil || m.Nick != "Tee" || m.User.ID != "t1" {
		t.Errorf("GetMemberOption() = %+v, %v", m, err)
	}
	if ctx.GetStringOption("reason") != "spam" || ctx.GetIntOption("duration") != 30 || !ctx.GetBoolOption("delete_messages") {
		t.Error("scalar option mismatch")
	}
	if ch := ctx.GetChannelOption("channel"); ch == nil || ch.ID != "c9" {
		t.Errorf("GetChannelOption() = %+v", ch)
	}
	if r := ctx.GetRoleOption("role"); r == nil || r.ID != "r7" {
		t.Errorf("GetRoleOption() = %+v", r)
	}
	if ctx.HasOption("missing") || ctx.GetStringOption("missing") != "" || ctx.GetUserOption("missing") != nil {
		t.Error("absent option should be empty")
	}
}

type fakeRegistrar struct {
	overwritten map[string][]*discordgo.ApplicationCommand
	existing    []*discordgo.ApplicationCommand
	deleted     []string
}

func (f *fakeRegistrar) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if f.overwritten == nil {
		f.overwritten = map[string][]*discordgo.ApplicationCommand{}
	}
	f.overwritten[appID+"/"+guildID] = cmds
	return cmds, nil
}

func (f *fakeRegistrar) ApplicationCommands(appID, guildID string, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	return f.existing, nil
}

func (f *fakeRegistrar) ApplicationCommandDelete(appID, guildID, cmdID string, _ ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, cmdID)
	return nil
}

func TestRegisterCommandsBulkOverwrite(t *testing.T) {
	c := newTestClient(
		NewCommand("afk", "AFK", "afk", nil),
		NewCommand("help", "Help", "utils", nil),
	)
	c.AppID = "app"
	c.GuildID = "guild"
	reg := &fakeRegistrar{}
	c.CommandHandler.SetRegistrar(reg)

	if err := c.CommandHandler.RegisterCommands(); err != nil {
		t.Fatal(err)
	}
	got := reg.overwritten["app/guild"]
	if len(got) != 2 || got[0].Name != "afk" || got[1].Name != "help" {
		t.Errorf("bulk overwrite = %+v", got)
	}
}

func TestRegisterCommandsNeedsAppID(t *testing.T) {
	c := newTestClient()
	c.CommandHandler.SetRegistrar(&fakeRegistrar{})
	if err := c.CommandHandler.RegisterCommands(); err == nil {
		t.Error("RegisterCommands without an application id should fail")
	}
}

func TestUnregisterCommands(t *testing.T) {
	c := newTestClient()
	c.AppID = "app"
	reg := &fakeRegistrar{existing: []*discordgo.ApplicationCommand{{ID: "1", Name: "old"}, {ID: "2", Name: "older"}}}
	c.CommandHandler.SetRegistrar(reg)

	if err := c.CommandHandler.UnregisterCommands("guild"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1", "2"}, reg.deleted); diff != "" {
		t.Errorf("deleted mismatch (-want +got):\n%s", diff)
	}
}

func TestIsMissingPermissions(t *testing.T) {
	if !IsMissingPermissions(discordtest.Forbidden) {
		t.Error("Forbidden should be a missing-permissions error")
	}
	if !IsMissingPermissions(fmt.Errorf("rename: %w", discordtest.Forbidden)) {
		t.Error("wrapped Forbidden should be detected")
	}
	if IsMissingPermissions(stderrors.New("timeout")) {
		t.Error("plain error is not a permissions error")
	}
}

func TestUserTag(t *testing.T) {
	if got := UserTag(&discordgo.User{Username: "bob", Discriminator: "0"}); got != "bob" {
		t.Errorf("UserTag() = %q", got)
	}
	if got := UserTag(&discordgo.User{Username: "bob", Discriminator: "1234"}); got != "bob#1234" {
		t.Errorf("UserTag() = %q", got)
	}
}
