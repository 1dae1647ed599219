package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"

	"github.com/TambayanDev/TambayanBot/internal/app/apptest"
)

func TestRegisterAllCommandTable(t *testing.T) {
	h := apptest.New(t)
	RegisterAll(h.Client, h.State)

	var names []string
	admin := map[string]bool{}
	for _, def := range h.Client.CommandHandler.Definitions() {
		names = append(names, def.Name)
		if def.DefaultMemberPermissions != nil && *def.DefaultMemberPermissions == discordgo.PermissionAdministrator {
			admin[def.Name] = true
		}
		if def.DMPermission == nil || *def.DMPermission {
			t.Errorf("/%s should be guild-only", def.Name)
		}
	}

	want := []string{
		"test", "setwelcome",
		"post", "report", "help",
		"ban", "timeout", "kick", "warn",
		"afk", "afk-remove", "config-afk",
		"blacklist", "whitelist",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("command names (-want +got):\n%s", diff)
	}

	public := map[string]bool{"afk": true, "report": true, "help": true}
	for _, name := range names {
		if admin[name] == public[name] {
			t.Errorf("/%s admin gate = %v, want %v", name, admin[name], !public[name])
		}
	}
}
