package themes

import "testing"

func TestGetKnownTheme(t *testing.T) {
	th := Get("nord")
	if th.Name != "nord" {
		t.Errorf("Name: got %q, want %q", th.Name, "nord")
	}
	c, ok := th.Color("model")
	if !ok || c != "#88c0d0" {
		t.Errorf("Color(model): got %q/%v, want #88c0d0/true", c, ok)
	}
}

func TestGetUnknownThemeFallsBackToDefault(t *testing.T) {
	th := Get("does-not-exist")
	if th.Name != "default" {
		t.Errorf("Name: got %q, want default", th.Name)
	}
	c, ok := th.Color("cost")
	if !ok || c != "yellow" {
		t.Errorf("Color(cost): got %q/%v, want yellow/true", c, ok)
	}
}

func TestNamesCoverRegistry(t *testing.T) {
	names := Names()
	if len(names) != len(registry) {
		t.Fatalf("Names() has %d entries, registry has %d", len(names), len(registry))
	}
	for _, name := range names {
		if _, ok := registry[name]; !ok {
			t.Errorf("Names() lists %q but registry has no such theme", name)
		}
	}
	if names[0] != "default" {
		t.Errorf("first name: got %q, want default", names[0])
	}
}

func TestRoleForWidget(t *testing.T) {
	th := Get("default")

	tests := []struct {
		widgetType string
		want       string
		ok         bool
	}{
		{"model", "cyan", true},
		{"context-percentage", "green", true},
		{"git-branch", "magenta", true},
		{"git-status", "green", true},
		{"session-cost", "yellow", true},
		{"separator", "brightBlack", true},
		{"cwd", "", false},
		{"flex-separator", "", false},
	}
	for _, tt := range tests {
		got, ok := th.RoleForWidget(tt.widgetType)
		if ok != tt.ok || got != tt.want {
			t.Errorf("RoleForWidget(%q): got %q/%v, want %q/%v",
				tt.widgetType, got, ok, tt.want, tt.ok)
		}
	}
}
