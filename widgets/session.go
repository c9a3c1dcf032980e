package widgets

import (
	"os"
	"path/filepath"
	"strings"
)

// CwdWidget shows the working directory: basename normally, the full
// path with a "~" home prefix in raw mode.
type CwdWidget struct{}

func (CwdWidget) Name() string { return "cwd" }

func (CwdWidget) Render(data *SessionData, cfg Config) Output {
	dir, ok := workDir(data)
	if !ok {
		return hidden(50)
	}

	if cfg.Raw {
		return textOutput(shortenHome(dir), 50)
	}
	return textOutput(filepath.Base(dir), 50)
}

// shortenHome replaces the user's home prefix with "~".
func shortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}

// VersionWidget shows the Claude Code version from the payload.
type VersionWidget struct{}

func (VersionWidget) Name() string { return "version" }

func (VersionWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.Version == nil || *data.Version == "" {
		return hidden(50)
	}
	v := *data.Version
	if !cfg.Raw && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return textOutput(v, 50)
}

// SessionIDWidget shows a short session id prefix.
type SessionIDWidget struct{}

func (SessionIDWidget) Name() string { return "session-id" }

func (SessionIDWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.SessionID == nil || *data.SessionID == "" {
		return hidden(50)
	}
	id := *data.SessionID
	if !cfg.Raw && len(id) > 8 {
		id = id[:8]
	}
	return textOutput(id, 50)
}

// VimModeWidget shows the editor mode whenever vim keybindings are
// active. An empty mode displays as NORMAL.
type VimModeWidget struct{}

func (VimModeWidget) Name() string { return "vim-mode" }

func (VimModeWidget) Render(data *SessionData, _ Config) Output {
	if data == nil || data.Vim == nil {
		return hidden(95)
	}
	mode := "NORMAL"
	if data.Vim.Mode != nil && *data.Vim.Mode != "" {
		mode = *data.Vim.Mode
	}
	return textOutput(mode, 95)
}

// AgentNameWidget shows the running subagent's name.
type AgentNameWidget struct{}

func (AgentNameWidget) Name() string { return "agent-name" }

func (AgentNameWidget) Render(data *SessionData, _ Config) Output {
	if data == nil || data.Agent == nil || data.Agent.Name == nil || *data.Agent.Name == "" {
		return hidden(50)
	}
	return textOutput(*data.Agent.Name, 50)
}

// OutputStyleWidget shows the active output style, hidden for the
// default style since it carries no signal.
type OutputStyleWidget struct{}

func (OutputStyleWidget) Name() string { return "output-style" }

func (OutputStyleWidget) Render(data *SessionData, _ Config) Output {
	if data == nil || data.OutputStyle == nil || data.OutputStyle.Name == nil {
		return hidden(30)
	}
	name := *data.OutputStyle.Name
	if name == "" || name == "default" {
		return hidden(30)
	}
	return textOutput(name, 30)
}
