// SPDX-License-Identifier: Apache-2.0

// Package controller owns the current registry and menu snapshots and glues
// the pipeline together: parse + load on refresh, diff against the rendered
// menu, and terminal launch on selection. It runs single-threaded on the
// presentation host's event loop; snapshots are replaced wholesale, never
// mutated in place, so readers always see a consistent state.
package controller

import (
	"fmt"
	"os/exec"
	"runtime"

	"sshmenu/internal/logger"
	"sshmenu/internal/menu"
	"sshmenu/internal/notify"
	"sshmenu/internal/registry"
	"sshmenu/internal/settings"
	"sshmenu/internal/sshconfig"
	"sshmenu/internal/terminal"
	"sshmenu/internal/util"
)

// PresentationHost is the rendering surface: a tray menu, a TUI, anything
// that can apply menu patches. It delivers user events back by calling the
// controller's handler methods from its event loop.
type PresentationHost interface {
	Render(patches []menu.Patch)
	SetTooltip(tip string)
}

// State tracks what the controller is currently doing. Transitions are
// synchronous; the controller is never left mid-state.
type State int

const (
	// Idle means waiting for an event.
	Idle State = iota
	// Refreshing means re-running the parse/merge/build/diff pipeline.
	Refreshing
	// Launching means a terminal spawn is in flight.
	Launching
)

// Config wires a Controller to its collaborators. Zero-value fields get
// sensible defaults (standard paths, desktop notifications).
type Config struct {
	SSHConfigPath string
	SettingsPath  string
	Host          PresentationHost
	Notify        func(message string)
	OnQuit        func()
}

// Controller implements the event loop glue. All methods must be called
// from the same goroutine (the presentation host's loop).
type Controller struct {
	sshConfigPath string
	settingsPath  string
	host          PresentationHost
	notifyFn      func(string)
	onQuit        func()

	// injectable for tests
	resolveTerminal func(settings.Settings) (terminal.Handle, error)
	launchTerminal  func(terminal.Handle, string) error

	state    State
	settings settings.Settings
	registry []sshconfig.HostEntry
	tree     menu.Node
	rendered bool
}

// New builds a Controller. Call Refresh once to populate the initial menu.
func New(cfg Config) (*Controller, error) {
	if cfg.SSHConfigPath == "" {
		p, err := sshconfig.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.SSHConfigPath = p
	}
	if cfg.SettingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.SettingsPath = p
	}
	if cfg.Notify == nil {
		cfg.Notify = notify.Send
	}
	if cfg.OnQuit == nil {
		cfg.OnQuit = func() {}
	}

	return &Controller{
		sshConfigPath:   cfg.SSHConfigPath,
		settingsPath:    cfg.SettingsPath,
		host:            cfg.Host,
		notifyFn:        cfg.Notify,
		onQuit:          cfg.OnQuit,
		resolveTerminal: terminal.Resolve,
		launchTerminal:  terminal.Launch,
	}, nil
}

// State returns the current controller state.
func (c *Controller) State() State { return c.state }

// Registry returns the current registry snapshot.
func (c *Controller) Registry() []sshconfig.HostEntry { return c.registry }

// Settings returns the current settings snapshot.
func (c *Controller) Settings() settings.Settings { return c.settings }

// Tree returns the currently rendered menu tree.
func (c *Controller) Tree() menu.Node { return c.tree }

// SSHConfigPath returns the SSH config file the controller reads.
func (c *Controller) SSHConfigPath() string { return c.sshConfigPath }

// SettingsPath returns the settings file the controller reads.
func (c *Controller) SettingsPath() string { return c.settingsPath }

// Refresh re-reads both source files and hands the host the patch sequence
// for whatever changed. On failure the previously rendered menu stays up:
// a stale menu beats an empty one when a file is briefly truncated mid-write.
func (c *Controller) Refresh() error {
	if c.state != Idle {
		logger.Warn("refresh ignored", "state", c.state)
		return nil
	}
	c.state = Refreshing
	defer func() { c.state = Idle }()

	parsed, err := sshconfig.Parse(c.sshConfigPath)
	if err != nil {
		logger.Error("ssh config parse failed", "path", c.sshConfigPath, "error", err)
		c.notifyFn(fmt.Sprintf("SSH config error: %v", err))
		return err
	}

	s, err := settings.Load(c.settingsPath)
	if err != nil {
		logger.Error("settings load failed", "path", c.settingsPath, "error", err)
		c.notifyFn(fmt.Sprintf("Settings error: %v", err))
		return err
	}

	reg := registry.Merge(parsed, s)
	tree := menu.Build(reg, s)

	var patches []menu.Patch
	if c.rendered {
		patches = menu.Diff(c.tree, tree)
	} else {
		patches = menu.Diff(menu.Node{ID: menu.RootID, Kind: menu.KindGroup}, tree)
	}

	c.settings = s
	c.registry = reg
	c.tree = tree
	c.rendered = true

	if c.host != nil {
		if len(patches) > 0 {
			c.host.Render(patches)
		}
		c.host.SetTooltip(fmt.Sprintf("sshmenu: %d hosts", len(reg)))
	}
	logger.Info("refreshed", "hosts", len(reg), "patches", len(patches))
	return nil
}

// HandleSelect reacts to a menu item activation. Unknown or stale ids are
// logged and ignored: the registry may have changed between render and
// click, and that is not worth crashing over.
func (c *Controller) HandleSelect(id string) {
	if c.state != Idle {
		logger.Warn("selection ignored", "id", id, "state", c.state)
		return
	}

	switch id {
	case menu.QuitID:
		logger.Info("quit requested")
		c.onQuit()
		return
	case menu.ReloadID:
		_ = c.Refresh()
		return
	case menu.ConfigureID:
		c.configure()
		return
	}

	if alias, ok := menu.HostAlias(id); ok {
		if entry, found := registry.Lookup(c.registry, alias); found {
			c.launch("ssh " + util.ShellQuote(entry.Alias))
			return
		}
		logger.Warn("stale selection, host no longer in registry", "alias", alias)
		return
	}

	if menu.IsActionID(id) {
		if cmd, found := menu.FindAction(c.settings, id); found {
			c.launch(cmd)
			return
		}
		logger.Warn("stale selection, action no longer in settings", "id", id)
		return
	}

	logger.Warn("selection for unknown menu id", "id", id)
}

// launch opens a terminal running command. Fire and forget: the controller
// returns to Idle as soon as the spawn is accepted or rejected.
func (c *Controller) launch(command string) {
	c.state = Launching
	defer func() { c.state = Idle }()

	handle, err := c.resolveTerminal(c.settings)
	if err != nil {
		logger.Error("terminal resolution failed", "error", err)
		c.notifyFn(fmt.Sprintf("Cannot open terminal: %v", err))
		return
	}
	if err := c.launchTerminal(handle, command); err != nil {
		logger.Error("terminal launch failed", "command", command, "error", err)
		c.notifyFn(fmt.Sprintf("Launch failed: %v", err))
		return
	}
	logger.Info("launched", "terminal", handle.Name, "command", command)
}

// terminalEditors are editors that need a terminal window rather than a
// desktop open.
var terminalEditors = map[string]struct{}{
	"nano": {}, "vim": {}, "vi": {}, "nvim": {}, "emacs": {},
	"micro": {}, "ne": {}, "joe": {}, "pico": {}, "ed": {},
}

// configure opens the settings file in the user's editor.
func (c *Controller) configure() {
	editor := c.settings.Editor
	path := c.settingsPath

	switch {
	case editor == "" || editor == settings.Auto:
		if err := openWithDesktop(path); err != nil {
			logger.Error("failed to open settings", "path", path, "error", err)
			c.notifyFn(fmt.Sprintf("Cannot open settings: %v", err))
		}
	default:
		if _, isTerminalEditor := terminalEditors[editor]; isTerminalEditor {
			c.launch(editor + " " + util.ShellQuote(path))
			return
		}
		cmd := exec.Command(editor, path)
		if err := cmd.Start(); err != nil {
			logger.Error("failed to start editor", "editor", editor, "error", err)
			c.notifyFn(fmt.Sprintf("Cannot start %s: %v", editor, err))
			return
		}
		_ = cmd.Process.Release()
	}
}

// openWithDesktop hands a file to the platform's default opener.
func openWithDesktop(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
