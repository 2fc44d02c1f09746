// Command stupidwm is a minimal tiling window manager for X11.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/nireo/stupidwm/internal/bar"
	"github.com/nireo/stupidwm/internal/config"
	"github.com/nireo/stupidwm/internal/dispatch"
	"github.com/nireo/stupidwm/internal/display"
	"github.com/nireo/stupidwm/internal/focus"
	"github.com/nireo/stupidwm/internal/layout"
	"github.com/nireo/stupidwm/internal/monitor"
	"github.com/nireo/stupidwm/internal/spawner"
	"github.com/nireo/stupidwm/internal/wmstate"
	"github.com/nireo/stupidwm/internal/workspace"
	"github.com/nireo/stupidwm/internal/x11display"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ~/.config/stupidwm/config.yaml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("stupidwm " + version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	layout.Configure(cfg.Gap, cfg.BarHeight)

	surf, err := x11display.Open(cfg.Font)
	if err != nil {
		fatal("open display: %v", err)
	}
	surf.SetLogger(logger)
	defer surf.Close()

	rootRect := rootRectOf(surf)

	monitors := &monitor.Set{}
	if err := monitors.Discover(surf, rootRect); err != nil {
		fatal("discover monitors: %v", err)
	}

	barRenderer := bar.New(surf, cfg.Colors.BarForeground, cfg.Colors.BarBackground)
	for m := monitors.Head; m != nil; m = m.Next {
		barRect := display.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: layout.BarHeight}
		barWin, err := surf.CreateBar(barRect)
		if err != nil {
			logger.Warn("failed to create bar for monitor", "error", err)
			continue
		}
		m.Bar = barWin
	}

	state := &wmstate.State{
		Surf:       surf,
		Monitors:   monitors,
		Workspaces: workspace.New(),
		Focus:      focus.New(surf, cfg.Colors.FocusBorder, cfg.Colors.UnfocusBorder),
		Bar:        barRenderer,
		Spawner:    &spawner.Process{},
		Quit:       &wmstate.QuitFlag{},
		Logger:     logger,
	}

	for m := monitors.Head; m != nil; m = m.Next {
		state.Bar.Paint(m)
	}

	go reapChildren(logger)

	bindings := defaultBindings()
	loop := dispatch.New(state, bindings)

	for _, b := range bindings {
		if b.Keysym == 0 {
			continue
		}
		if err := surf.GrabKey(b.Keysym, b.Modifiers); err != nil {
			logger.Warn("failed to grab key", "keysym", b.Keysym, "error", err)
		}
	}

	if err := loop.Run(); err != nil {
		fatal("event loop: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func rootRectOf(surf *x11display.Surface) display.Rect {
	outputs, err := surf.QueryOutputs()
	if err != nil || len(outputs) == 0 {
		return display.Rect{Width: 1920, Height: 1080}
	}
	return outputs[0].Rect
}

// reapChildren waits for spawned children to exit, preventing zombies.
// This is the one background goroutine in the process: it performs no
// window-manager state mutation, only wait4/WNOHANG reaping, so the
// single-threaded invariant over Client/Workspace/Monitor state holds.
func reapChildren(logger *slog.Logger) {
	sigchld := make(chan os.Signal, 1)
	signal.Notify(sigchld, syscall.SIGCHLD)
	for range sigchld {
		for {
			var status unix.WaitStatus
			pid, err := unix.Wait4(-1, &status, unix.WNOHANG, nil)
			if pid <= 0 || err != nil {
				break
			}
			logger.Debug("reaped child", "pid", pid)
		}
	}
}

// fatal matches the source's die(): a single prefixed line on stdout,
// then a hard exit, bypassing structured logging entirely.
func fatal(format string, args ...any) {
	fmt.Printf("stupid: "+format+"\n", args...)
	os.Exit(1)
}
