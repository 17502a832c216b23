// Package launch assembles a java invocation from a materialized Version
// and launch profile, then spawns and supervises the resulting process.
package launch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kestrel-mc/corelaunch/internal/auth"
	"github.com/kestrel-mc/corelaunch/internal/corelog"
	"github.com/kestrel-mc/corelaunch/internal/descriptor"
	"github.com/kestrel-mc/corelaunch/internal/paths"
	"github.com/kestrel-mc/corelaunch/internal/profiles"
)

// Status is one update in a launch's lifecycle, delivered on the channel
// passed to NewLauncher.
type Status struct {
	Step       string
	Message    string
	IsComplete bool
	Error      error
	LogLine    *LogLine
}

// LogLine is one line of the game process's stdout or stderr.
type LogLine struct {
	Text string
	Type string // "stdout" or "stderr"
}

// Options is everything one launch needs. Version is assumed already
// installed (libraries, assets, and natives extracted by the caller, see
// the orchestration entry); this package only assembles the command line
// and supervises the resulting process.
type Options struct {
	Version descriptor.Version
	Profile profiles.Profile
	// Account is the active Microsoft/Minecraft identity, or nil for an
	// anonymous/offline launch.
	Account *auth.LoggedInAccount
	Layout  paths.Layout

	// JavaPath overrides the "java" found on PATH.
	JavaPath        string
	LauncherName    string
	LauncherVersion string
}

// Launcher assembles and spawns one game process.
type Launcher struct {
	opts       *Options
	statusChan chan<- Status
	log        *log.Logger
}

// NewLauncher builds a Launcher. statusChan may be nil if the caller has
// no interest in progress/log updates.
func NewLauncher(opts *Options, statusChan chan<- Status, logger *log.Logger) *Launcher {
	return &Launcher{opts: opts, statusChan: statusChan, log: corelog.Default(logger)}
}

func (l *Launcher) sendStatus(s Status) {
	if l.statusChan != nil {
		select {
		case l.statusChan <- s:
		default:
		}
	}
}

// Launch assembles the java command line, creates the game directory,
// and starts the process. It returns as soon as the process has started
// — GAME_INSTANCE_COUNT is incremented before Launch returns, and a
// background goroutine blocked on Wait decrements it again on exit,
// delivering the final Status asynchronously. Launch itself never blocks
// on the game's lifetime.
func (l *Launcher) Launch(ctx context.Context) error {
	gameDir, err := resolveGameDirectory(l.opts.Profile.MCDirectory)
	if err != nil {
		return fmt.Errorf("launch: resolving game directory: %w", err)
	}
	if err := os.MkdirAll(gameDir, 0o755); err != nil {
		return fmt.Errorf("launch: creating game directory %s: %w", gameDir, err)
	}

	binDir := l.opts.Layout.BinDir(l.opts.Version.GameVersion)
	assetsRoot := l.opts.Layout.AssetsRoot()
	loggingPath := ""
	if l.opts.Version.LogInfo.ID != "" {
		loggingPath = l.opts.Layout.LogConfig(l.opts.Version.LogInfo.ID)
	}

	argv := assembleCommand(l.opts, gameDir, binDir, assetsRoot, loggingPath)

	javaPath := l.opts.JavaPath
	if javaPath == "" {
		javaPath = "java"
	}

	cmd := exec.CommandContext(ctx, javaPath, argv...)
	cmd.Dir = gameDir
	stdout, _ := cmd.StdoutPipe()
	stderr, _ := cmd.StderrPipe()

	l.sendStatus(Status{Step: "Launching", Message: "starting java"})

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch: starting java: %w", err)
	}
	instanceCount.Add(1)
	l.log.Info("spawned game process", "pid", cmd.Process.Pid, "instances", instanceCount.Load())

	go l.streamLog(stdout, "stdout")
	go l.streamLog(stderr, "stderr")
	go l.awaitExit(cmd)

	l.sendStatus(Status{Step: "Playing", Message: "game running"})
	return nil
}

// awaitExit is the "spawning thread" the supervisor's decrement is
// observed from: it blocks on Wait, then adjusts GAME_INSTANCE_COUNT and
// reports the terminal Status.
func (l *Launcher) awaitExit(cmd *exec.Cmd) {
	err := cmd.Wait()
	instanceCount.Add(-1)
	l.log.Info("game process exited", "pid", cmd.Process.Pid, "instances", instanceCount.Load())

	if err != nil {
		l.sendStatus(Status{Step: "Complete", IsComplete: true, Error: fmt.Errorf("game exited with error: %w", err)})
		return
	}
	l.sendStatus(Status{Step: "Complete", IsComplete: true, Message: "game closed"})
}

func (l *Launcher) streamLog(r io.Reader, kind string) {
	if r == nil {
		return
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := scanner.Text()
		important := kind == "stderr" ||
			strings.Contains(text, "[FATAL]") ||
			strings.Contains(text, "[ERROR]") ||
			strings.Contains(text, "[WARN]") ||
			strings.Contains(text, "Exception")
		if important {
			l.sendStatus(Status{Step: "Launching", LogLine: &LogLine{Text: text, Type: kind}})
		}
		l.log.Debug("game output", "stream", kind, "line", text)
	}
}

// resolveGameDirectory expands the "%appdata%" placeholder a default
// profile's mc_directory carries via the platform's app-config directory;
// any value without that placeholder is used as a literal path.
func resolveGameDirectory(mcDirectory string) (string, error) {
	if !strings.Contains(mcDirectory, "%appdata%") {
		return mcDirectory, nil
	}
	appData, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving %%appdata%%: %w", err)
	}
	return strings.ReplaceAll(mcDirectory, "%appdata%", appData), nil
}
