// Command corelaunch is a minimal demonstration harness for the launcher
// core: it builds one profile from flags, drives a single launch(profile)
// call through internal/orchestrator, and renders the resulting Status
// stream with a Bubble Tea progress bar. It is not the GUI the core
// excludes from its scope — no wizard, no home screen, no account
// management — just enough to prove the core is driveable end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/kestrel-mc/corelaunch/internal/auth"
	"github.com/kestrel-mc/corelaunch/internal/config"
	"github.com/kestrel-mc/corelaunch/internal/corelog"
	"github.com/kestrel-mc/corelaunch/internal/download"
	"github.com/kestrel-mc/corelaunch/internal/java"
	"github.com/kestrel-mc/corelaunch/internal/launch"
	"github.com/kestrel-mc/corelaunch/internal/loaders"
	"github.com/kestrel-mc/corelaunch/internal/manifest"
	"github.com/kestrel-mc/corelaunch/internal/orchestrator"
	"github.com/kestrel-mc/corelaunch/internal/paths"
	"github.com/kestrel-mc/corelaunch/internal/profiles"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorAccent  = lipgloss.Color("#34D399")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#626262")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(colorPrimary).Padding(0, 1)
	stepStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

func main() {
	var (
		gameVersion  = flag.String("version", "latest-release", "game version, or a symbolic name (latest-release, latest-snapshot)")
		loaderName   = flag.String("loader", "", "mod loader: fabric, quilt, forge, neoforge (empty = vanilla)")
		loaderVer    = flag.String("loader-version", "", "mod loader version, or a symbolic name (latest-stable, latest-beta)")
		dir          = flag.String("dir", "", "launcher data directory (defaults to the platform standard location)")
		width        = flag.Uint("width", 854, "game window width")
		height       = flag.Uint("height", 480, "game window height")
		memory       = flag.Uint("memory", 4, "memory allocation in GB")
	)
	flag.Parse()

	logger := corelog.New(os.Stderr, "corelaunch")

	layout := paths.Default("corelaunch")
	if *dir != "" {
		layout = paths.New(*dir)
	}
	if err := layout.EnsureDirs(); err != nil {
		fmt.Fprintln(os.Stderr, "corelaunch:", err)
		os.Exit(1)
	}

	cfg, err := config.Load(layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "corelaunch: loading config:", err)
		os.Exit(1)
	}

	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 3
	plainClient := httpClient.StandardClient()

	catalog := manifest.NewCatalog(plainClient, layout.VanillaManifestCache(), logger)
	registry := loaders.NewRegistry(
		loaders.NewFabricFetcher(plainClient),
		loaders.NewQuiltFetcher(plainClient),
		loaders.NewForgeFetcher(plainClient),
		loaders.NewNeoForgeFetcher(plainClient),
	)
	engine := download.NewEngine(8, logger)

	accountData, err := auth.Load(layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "corelaunch: loading accounts:", err)
		os.Exit(1)
	}
	accounts := auth.NewStore(*accountData)

	orch := orchestrator.New(layout, catalog, registry, engine, accounts, logger)

	profile := profiles.NewProfile("corelaunch-demo", loaders.Loader(*loaderName), *gameVersion, profiles.DefaultIcon)
	profile.ModLoaderVersion = *loaderVer
	profile.Memory = uint16(memory32(*memory))
	w, h := uint32(*width), uint32(*height)
	profile.Width, profile.Height = &w, &h
	profile.MCDirectory = layout.Base

	javaPath := cfg.JavaPath
	if javaPath == "" {
		if best := java.NewDetector().FindBest(8); best != nil {
			javaPath = best.Path
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newModel(orch, profile, javaPath)
	p := tea.NewProgram(m)

	go m.run(ctx, p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "corelaunch:", err)
		os.Exit(1)
	}
}

func memory32(gb uint) uint {
	if gb == 0 {
		return 4
	}
	return gb
}

type statusMsg launch.Status

type failMsg struct{ err error }

type model struct {
	orch    *orchestrator.Orchestrator
	profile profiles.Profile
	java    string

	bar     progress.Model
	step    string
	message string
	logs    []string
	done    bool
	err     error
}

func newModel(orch *orchestrator.Orchestrator, profile profiles.Profile, java string) *model {
	return &model{
		orch:    orch,
		profile: profile,
		java:    java,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
	}
}

// run drives the orchestrator and forwards its Status stream into the
// Bubble Tea program as messages; it owns the channel, not Update, since
// LaunchGame blocks until the process is spawned before returning one.
func (m *model) run(ctx context.Context, p *tea.Program) {
	statusCh, err := m.orch.LaunchGame(ctx, orchestrator.LaunchRequest{Profile: m.profile, JavaPath: m.java})
	if err != nil {
		p.Send(failMsg{err: err})
		return
	}
	for status := range statusCh {
		p.Send(statusMsg(status))
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case statusMsg:
		m.step = msg.Step
		m.message = msg.Message
		if msg.LogLine != nil {
			line := fmt.Sprintf("[%s] %s", msg.LogLine.Type, msg.LogLine.Text)
			m.logs = append(m.logs, line)
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		if msg.Error != nil {
			m.err = msg.Error
			return m, tea.Quit
		}
		if msg.IsComplete {
			m.done = true
		}
		cmd := m.bar.IncrPercent(0.12)
		return m, cmd
	case failMsg:
		m.err = msg.err
		return m, tea.Quit
	case progress.FrameMsg:
		newModel, cmd := m.bar.Update(msg)
		m.bar = newModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *model) View() string {
	title := titleStyle.Render(fmt.Sprintf("corelaunch — %s", m.profile.VersionName))
	body := title + "\n\n"
	if m.err != nil {
		return body + errStyle.Render("error: "+m.err.Error()) + "\n"
	}
	body += m.bar.View() + "\n"
	body += stepStyle.Render(fmt.Sprintf("%s: %s", m.step, m.message)) + "\n\n"
	for _, line := range m.logs {
		body += stepStyle.Render(line) + "\n"
	}
	if m.done {
		body += "\n" + doneStyle.Render("launched — press q to exit")
	}
	return body
}
