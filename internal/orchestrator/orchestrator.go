// Package orchestrator implements the one blocking entry point external
// callers drive a launch through: resolve a profile's symbolic
// (game-version, loader, loader-version) triple against the upstream
// catalogs, install it on first use via the content-addressed downloader
// and descriptor materializer, record it in the installed-versions
// ledger, and hand off to the launch assembler and process supervisor.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/kestrel-mc/corelaunch/internal/auth"
	"github.com/kestrel-mc/corelaunch/internal/corelog"
	"github.com/kestrel-mc/corelaunch/internal/descriptor"
	"github.com/kestrel-mc/corelaunch/internal/download"
	"github.com/kestrel-mc/corelaunch/internal/installed"
	"github.com/kestrel-mc/corelaunch/internal/launch"
	"github.com/kestrel-mc/corelaunch/internal/loaders"
	"github.com/kestrel-mc/corelaunch/internal/manifest"
	"github.com/kestrel-mc/corelaunch/internal/paths"
	"github.com/kestrel-mc/corelaunch/internal/profiles"
)

// Orchestrator wires together every component §4.M's orchestration entry
// depends on. One instance is shared across every launch request this
// process serves; nothing here holds per-launch state.
type Orchestrator struct {
	Layout   paths.Layout
	Catalog  *manifest.Catalog
	Loaders  *loaders.Registry
	Engine   *download.Engine
	Accounts *auth.Store

	log *log.Logger
}

// New builds an Orchestrator over the given collaborators. Any of Catalog,
// Loaders, Engine, Accounts may be nil only if the caller never exercises
// the path that needs them (e.g. a Vanilla-only caller can omit Loaders).
func New(layout paths.Layout, catalog *manifest.Catalog, registry *loaders.Registry, engine *download.Engine, accounts *auth.Store, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		Layout:   layout,
		Catalog:  catalog,
		Loaders:  registry,
		Engine:   engine,
		Accounts: accounts,
		log:      corelog.Default(logger),
	}
}

// LaunchRequest is the profile-shaped argument §4.M's launch_game takes:
// the symbolic game version and mod loader selection live on the profile
// already, so this only adds the things a profile doesn't carry.
type LaunchRequest struct {
	Profile  profiles.Profile
	JavaPath string
}

// LaunchGame resolves req.Profile's version triple, installing it first if
// this is the first launch of that triple, then spawns the game process
// and returns immediately — it never blocks on the game's lifetime. The
// returned channel carries the same Status stream launch.Launcher emits;
// the caller is responsible for draining it.
func (o *Orchestrator) LaunchGame(ctx context.Context, req LaunchRequest) (<-chan launch.Status, error) {
	gameManifest, err := o.Catalog.Ensure(ctx)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolving game-version manifest: %w", err)
	}

	gameVersion := gameManifest.Sanitize(req.Profile.VersionName)
	info, ok := gameManifest.Get(gameVersion)
	if !ok {
		return nil, &ProfileError{Profile: req.Profile.Name, Reason: fmt.Sprintf("unknown game version %q", req.Profile.VersionName)}
	}
	gameVersion = info.ID

	loader := req.Profile.ModLoader
	if loader == "" {
		loader = loaders.Vanilla
	}

	var loaderVersion string
	var loaderVersionPtr *string
	if loader != loaders.Vanilla {
		loaderManifest := o.Loaders.For(loader)
		if loaderManifest == nil {
			return nil, &ProfileError{Profile: req.Profile.Name, Reason: fmt.Sprintf("no catalog for loader %q", loader)}
		}
		sanitized, err := loaderManifest.Sanitize(ctx, gameVersion, req.Profile.ModLoaderVersion)
		if err != nil {
			return nil, &ProfileError{Profile: req.Profile.Name, Reason: "resolving loader version", Err: err}
		}
		if sanitized == "" {
			return nil, &ProfileError{Profile: req.Profile.Name, Reason: fmt.Sprintf("loader %q requires a loader version", loader)}
		}
		loaderVersion = sanitized
		loaderVersionPtr = &loaderVersion
	}

	ledger, err := installed.Load(o.Layout)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: loading installed-versions ledger: %w", err)
	}

	firstInstall := !ledger.Contains(gameVersion, loader, loaderVersionPtr)
	if firstInstall {
		if err := o.fetchDescriptors(ctx, info, loader, loaderVersion, req.JavaPath); err != nil {
			return nil, err
		}
	}

	version, err := o.materialize(ctx, gameVersion, loader, loaderVersion)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: materializing descriptor: %w", err)
	}

	if firstInstall {
		if err := o.installVersion(ctx, version); err != nil {
			return nil, err
		}
		ledger.Add(gameVersion, loader, loaderVersionPtr)
		if err := ledger.Save(o.Layout); err != nil {
			return nil, fmt.Errorf("orchestrator: saving installed-versions ledger: %w", err)
		}
	}

	var account *auth.LoggedInAccount
	if o.Accounts != nil {
		if acc, ok := o.Accounts.ActiveAccount(); ok {
			account = &acc
		}
	}

	statusChan := make(chan launch.Status, 16)
	launcher := launch.NewLauncher(&launch.Options{
		Version: version,
		Profile: req.Profile,
		Account: account,
		Layout:  o.Layout,
		JavaPath: req.JavaPath,
	}, statusChan, o.log)

	if err := launcher.Launch(ctx); err != nil {
		close(statusChan)
		return nil, fmt.Errorf("orchestrator: launching: %w", err)
	}
	return statusChan, nil
}

// fetchDescriptors performs §4.M step 3: download the vanilla descriptor,
// and for a modded profile the loader's descriptor: Fabric/Quilt publish it
// at the build's profile-JSON endpoint, Forge/NeoForge ship it as
// version.json inside their installer jar.
func (o *Orchestrator) fetchDescriptors(ctx context.Context, info manifest.GameVersionInfo, loader loaders.Loader, loaderVersion, javaPath string) error {
	vanillaPath := o.Layout.VanillaDescriptor(info.ID)
	if err := o.Engine.Fetch(ctx, vanillaDescriptorDownloadable(info.URL, info.SHA1, vanillaPath), info.ID); err != nil {
		return fmt.Errorf("orchestrator: downloading vanilla descriptor: %w", err)
	}

	if loader == loaders.Vanilla {
		return nil
	}

	loaderManifest := o.Loaders.For(loader)
	versions, err := loaderManifest.GetVersions(ctx, info.ID)
	if err != nil {
		return fmt.Errorf("orchestrator: listing %s builds: %w", loader, err)
	}
	var build *loaders.ModLoaderVersionInfo
	for i := range versions {
		if versions[i].VersionName == loaderVersion {
			build = &versions[i]
			break
		}
	}
	if build == nil {
		return &ProfileError{Reason: fmt.Sprintf("%s build %q not found for game version %s", loader, loaderVersion, info.ID)}
	}

	moddedPath := o.Layout.ModdedDescriptor(info.ID, string(loader), loaderVersion)
	if loader == loaders.Fabric || loader == loaders.Quilt {
		profileJSON := flatDownloadable{url: build.InstallerURL, path: moddedPath}
		if err := o.Engine.Fetch(ctx, profileJSON, info.ID); err != nil {
			return fmt.Errorf("orchestrator: downloading %s %s descriptor: %w", loader, loaderVersion, err)
		}
		return nil
	}
	descriptorDownload := moddedDescriptorDownloadable{
		loader:       loader,
		installerURL: build.InstallerURL,
		outPath:      moddedPath,
		binDir:       o.Layout.BinDir(info.ID),
		javaPath:     javaPath,
		httpClient:   o.Engine.HTTPClient(),
	}
	if err := descriptorDownload.CustomDownload(ctx, info.ID); err != nil {
		return fmt.Errorf("orchestrator: installing %s %s: %w", loader, loaderVersion, err)
	}
	return nil
}

// materialize reads the on-disk descriptor(s) for the triple and merges
// them per §4.H.
func (o *Orchestrator) materialize(ctx context.Context, gameVersion string, loader loaders.Loader, loaderVersion string) (descriptor.Version, error) {
	if loader == loaders.Vanilla {
		return descriptor.Materialize(ctx, vanillaLoader(o.Layout, gameVersion), gameVersion)
	}
	ml := moddedLoader(o.Layout, gameVersion, string(loader), loaderVersion)
	return descriptor.Materialize(ctx, ml, ml.rootID)
}
