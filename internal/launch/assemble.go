package launch

import (
	"strings"

	"github.com/kestrel-mc/corelaunch/internal/auth"
	"github.com/kestrel-mc/corelaunch/internal/descriptor"
	"github.com/kestrel-mc/corelaunch/internal/profiles"
)

const (
	defaultLauncherName    = "corelaunch"
	defaultLauncherVersion = "0.1.0"
	defaultWidth           = "1920"
	defaultHeight          = "1080"
)

// assembleCommand builds the full java argv for one launch: JVM flags,
// main class, game flags, in that order, exactly the segments the
// process is invoked with.
func assembleCommand(opts *Options, gameDir, binDir, assetsRoot, loggingPath string) []string {
	width, height, hasCustomResolution := resolution(opts.Profile)
	ctx := descriptor.LaunchEvalContext(hasCustomResolution)

	playerName, uuid, accessToken := identity(opts.Account)

	table := buildPlaceholderTable(placeholderValues{
		playerName:      playerName,
		gameVersion:     opts.Version.GameVersion,
		gameDirectory:   gameDir,
		assetsRoot:      assetsRoot,
		assetsIndexName: assetsIndexName(opts.Version.Assets.ID),
		uuid:            uuid,
		accessToken:     accessToken,
		versionType:     opts.Version.Type,
		width:           width,
		height:          height,

		binDir:             binDir,
		launcherName:       orDefault(opts.LauncherName, defaultLauncherName),
		launcherVersion:    orDefault(opts.LauncherVersion, defaultLauncherVersion),
		classpath:          buildClasspath(opts.Version.Libs, binDir),
		loggingPath:        loggingPath,
		classpathSeparator: classpathSeparator(),
	})

	gameArgs := table.substitute(selectArguments(opts.Version.Arguments.Game, ctx))
	jvmArgs := table.substitute(selectArguments(opts.Version.Arguments.JVM, ctx))

	jvmArgs = rewriteModulePath(jvmArgs, binDir)
	jvmArgs = appendMemoryFlags(jvmArgs, effectiveMemory(opts.Profile))

	argv := strings.Fields(jvmArgs)
	argv = append(argv, opts.Version.MainClass)
	argv = append(argv, strings.Fields(gameArgs)...)
	return argv
}

func resolution(p profiles.Profile) (width, height string, custom bool) {
	w, h, ok := p.Resolution()
	if !ok {
		return defaultWidth, defaultHeight, false
	}
	return formatUint32(w), formatUint32(h), true
}

// identity resolves the player name/uuid/access token triple from an
// account. A nil account (no one logged in) launches as an anonymous
// guest; this core layer never decides whether that's permitted.
func identity(account *auth.LoggedInAccount) (playerName, uuid, accessToken string) {
	if account == nil {
		return "Player", "00000000-0000-0000-0000-000000000000", "0"
	}
	return account.Profile.Name, account.Profile.ID, account.MinecraftAccessToken()
}

func effectiveMemory(p profiles.Profile) uint16 {
	if p.Memory == 0 {
		return 2
	}
	return p.Memory
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
