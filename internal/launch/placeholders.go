package launch

import (
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/kestrel-mc/corelaunch/internal/descriptor"
)

// placeholderTable is the full set of ${...} tokens the game and JVM
// argument strings may reference, built once per launch and substituted
// simultaneously into both.
type placeholderTable struct {
	pairs   []string // old, new, old, new, ... for strings.NewReplacer
	matcher *ahocorasick.Matcher
}

// buildPlaceholderTable assembles every placeholder this launch can bind,
// from the game-argument vocabulary through the JVM-argument vocabulary.
// The dictionary feeds an Aho-Corasick matcher used as a fast "does this
// string contain any placeholder at all" pre-check; the substitution
// itself runs through strings.Replacer, which already performs a single
// simultaneous left-to-right pass over a fixed old/new pair table.
func buildPlaceholderTable(v placeholderValues) placeholderTable {
	pairs := []string{
		// game
		"${auth_player_name}", v.playerName,
		"${version_name}", v.gameVersion,
		"${game_directory}", v.gameDirectory,
		"${assets_root}", v.assetsRoot,
		"${assets_index_name}", v.assetsIndexName,
		"${auth_uuid}", v.uuid,
		"${auth_access_token}", v.accessToken,
		"${clientid}", "telemetry",
		"${auth_xuid}", "asdf",
		"${user_type}", "msa",
		"${version_type}", v.versionType,
		"${resolution_width}", v.width,
		"${resolution_height}", v.height,
		"${quickPlayPath}", "placeholder",
		"${quickPlaySingleplayer}", "placeholder",
		"${quickPlayMultiplayer}", "placeholder",
		"${quickPlayRealms}", "placeholder",
		// jvm
		"${natives_directory}", v.binDir,
		"${launcher_name}", v.launcherName,
		"${launcher_version}", v.launcherVersion,
		"${classpath}", v.classpath,
		"${logging_path}", v.loggingPath,
		"${classpath_separator}", v.classpathSeparator,
		"${library_directory}", v.binDir,
	}

	keys := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		keys = append(keys, pairs[i])
	}

	return placeholderTable{
		pairs:   pairs,
		matcher: ahocorasick.NewStringMatcher(keys),
	}
}

// substitute applies the table to s, skipping the replace pass entirely
// when the matcher finds none of the placeholder tokens present.
func (t placeholderTable) substitute(s string) string {
	if len(t.matcher.Match([]byte(s))) == 0 {
		return s
	}
	return strings.NewReplacer(t.pairs...).Replace(s)
}

// placeholderValues holds every resolved value the table binds a
// placeholder token to.
type placeholderValues struct {
	playerName      string
	gameVersion     string
	gameDirectory   string
	assetsRoot      string
	assetsIndexName string
	uuid            string
	accessToken     string
	versionType     string
	width           string
	height          string

	binDir             string
	launcherName       string
	launcherVersion    string
	classpath          string
	loggingPath        string
	classpathSeparator string
}

// selectArguments retains the Values of every Argument whose rules all
// match ctx, flattening them into a single space-joined string (matching
// the assembler's "emit unconditionally, space-join" contract — values are
// already space-stripped at descriptor materialization time).
func selectArguments(args []descriptor.Argument, ctx descriptor.EvalContext) string {
	var flat []string
	for _, a := range args {
		if !a.Matches(ctx) {
			continue
		}
		flat = append(flat, a.Values...)
	}
	return strings.Join(flat, " ")
}

// assetsIndexName strips a trailing ".json" suffix from an asset index id,
// if present.
func assetsIndexName(id string) string {
	return strings.TrimSuffix(id, ".json")
}

func formatUint32(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
