package descriptor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kestrel-mc/corelaunch/internal/core"
	hashpkg "github.com/kestrel-mc/corelaunch/internal/hash"
)

// maxInheritanceDepth is the number of inheritsFrom hops tolerated before
// materialization fails: a root descriptor (depth 0) may point at one
// parent (depth 1); that parent pointing at a grandparent (depth 2) is
// rejected.
const maxInheritanceDepth = 1

// Loader fetches the raw bytes of a named descriptor, used to resolve
// inheritsFrom without materialize.go depending on the filesystem layout
// directly.
type Loader interface {
	Load(ctx context.Context, id string) ([]byte, error)
}

// Materialize parses the named descriptor and, following at most one
// inheritsFrom hop, merges it with its parent per §4.H: fields are
// first-or-second-or-missing, arguments concatenate in
// child-literal/child-conditional/parent-literal/parent-conditional order,
// and libraries dedup by groupId:artifactId with the child's entry winning.
func Materialize(ctx context.Context, loader Loader, id string) (Version, error) {
	chain, err := loadChain(ctx, loader, id, 0)
	if err != nil {
		return Version{}, err
	}

	merged := chain[0]
	for _, parent := range chain[1:] {
		merged = mergeDescriptor(merged, parent)
	}

	return toVersion(merged, chain[len(chain)-1].ID)
}

// loadChain loads id and, if it declares inheritsFrom, its parent (and no
// further), returning [child, parent] or just [child].
func loadChain(ctx context.Context, loader Loader, id string, depth int) ([]rawDescriptor, error) {
	data, err := loader.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("descriptor: loading %q: %w", id, err)
	}
	var raw rawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &core.DeserializeError{Source: id, Err: err}
	}
	if raw.InheritsFrom == "" {
		return []rawDescriptor{raw}, nil
	}
	if depth >= maxInheritanceDepth {
		return nil, fmt.Errorf("descriptor: %q inherits beyond the supported depth (max %d)", id, maxInheritanceDepth)
	}
	parentData, err := loader.Load(ctx, raw.InheritsFrom)
	if err != nil {
		return nil, fmt.Errorf("descriptor: loading parent %q of %q: %w", raw.InheritsFrom, id, err)
	}
	var parent rawDescriptor
	if err := json.Unmarshal(parentData, &parent); err != nil {
		return nil, &core.DeserializeError{Source: raw.InheritsFrom, Err: err}
	}
	if parent.InheritsFrom != "" {
		return nil, fmt.Errorf("descriptor: parent %q of %q itself inherits from %q, exceeding depth %d",
			raw.InheritsFrom, id, parent.InheritsFrom, maxInheritanceDepth)
	}
	return []rawDescriptor{raw, parent}, nil
}

// mergeDescriptor combines child over parent: scalar fields use
// first-or-second-or-missing, arguments concatenate child-then-parent (each
// split literal-then-conditional), libraries are merged by mergeLibraries,
// and assetIndex/downloads/javaVersion/logging take the child's value when
// present.
func mergeDescriptor(child, parent rawDescriptor) rawDescriptor {
	out := child
	out.InheritsFrom = ""

	out.MainClass = firstOrSecond(child.MainClass, parent.MainClass)
	out.Type = firstOrSecond(child.Type, parent.Type)

	if child.AssetIndex == nil {
		out.AssetIndex = parent.AssetIndex
	}
	if child.Downloads == nil {
		out.Downloads = parent.Downloads
	}
	if child.JavaVersion == nil {
		out.JavaVersion = parent.JavaVersion
	}
	if child.Logging == nil {
		out.Logging = parent.Logging
	}

	out.Arguments = mergeArguments(child.Arguments, parent.Arguments)
	out.Libraries = mergeLibraries(child.Libraries, parent.Libraries)

	return out
}

func firstOrSecond(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// mergeArguments concatenates in the exact order required by §4.H: the
// child's unconditional (literal) arguments, then the child's conditional
// arguments, then the parent's unconditional arguments, then the parent's
// conditional arguments. Within each bucket, original order is preserved.
func mergeArguments(child, parent *rawArguments) *rawArguments {
	if child == nil && parent == nil {
		return nil
	}
	var childGame, childJVM, parentGame, parentJVM []rawArgumentEntry
	if child != nil {
		childGame, childJVM = child.Game, child.JVM
	}
	if parent != nil {
		parentGame, parentJVM = parent.Game, parent.JVM
	}
	return &rawArguments{
		Game: concatBuckets(childGame, parentGame),
		JVM:  concatBuckets(childJVM, parentJVM),
	}
}

func concatBuckets(child, parent []rawArgumentEntry) []rawArgumentEntry {
	childLit, childCond := splitLiteralConditional(child)
	parentLit, parentCond := splitLiteralConditional(parent)
	out := make([]rawArgumentEntry, 0, len(child)+len(parent))
	out = append(out, childLit...)
	out = append(out, childCond...)
	out = append(out, parentLit...)
	out = append(out, parentCond...)
	return out
}

func splitLiteralConditional(entries []rawArgumentEntry) (lit, cond []rawArgumentEntry) {
	for _, e := range entries {
		if len(e.Rules) == 0 && e.Literal != "" {
			lit = append(lit, e)
		} else {
			cond = append(cond, e)
		}
	}
	return lit, cond
}

// mergeLibraries appends the parent's libraries to the child's, dropping
// any parent library whose groupId:artifactId already appears among the
// child's (the child's declaration wins). Child libraries whose rules deny
// under the host context are discarded first, so they never shadow a
// parent library.
func mergeLibraries(child, parent []rawLibrary) []rawLibrary {
	seen := make(map[string]bool, len(child))
	out := make([]rawLibrary, 0, len(child)+len(parent))
	for _, lib := range child {
		if rules, err := parseRules(lib.Rules); err == nil && !libraryApplies(rules, hostEvalContext()) {
			continue
		}
		if coord, err := parseMavenName(lib.Name); err == nil {
			seen[coord.dedupKey()] = true
		}
		out = append(out, lib)
	}
	for _, lib := range parent {
		coord, err := parseMavenName(lib.Name)
		if err == nil && seen[coord.dedupKey()] {
			continue
		}
		out = append(out, lib)
	}
	return out
}

// toVersion lowers a fully merged rawDescriptor into the evaluated Version,
// parsing rules, resolving library download locations, and appending the
// synthetic client-jar library entry (<gameVersion>.jar) and logging JVM
// argument. gameVersion is the id of the root (vanilla) descriptor of the
// inheritance chain.
func toVersion(raw rawDescriptor, gameVersion string) (Version, error) {
	args, err := toArguments(raw.Arguments)
	if err != nil {
		return Version{}, err
	}

	libs, err := toLibraries(raw.Libraries)
	if err != nil {
		return Version{}, err
	}
	if raw.Downloads != nil && raw.Downloads.Client != nil {
		libs = append(libs, clientJarLibrary(gameVersion, raw.Downloads.Client))
	}

	var assets AssetsIndexInfo
	if raw.AssetIndex != nil {
		assets = AssetsIndexInfo{
			ID:  raw.AssetIndex.ID,
			URL: raw.AssetIndex.URL,
			HashVal: hashPtr(raw.AssetIndex.SHA1),
			SizeVal: sizePtr(raw.AssetIndex.Size),
		}
	}

	var logInfo LogConfigInfo
	if raw.Logging != nil && raw.Logging.Client != nil {
		lc := raw.Logging.Client
		logInfo = LogConfigInfo{
			ID:       lc.File.ID,
			URL:      lc.File.URL,
			Argument: lc.Argument,
			HashVal:  hashPtr(lc.File.SHA1),
			SizeVal:  sizePtr(lc.File.Size),
		}
		args.JVM = append(args.JVM, syntheticLoggingArgument(logInfo))
	}

	return Version{
		ID:          raw.ID,
		GameVersion: gameVersion,
		MainClass:   raw.MainClass,
		Type:        raw.Type,
		Arguments:   args,
		Libs:        libs,
		Assets:      assets,
		LogInfo:     logInfo,
	}, nil
}

func toArguments(raw *rawArguments) (Arguments, error) {
	if raw == nil {
		return Arguments{}, nil
	}
	game, err := toArgumentList(raw.Game)
	if err != nil {
		return Arguments{}, err
	}
	jvm, err := toArgumentList(raw.JVM)
	if err != nil {
		return Arguments{}, err
	}
	return Arguments{Game: game, JVM: jvm}, nil
}

func toArgumentList(entries []rawArgumentEntry) ([]Argument, error) {
	out := make([]Argument, 0, len(entries))
	for _, e := range entries {
		if e.Literal != "" {
			out = append(out, Argument{Values: []string{stripSpaces(e.Literal)}})
			continue
		}
		rules, err := parseRules(e.Rules)
		if err != nil {
			return nil, err
		}
		values := make([]string, len(e.Values))
		for i, v := range e.Values {
			values[i] = stripSpaces(v)
		}
		out = append(out, Argument{Values: values, Rules: rules})
	}
	return out, nil
}

// stripSpaces mirrors map_unconditional_args: argument values are
// ingested with every space character removed, internal ones included.
func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func toLibraries(raw []rawLibrary) ([]LibraryInfo, error) {
	out := make([]LibraryInfo, 0, len(raw))
	for _, lib := range raw {
		rules, err := parseRules(lib.Rules)
		if err != nil {
			return nil, err
		}
		if !libraryApplies(rules, hostEvalContext()) {
			continue
		}
		coord, err := parseMavenName(lib.Name)
		if err != nil {
			return nil, err
		}

		info := LibraryInfo{Filename: coord.filename(), Name: coord.dedupKey()}
		switch {
		case lib.Downloads != nil && lib.Downloads.Artifact != nil:
			a := lib.Downloads.Artifact
			info.URL = a.URL
			info.HashVal = hashPtr(a.SHA1)
			info.SizeVal = sizePtr(a.Size)
			if a.Path != "" {
				info.FilePath = a.Path
			} else {
				info.FilePath = coord.GroupID + "/" + coord.ArtifactID + "/" + coord.Version + "/" + coord.filename()
			}
		default:
			base := lib.URL
			if base == "" {
				base = defaultLibraryBaseURL
			}
			info.URL = coord.plainURL(base)
			info.FilePath = coord.GroupID + "/" + coord.ArtifactID + "/" + coord.Version + "/" + coord.filename()
		}
		out = append(out, info)
	}
	return out, nil
}

func clientJarLibrary(versionID string, artifact *rawDownloadArtifact) LibraryInfo {
	return LibraryInfo{
		URL:      artifact.URL,
		FilePath: versionID + "/" + versionID + ".jar",
		Filename: versionID + ".jar",
		Name:     "net.minecraft:client:" + versionID,
		HashVal:  hashPtr(artifact.SHA1),
		SizeVal:  sizePtr(artifact.Size),
	}
}

// syntheticLoggingArgument rewrites the logging config's ${path} template
// to ${logging_path}, the placeholder name the argument assembler binds to
// the on-disk log config location.
func syntheticLoggingArgument(info LogConfigInfo) Argument {
	value := strings.ReplaceAll(info.Argument, "${path}", "${logging_path}")
	return Argument{Values: []string{value}}
}

func hashPtr(sha1Hex string) *hashpkg.FileHash {
	if sha1Hex == "" {
		return nil
	}
	h, err := hashpkg.FromHex(hashpkg.SHA1, sha1Hex)
	if err != nil {
		return nil
	}
	return &h
}

func sizePtr(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

// hostEvalContext is the conservative context used to drop inapplicable
// libraries at materialization time; os/arch-specific natives libraries for
// other platforms are filtered here rather than carried through to launch.
func hostEvalContext() EvalContext {
	return EvalContext{Os: hostOS(), Arch: hostArch()}
}
