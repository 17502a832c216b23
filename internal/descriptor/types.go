// Package descriptor implements the client descriptor materializer: parsing
// a (possibly inherited) JSON descriptor into a fully resolved Version with
// ordered libraries, rule-conditional arguments, an asset index pointer,
// and a logging configuration pointer.
package descriptor

import (
	"context"
	"regexp"

	"github.com/kestrel-mc/corelaunch/internal/download"
	hashpkg "github.com/kestrel-mc/corelaunch/internal/hash"
)

// RuleAction is whether a Rule allows or denies when its condition matches.
type RuleAction int

const (
	Allow RuleAction = iota
	Disallow
)

// ConditionKind tags which single condition a Rule carries.
type ConditionKind int

const (
	CondIsDemoUser ConditionKind = iota
	CondHasCustomResolution
	CondHasQuickPlaySupport
	CondIsQuickPlaySingleplayer
	CondIsQuickPlayMultiplayer
	CondIsQuickPlayRealms
	CondArch
	CondOs
	CondOsVersion
)

// RuleCondition is one of the variants described in §3 RuleCondition, at
// most one per Rule.
type RuleCondition struct {
	Kind     ConditionKind
	Expected bool   // for the six boolean feature/demo-user variants
	Arch     string // x86 | x64 | aarch64, for CondArch
	Os       string // windows | osx | linux, for CondOs
	OsRegex  string // for CondOsVersion
}

// Matches evaluates this condition against ctx.
func (c RuleCondition) Matches(ctx EvalContext) bool {
	switch c.Kind {
	case CondIsDemoUser:
		return ctx.IsDemoUser == c.Expected
	case CondHasCustomResolution:
		return ctx.HasCustomResolution == c.Expected
	case CondHasQuickPlaySupport:
		return ctx.HasQuickPlaySupport == c.Expected
	case CondIsQuickPlaySingleplayer:
		return ctx.IsQuickPlaySingleplayer == c.Expected
	case CondIsQuickPlayMultiplayer:
		return ctx.IsQuickPlayMultiplayer == c.Expected
	case CondIsQuickPlayRealms:
		return ctx.IsQuickPlayRealms == c.Expected
	case CondArch:
		return ctx.Arch == c.Arch
	case CondOs:
		return ctx.Os == c.Os
	case CondOsVersion:
		ok, err := regexp.MatchString(c.OsRegex, ctx.OsVersion)
		return err == nil && ok
	default:
		return false
	}
}

// Rule is (action, optional condition). A rule with no condition matches
// iff action == Allow. A rule with a condition matches iff
// (action == Disallow) XOR condition.Matches(ctx).
type Rule struct {
	Action    RuleAction
	Condition *RuleCondition
}

// Matches implements the XOR-with-modifier evaluation from §3.
func (r Rule) Matches(ctx EvalContext) bool {
	if r.Condition == nil {
		return r.Action == Allow
	}
	modifier := r.Action == Disallow
	return modifier != r.Condition.Matches(ctx)
}

// EvalContext is the feature/host context argument and library rules are
// evaluated under.
type EvalContext struct {
	IsDemoUser              bool
	HasCustomResolution     bool
	HasQuickPlaySupport     bool
	IsQuickPlaySingleplayer bool
	IsQuickPlayMultiplayer  bool
	IsQuickPlayRealms       bool
	Os                      string
	Arch                    string
	OsVersion               string
}

// Argument is (values, rules); it is selected for the launch command iff
// every rule matches under the evaluation context.
type Argument struct {
	Values []string
	Rules  []Rule
}

// Matches reports whether every rule on this argument matches ctx. An
// argument with no rules always matches (it's an unconditional literal).
func (a Argument) Matches(ctx EvalContext) bool {
	for _, r := range a.Rules {
		if !r.Matches(ctx) {
			return false
		}
	}
	return true
}

// Arguments is the game/jvm argument lists of a materialized Version.
type Arguments struct {
	Game []Argument
	JVM  []Argument
}

// LibraryInfo is one resolved library: its download location, optional
// hash/size, destination filename, and the maven-like name used to
// deduplicate during inheritance merge.
type LibraryInfo struct {
	URL      string
	FilePath string
	HashVal  *hashpkg.FileHash
	SizeVal  *int64
	Filename string
	Name     string // groupId:artifactId, for dedup
}

func (l LibraryInfo) DownloadURL() string { return l.URL }
func (l LibraryInfo) Hash() (hashpkg.FileHash, bool) {
	if l.HashVal == nil {
		return hashpkg.FileHash{}, false
	}
	return *l.HashVal, true
}
func (l LibraryInfo) Size() (int64, bool) {
	if l.SizeVal == nil {
		return 0, false
	}
	return *l.SizeVal, true
}
func (l LibraryInfo) RequiresCustomDownload() bool                                { return false }
func (l LibraryInfo) CustomDownload(ctx context.Context, gameVersion string) error { return nil }

// AsDownloadable adapts a LibraryInfo to download.Downloadable (its method
// set already matches except for the FilePath name collision with the
// struct field, resolved via this thin wrapper).
func (l LibraryInfo) AsDownloadable() download.Downloadable { return libraryDownloadable{l} }

type libraryDownloadable struct{ LibraryInfo }

func (l libraryDownloadable) FilePath(string) string { return l.LibraryInfo.FilePath }

// AssetsIndexInfo points at the assetIndex JSON file for a Version.
type AssetsIndexInfo struct {
	ID       string
	URL      string
	FilePath string
	HashVal  *hashpkg.FileHash
	SizeVal  *int64
}

func (a AssetsIndexInfo) AsDownloadable() download.Downloadable { return assetIndexDownloadable{a} }

type assetIndexDownloadable struct{ AssetsIndexInfo }

func (a assetIndexDownloadable) DownloadURL() string    { return a.URL }
func (a assetIndexDownloadable) FilePath(string) string { return a.AssetsIndexInfo.FilePath }
func (a assetIndexDownloadable) Hash() (hashpkg.FileHash, bool) {
	if a.HashVal == nil {
		return hashpkg.FileHash{}, false
	}
	return *a.HashVal, true
}
func (a assetIndexDownloadable) Size() (int64, bool) {
	if a.SizeVal == nil {
		return 0, false
	}
	return *a.SizeVal, true
}
func (a assetIndexDownloadable) RequiresCustomDownload() bool                                { return false }
func (a assetIndexDownloadable) CustomDownload(ctx context.Context, gameVersion string) error { return nil }

// AssetObjectInfo is one entry of the parsed AssetsIndex: a logical asset
// name mapped to its content hash and optional size.
type AssetObjectInfo struct {
	Name     string
	Hash     hashpkg.FileHash
	FilePath string
	SizeVal  int64
}

func (o AssetObjectInfo) AsDownloadable() download.Downloadable { return assetObjectDownloadable{o} }

type assetObjectDownloadable struct{ AssetObjectInfo }

func (o assetObjectDownloadable) DownloadURL() string {
	return "https://resources.download.minecraft.net/" + o.Hash.ToHex()[:2] + "/" + o.Hash.ToHex()
}
func (o assetObjectDownloadable) FilePath(string) string              { return o.AssetObjectInfo.FilePath }
func (o assetObjectDownloadable) Hash() (hashpkg.FileHash, bool)      { return o.AssetObjectInfo.Hash, true }
func (o assetObjectDownloadable) Size() (int64, bool)                 { return o.SizeVal, true }
func (o assetObjectDownloadable) RequiresCustomDownload() bool        { return false }
func (o assetObjectDownloadable) CustomDownload(context.Context, string) error { return nil }

// LogConfigInfo points at the logging config file referenced by a Version.
type LogConfigInfo struct {
	ID       string
	URL      string
	FilePath string
	Argument string // the JVM flag template, e.g. "-Dlog4j.configurationFile=${path}"
	HashVal  *hashpkg.FileHash
	SizeVal  *int64
}

func (l LogConfigInfo) AsDownloadable() download.Downloadable { return logConfigDownloadable{l} }

type logConfigDownloadable struct{ LogConfigInfo }

func (l logConfigDownloadable) DownloadURL() string    { return l.URL }
func (l logConfigDownloadable) FilePath(string) string { return l.LogConfigInfo.FilePath }
func (l logConfigDownloadable) Hash() (hashpkg.FileHash, bool) {
	if l.HashVal == nil {
		return hashpkg.FileHash{}, false
	}
	return *l.HashVal, true
}
func (l logConfigDownloadable) Size() (int64, bool) {
	if l.SizeVal == nil {
		return 0, false
	}
	return *l.SizeVal, true
}
func (l logConfigDownloadable) RequiresCustomDownload() bool                                { return false }
func (l logConfigDownloadable) CustomDownload(ctx context.Context, gameVersion string) error { return nil }

// Version is the materialized client descriptor: everything needed to
// assemble and launch a Java process for one (game-version, loader,
// loader-version) triple.
type Version struct {
	ID          string
	GameVersion string
	MainClass   string
	Type        string
	Arguments   Arguments
	Libs        []LibraryInfo
	Assets      AssetsIndexInfo
	LogInfo     LogConfigInfo
}
