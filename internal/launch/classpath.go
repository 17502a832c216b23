package launch

import (
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/kestrel-mc/corelaunch/internal/descriptor"
)

// classpathSeparator is ';' on Windows, ':' everywhere else.
func classpathSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// buildClasspath joins every library's flattened on-disk location (every
// library, including the synthetic client jar, is materialized flat under
// the version's bin/ directory — see paths.Layout.BinDir) with the
// platform separator.
func buildClasspath(libs []descriptor.LibraryInfo, binDir string) string {
	entries := make([]string, len(libs))
	for i, lib := range libs {
		entries[i] = filepath.Join(binDir, lib.Filename)
	}
	return strings.Join(entries, classpathSeparator())
}

// modulePathRegex finds the first " -p <list> " or " --module-path <list> "
// span in an assembled JVM argument string; moduleJarRegex then isolates
// each "/name.jar" entry within that span regardless of which separator
// joined them. Only the first span is rewritten, mirroring the upstream
// normalization this guards against (a single NeoForge-style module-path
// argument per launch).
var (
	modulePathRegex = regexp.MustCompile(` -p .+? | --module-path .+? `)
	moduleJarRegex  = regexp.MustCompile(`[\\/][^\\/]+?\.jar`)
)

// rewriteModulePath normalizes a module-path argument's jar entries to
// live under binDir, flattening whatever layout the upstream installer
// assumed. A JVM argument string with no module-path flag is returned
// unchanged.
func rewriteModulePath(jvmArgs, binDir string) string {
	loc := modulePathRegex.FindStringIndex(jvmArgs)
	if loc == nil {
		return jvmArgs
	}
	matched := jvmArgs[loc[0]:loc[1]]
	jars := moduleJarRegex.FindAllString(matched, -1)
	if len(jars) == 0 {
		return jvmArgs
	}

	sep := classpathSeparator()
	var b strings.Builder
	b.WriteString(" -p ")
	for _, jar := range jars {
		b.WriteString(binDir)
		b.WriteString(jar)
		b.WriteString(sep)
	}
	rewritten := strings.TrimSuffix(b.String(), sep) + " "

	return strings.Replace(jvmArgs, matched, rewritten, 1)
}

// appendMemoryFlags appends the -Xms/-Xmx pair sized off the profile's
// memory allocation, in gigabytes.
func appendMemoryFlags(jvmArgs string, memoryGB uint16) string {
	mem := strconv.FormatUint(uint64(memoryGB), 10)
	return jvmArgs + " -Xms" + mem + "G -Xmx" + mem + "G"
}
