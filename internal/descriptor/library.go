package descriptor

import (
	"fmt"
	"strings"
)

// mavenCoord is a parsed "groupId:artifactId:version[:classifier]" library
// name, used both for dedup during inheritance merge and for synthesizing a
// download URL when a library entry carries no explicit downloads block.
type mavenCoord struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
}

func parseMavenName(name string) (mavenCoord, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return mavenCoord{}, fmt.Errorf("descriptor: malformed library name %q", name)
	}
	c := mavenCoord{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// dedupKey is the groupId:artifactId pair used to decide which of two
// libraries (parent vs child descriptor) wins during inheritance merge.
func (c mavenCoord) dedupKey() string {
	return c.GroupID + ":" + c.ArtifactID
}

func (c mavenCoord) filename() string {
	if c.Classifier != "" {
		return fmt.Sprintf("%s-%s-%s.jar", c.ArtifactID, c.Version, c.Classifier)
	}
	return fmt.Sprintf("%s-%s.jar", c.ArtifactID, c.Version)
}

// plainURL synthesizes the Maven-layout download URL for a library that
// carries no explicit downloads.artifact block: <base>/<group/path>/<artifact>/<version>/<artifact>-<version>[-<classifier>].jar
func (c mavenCoord) plainURL(baseURL string) string {
	groupPath := strings.ReplaceAll(c.GroupID, ".", "/")
	base := strings.TrimSuffix(baseURL, "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s", base, groupPath, c.ArtifactID, c.Version, c.filename())
}

const defaultLibraryBaseURL = "https://libraries.minecraft.net"
