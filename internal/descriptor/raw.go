package descriptor

import (
	"encoding/json"
	"fmt"
)

// rawDescriptor mirrors the on-disk JSON document described in §4.H:
// a heterogeneous arguments list, library entries, optional inheritance,
// and the handful of fields that fall back to a parent when absent.
type rawDescriptor struct {
	InheritsFrom          string          `json:"inheritsFrom,omitempty"`
	ID                    string          `json:"id"`
	Time                  string          `json:"time"`
	ReleaseTime           string          `json:"releaseTime"`
	Type                  string          `json:"type,omitempty"`
	MainClass             string          `json:"mainClass,omitempty"`
	ComplianceLevel       *int            `json:"complianceLevel,omitempty"`
	MinimumLauncherVer    *int            `json:"minimumLauncherVersion,omitempty"`
	Arguments             *rawArguments   `json:"arguments,omitempty"`
	AssetIndex            *rawAssetIndex  `json:"assetIndex,omitempty"`
	Downloads             *rawDownloads   `json:"downloads,omitempty"`
	JavaVersion           *rawJavaVersion `json:"javaVersion,omitempty"`
	Libraries             []rawLibrary    `json:"libraries,omitempty"`
	Logging               *rawLogging     `json:"logging,omitempty"`
}

type rawArguments struct {
	Game []rawArgumentEntry `json:"game,omitempty"`
	JVM  []rawArgumentEntry `json:"jvm,omitempty"`
}

// rawArgumentEntry decodes either a bare literal string or an object
// {rules, value} where value is itself a string or an array of strings.
type rawArgumentEntry struct {
	Literal string
	Rules   []rawRule
	Values  []string
}

func (e *rawArgumentEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Literal = s
		return nil
	}
	var obj struct {
		Rules []rawRule       `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("descriptor: decoding argument entry: %w", err)
	}
	e.Rules = obj.Rules

	var single string
	if err := json.Unmarshal(obj.Value, &single); err == nil {
		e.Values = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(obj.Value, &many); err != nil {
		return fmt.Errorf("descriptor: decoding argument value: %w", err)
	}
	e.Values = many
	return nil
}

type rawRule struct {
	Action   string            `json:"action"`
	Os       map[string]string `json:"os,omitempty"`
	Features map[string]bool   `json:"features,omitempty"`
}

type rawAssetIndex struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
}

type rawDownloadArtifact struct {
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	Path string `json:"path,omitempty"`
}

type rawDownloads struct {
	Client         *rawDownloadArtifact `json:"client,omitempty"`
	ClientMappings *rawDownloadArtifact `json:"client_mappings,omitempty"`
	Server         *rawDownloadArtifact `json:"server,omitempty"`
	ServerMappings *rawDownloadArtifact `json:"server_mappings,omitempty"`
}

type rawJavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

type rawLibraryDownloads struct {
	Artifact *rawDownloadArtifact `json:"artifact,omitempty"`
}

type rawLibrary struct {
	Name      string               `json:"name"`
	URL       string               `json:"url,omitempty"`
	Downloads *rawLibraryDownloads `json:"downloads,omitempty"`
	Rules     []rawRule            `json:"rules,omitempty"`
}

type rawLogConfigFile struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
}

type rawLoggingClient struct {
	Argument string           `json:"argument"`
	File     rawLogConfigFile `json:"file"`
	Type     string           `json:"type"`
}

type rawLogging struct {
	Client *rawLoggingClient `json:"client,omitempty"`
}

// rawAssetsIndexFile is the separate assetIndex JSON document (§3
// AssetsIndex), not to be confused with rawAssetIndex (the pointer to it).
type rawAssetsIndexFile struct {
	Objects map[string]struct {
		Hash string `json:"hash"`
		Size int64  `json:"size"`
	} `json:"objects"`
}
