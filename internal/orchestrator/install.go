package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrel-mc/corelaunch/internal/archive"
	"github.com/kestrel-mc/corelaunch/internal/descriptor"
	"github.com/kestrel-mc/corelaunch/internal/download"
	hashpkg "github.com/kestrel-mc/corelaunch/internal/hash"
	"github.com/kestrel-mc/corelaunch/internal/paths"
)

// flatDownloadable adapts a resolved (url, destination, optional
// hash/size) triple to download.Downloadable. The descriptor package
// leaves FilePath layout-agnostic (empty, or a relative maven path for
// libraries); this is where those logical locations become the absolute,
// flat paths under the version's bin directory that the launch assembler
// already assumes when it builds the classpath and rewrites the module
// path — library files live at bin/<filename>, never at a nested
// groupId/artifactId/version tree.
type flatDownloadable struct {
	url  string
	path string
	hash *hashpkg.FileHash
	size *int64
}

func (d flatDownloadable) DownloadURL() string { return d.url }
func (d flatDownloadable) FilePath(string) string { return d.path }
func (d flatDownloadable) Hash() (hashpkg.FileHash, bool) {
	if d.hash == nil {
		return hashpkg.FileHash{}, false
	}
	return *d.hash, true
}
func (d flatDownloadable) Size() (int64, bool) {
	if d.size == nil {
		return 0, false
	}
	return *d.size, true
}
func (d flatDownloadable) RequiresCustomDownload() bool                                { return false }
func (d flatDownloadable) CustomDownload(context.Context, string) error { return nil }

func vanillaDescriptorDownloadable(url, sha1, path string) download.Downloadable {
	var hash *hashpkg.FileHash
	if sha1 != "" {
		if h, err := hashpkg.FromHex(hashpkg.SHA1, sha1); err == nil {
			hash = &h
		}
	}
	return flatDownloadable{url: url, path: path, hash: hash}
}

func libraryDownloadables(libs []descriptor.LibraryInfo, binDir string) []download.Downloadable {
	out := make([]download.Downloadable, 0, len(libs))
	for _, lib := range libs {
		out = append(out, flatDownloadable{
			url:  lib.URL,
			path: filepath.Join(binDir, lib.Filename),
			hash: lib.HashVal,
			size: lib.SizeVal,
		})
	}
	return out
}

func assetIndexDownloadable(info descriptor.AssetsIndexInfo, layout paths.Layout) download.Downloadable {
	return flatDownloadable{url: info.URL, path: layout.AssetIndexFile(info.ID), hash: info.HashVal, size: info.SizeVal}
}

func logConfigDownloadable(info descriptor.LogConfigInfo, layout paths.Layout) download.Downloadable {
	if info.ID == "" {
		return nil
	}
	return flatDownloadable{url: info.URL, path: layout.LogConfig(info.ID), hash: info.HashVal, size: info.SizeVal}
}

// assetIndexDocument is the upstream assets/indexes/<id>.json shape: a
// logical asset name mapped to its content hash and byte size.
type assetIndexDocument struct {
	Objects map[string]struct {
		Hash string `json:"hash"`
		Size int64  `json:"size"`
	} `json:"objects"`
}

func assetObjectDownloadables(indexPath string, layout paths.Layout) ([]download.Downloadable, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: reading asset index %s: %w", indexPath, err)
	}
	var doc assetIndexDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("orchestrator: parsing asset index %s: %w", indexPath, err)
	}

	out := make([]download.Downloadable, 0, len(doc.Objects))
	for _, obj := range doc.Objects {
		size := obj.Size
		h, err := hashpkg.FromHex(hashpkg.SHA1, obj.Hash)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: asset object hash %q: %w", obj.Hash, err)
		}
		url := "https://resources.download.minecraft.net/" + obj.Hash[:2] + "/" + obj.Hash
		out = append(out, flatDownloadable{url: url, path: layout.AssetObject(obj.Hash), hash: &h, size: &size})
	}
	return out, nil
}

// installVersion performs §4.M step 5: download every library, the asset
// index and every object it references, the logging config, then extract
// native libraries out of any library whose filename carries the
// platform's natives suffix.
func (o *Orchestrator) installVersion(ctx context.Context, v descriptor.Version) error {
	binDir := o.Layout.BinDir(v.GameVersion)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("orchestrator: creating %s: %w", binDir, err)
	}

	libs := libraryDownloadables(v.Libs, binDir)
	if res, err := o.Engine.FetchAll(ctx, libs, v.GameVersion, nil); err != nil {
		return fmt.Errorf("orchestrator: downloading libraries: %w", err)
	} else if res.Failed > 0 {
		return fmt.Errorf("orchestrator: downloading libraries: %d of %d failed: %w", res.Failed, len(libs), errors.Join(res.Errors...))
	}

	if v.Assets.ID != "" {
		if err := o.Engine.Fetch(ctx, assetIndexDownloadable(v.Assets, o.Layout), v.GameVersion); err != nil {
			return fmt.Errorf("orchestrator: downloading asset index: %w", err)
		}
		objects, err := assetObjectDownloadables(o.Layout.AssetIndexFile(v.Assets.ID), o.Layout)
		if err != nil {
			return err
		}
		if res, err := o.Engine.FetchAll(ctx, objects, v.GameVersion, nil); err != nil {
			return fmt.Errorf("orchestrator: downloading asset objects: %w", err)
		} else if res.Failed > 0 {
			return fmt.Errorf("orchestrator: downloading asset objects: %d of %d failed: %w", res.Failed, len(objects), errors.Join(res.Errors...))
		}
	}

	if logConfig := logConfigDownloadable(v.LogInfo, o.Layout); logConfig != nil {
		if err := o.Engine.Fetch(ctx, logConfig, v.GameVersion); err != nil {
			return fmt.Errorf("orchestrator: downloading logging config: %w", err)
		}
	}

	suffix := archive.HostNativesSuffix()
	for _, lib := range v.Libs {
		if !strings.HasSuffix(lib.Filename, suffix) {
			continue
		}
		archivePath := filepath.Join(binDir, lib.Filename)
		if err := archive.ExtractNativeLibraries(archivePath, binDir, o.log); err != nil {
			return fmt.Errorf("orchestrator: extracting natives from %s: %w", lib.Filename, err)
		}
	}
	return nil
}
