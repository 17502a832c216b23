package orchestrator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kestrel-mc/corelaunch/internal/archive"
	"github.com/kestrel-mc/corelaunch/internal/download"
	hashpkg "github.com/kestrel-mc/corelaunch/internal/hash"
	"github.com/kestrel-mc/corelaunch/internal/loaders"
)

// moddedDescriptorDownloadable is the Forge/NeoForge "download" for a
// modded descriptor: there's no version.json to GET directly, so the
// entire fetch is a custom procedure that downloads the loader's
// installer jar and pulls the descriptor out of it.
type moddedDescriptorDownloadable struct {
	loader       loaders.Loader
	installerURL string
	outPath      string
	binDir       string
	javaPath     string
	httpClient   *http.Client
}

func (d moddedDescriptorDownloadable) DownloadURL() string                 { return download.AboutBlank }
func (d moddedDescriptorDownloadable) FilePath(string) string               { return d.outPath }
func (d moddedDescriptorDownloadable) Hash() (hashpkg.FileHash, bool)       { return hashpkg.FileHash{}, false }
func (d moddedDescriptorDownloadable) Size() (int64, bool)                 { return 0, false }
func (d moddedDescriptorDownloadable) RequiresCustomDownload() bool         { return true }

func (d moddedDescriptorDownloadable) CustomDownload(ctx context.Context, gameVersion string) error {
	installerPath, err := downloadToTemp(ctx, d.httpClient, d.installerURL, string(d.loader)+"-installer-*.jar")
	if err != nil {
		return fmt.Errorf("orchestrator: downloading %s installer: %w", d.loader, err)
	}
	defer os.Remove(installerPath)

	if err := os.MkdirAll(filepath.Dir(d.outPath), 0o755); err != nil {
		return fmt.Errorf("orchestrator: creating descriptor directory: %w", err)
	}
	if err := archive.ExtractEntry(installerPath, "version.json", d.outPath, nil); err != nil {
		return fmt.Errorf("orchestrator: extracting version.json from %s installer: %w", d.loader, err)
	}

	if d.loader != loaders.Forge {
		return nil
	}

	// Forge's installer doesn't ship a ready-to-run client jar the way
	// NeoForge's descriptor does; it patches one in place against a
	// profile directory. This drives the installer's --installClient
	// mode against a throwaway staging directory and copies whatever
	// client jar it produces into bin/. Re-implementing the binary patch
	// format directly is future work.
	staging, err := os.MkdirTemp("", "forge-install-*")
	if err != nil {
		return fmt.Errorf("orchestrator: creating forge staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := os.WriteFile(filepath.Join(staging, "launcher_profiles.json"), []byte("{}"), 0o644); err != nil {
		return fmt.Errorf("orchestrator: writing dummy launcher_profiles.json: %w", err)
	}

	javaPath := d.javaPath
	if javaPath == "" {
		javaPath = "java"
	}
	cmd := exec.CommandContext(ctx, javaPath, "-jar", installerPath, "--installClient", staging)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("orchestrator: forge installer failed: %w: %s", err, out)
	}

	clientJar, err := findGeneratedClientJar(staging)
	if err != nil {
		return fmt.Errorf("orchestrator: locating forge-generated client jar: %w", err)
	}
	if err := os.MkdirAll(d.binDir, 0o755); err != nil {
		return fmt.Errorf("orchestrator: creating %s: %w", d.binDir, err)
	}
	if err := copyFile(clientJar, filepath.Join(d.binDir, gameVersion+".jar")); err != nil {
		return fmt.Errorf("orchestrator: copying forge client jar: %w", err)
	}
	return nil
}

func downloadToTemp(ctx context.Context, client *http.Client, url, pattern string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// findGeneratedClientJar walks a Forge installer's staging directory for
// the client jar it produced under versions/<id>/<id>.jar, skipping any
// auxiliary "-sources"/"-universal"/"-installer" jars it also drops there.
func findGeneratedClientJar(staging string) (string, error) {
	var found string
	err := filepath.WalkDir(filepath.Join(staging, "versions"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".jar") {
			return nil
		}
		if strings.Contains(name, "-sources") || strings.Contains(name, "-universal") || strings.Contains(name, "-installer") {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil && !strings.Contains(err.Error(), "no such file") {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no client jar found under %s/versions", staging)
	}
	return found, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
