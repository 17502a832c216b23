package loaders

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ForgeIndexURLTemplate is the per-game-version downloads page Forge
// publishes; it lists every Forge build for that game version in an HTML
// table (no JSON API exists at this layer).
const ForgeIndexURLTemplate = "https://files.minecraftforge.net/net/minecraftforge/forge/index_%s.html"

// forgeVersionRegexp matches a dotted Forge build triple, e.g. "47.2.20".
var forgeVersionRegexp = regexp.MustCompile(`\d+\.\d+\.\d+`)

// ForgeFetcher scrapes the per-game-version Forge downloads table.
type ForgeFetcher struct {
	client *http.Client
}

func NewForgeFetcher(client *http.Client) *ForgeFetcher { return &ForgeFetcher{client: client} }

func (f *ForgeFetcher) Loader() Loader { return Forge }

func (f *ForgeFetcher) Fetch(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error) {
	url := fmt.Sprintf(ForgeIndexURLTemplate, gameVersion)
	doc, err := fetchDocument(ctx, f.client, url)
	if err != nil {
		return nil, fmt.Errorf("loaders: forge: %w", err)
	}

	var out []ModLoaderVersionInfo
	seen := make(map[string]bool)
	doc.Find("table.download-list tr").Each(func(_ int, row *goquery.Selection) {
		versionCell := row.Find("td.download-version").Text()
		match := forgeVersionRegexp.FindString(versionCell)
		if match == "" || seen[match] {
			return
		}
		seen[match] = true
		out = append(out, ModLoaderVersionInfo{
			VersionName: match,
			// Forge publishes no stability flag at this layer; every build
			// is surfaced as Beta, matching the original source.
			Stability:    StabilityBeta,
			InstallerURL: forgeInstallerURL(gameVersion, match),
			Loader:       Forge,
		})
	})
	return out, nil
}

func forgeInstallerURL(gameVersion, forgeVersion string) string {
	full := gameVersion + "-" + forgeVersion
	return fmt.Sprintf(
		"https://maven.minecraftforge.net/net/minecraftforge/forge/%s/forge-%s-installer.jar",
		full, full,
	)
}

// NeoForgeMavenURL is the Maven directory listing NeoForge publishes all
// of its builds under (no per-game-version split upstream; this fetcher
// filters client-side).
const NeoForgeMavenURL = "https://maven.neoforged.net/releases/net/neoforged/neoforge/"

var neoForgeVersionRegexp = regexp.MustCompile(`^\d+\.\d+\.\d+(-beta)?$`)

// NeoForgeFetcher scrapes the NeoForge Maven directory listing and filters
// by the truncated game-version prefix (NeoForge versions drop the leading
// "1." of the Minecraft version they target, e.g. game version "1.20.4"
// corresponds to NeoForge versions prefixed "20.4.").
type NeoForgeFetcher struct {
	client *http.Client
}

func NewNeoForgeFetcher(client *http.Client) *NeoForgeFetcher {
	return &NeoForgeFetcher{client: client}
}

func (f *NeoForgeFetcher) Loader() Loader { return NeoForge }

func (f *NeoForgeFetcher) Fetch(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error) {
	doc, err := fetchDocument(ctx, f.client, NeoForgeMavenURL)
	if err != nil {
		return nil, fmt.Errorf("loaders: neoforge: %w", err)
	}

	prefix := strings.TrimPrefix(gameVersion, "1.") + "."

	var out []ModLoaderVersionInfo
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.HasSuffix(href, "/") {
			return
		}
		version := strings.TrimSuffix(href, "/")
		if !neoForgeVersionRegexp.MatchString(version) {
			return
		}
		if !strings.HasPrefix(version, prefix) {
			return
		}
		stability := StabilityStable
		if strings.HasSuffix(version, "-beta") {
			stability = StabilityBeta
		}
		out = append(out, ModLoaderVersionInfo{
			VersionName:  version,
			Stability:    stability,
			InstallerURL: neoForgeInstallerURL(version),
			Loader:       NeoForge,
		})
	})
	return out, nil
}

func neoForgeInstallerURL(version string) string {
	return fmt.Sprintf(
		"https://maven.neoforged.net/releases/net/neoforged/neoforge/%s/neoforge-%s-installer.jar",
		version, version,
	)
}

func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
