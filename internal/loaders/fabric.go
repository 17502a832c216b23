package loaders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// FabricMetaURL is the upstream Fabric metadata API base.
const FabricMetaURL = "https://meta.fabricmc.net/v2/versions"

// QuiltMetaURL is the upstream Quilt metadata API base.
const QuiltMetaURL = "https://meta.quiltmc.org/v3/versions"

type fabricLoaderEntry struct {
	Loader struct {
		Separator string `json:"separator"`
		Build     int    `json:"build"`
		Maven     string `json:"maven"`
		Version   string `json:"version"`
		Stable    bool   `json:"stable"`
	} `json:"loader"`
}

// FabricFetcher implements Fetcher against meta.fabricmc.net.
type FabricFetcher struct {
	client *http.Client
}

func NewFabricFetcher(client *http.Client) *FabricFetcher { return &FabricFetcher{client: client} }

func (f *FabricFetcher) Loader() Loader { return Fabric }

func (f *FabricFetcher) Fetch(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error) {
	url := fmt.Sprintf("%s/loader/%s", FabricMetaURL, gameVersion)
	var entries []fabricLoaderEntry
	if err := getJSON(ctx, f.client, url, &entries); err != nil {
		return nil, fmt.Errorf("loaders: fabric: %w", err)
	}
	out := make([]ModLoaderVersionInfo, 0, len(entries))
	for _, e := range entries {
		stability := StabilityBeta
		if e.Loader.Stable {
			stability = StabilityStable
		}
		out = append(out, ModLoaderVersionInfo{
			VersionName:  e.Loader.Version,
			Stability:    stability,
			InstallerURL: fmt.Sprintf("%s/loader/%s/%s/profile/json", FabricMetaURL, gameVersion, e.Loader.Version),
			Loader:       Fabric,
		})
	}
	return out, nil
}

type quiltLoaderEntry struct {
	Loader struct {
		Separator string `json:"separator"`
		Build     int    `json:"build"`
		Maven     string `json:"maven"`
		Version   string `json:"version"`
	} `json:"loader"`
}

// QuiltFetcher implements Fetcher against meta.quiltmc.org. Quilt's API
// carries no explicit stability flag; stability is the absence of "beta"
// in the version string, per the original source.
type QuiltFetcher struct {
	client *http.Client
}

func NewQuiltFetcher(client *http.Client) *QuiltFetcher { return &QuiltFetcher{client: client} }

func (f *QuiltFetcher) Loader() Loader { return Quilt }

func (f *QuiltFetcher) Fetch(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error) {
	url := fmt.Sprintf("%s/loader/%s", QuiltMetaURL, gameVersion)
	var entries []quiltLoaderEntry
	if err := getJSON(ctx, f.client, url, &entries); err != nil {
		return nil, fmt.Errorf("loaders: quilt: %w", err)
	}
	out := make([]ModLoaderVersionInfo, 0, len(entries))
	for _, e := range entries {
		stability := StabilityStable
		if strings.Contains(e.Loader.Version, "beta") {
			stability = StabilityBeta
		}
		out = append(out, ModLoaderVersionInfo{
			VersionName:  e.Loader.Version,
			Stability:    stability,
			InstallerURL: fmt.Sprintf("%s/loader/%s/%s/profile/json", QuiltMetaURL, gameVersion, e.Loader.Version),
			Loader:       Quilt,
		})
	}
	return out, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
