package dictbuild

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// repoOwner/repoName name the upstream jmdict-simplified GitHub project the
// teacher's downloader fetched releases from; the build pipeline reuses the
// same source since it produces the JMdict-shaped JSON spec §6 consumes.
const (
	repoOwner = "scriptin"
	repoName  = "jmdict-simplified"
)

// EnsureJMdictSource checks whether path already exists and, if not,
// discovers the latest jmdict-simplified release from GitHub, downloads its
// English-common asset, and extracts the JSON file to path. This is a build
// pipeline preflight step only: the daemon never performs network I/O for
// dictionary data, only `meikidict build` does.
func EnsureJMdictSource(ctx context.Context, path string) error {
	if fileExists(path) {
		return nil
	}

	fmt.Printf("JMdict source not found at %s. Attempting auto-download...\n", path)

	downloadURL, err := latestReleaseAssetURL(ctx)
	if err != nil {
		return fmt.Errorf("dictbuild: find latest jmdict release: %w", err)
	}

	fmt.Printf("Downloading from %s...\n", downloadURL)
	return downloadAndExtract(ctx, downloadURL, path)
}

func latestReleaseAssetURL(ctx context.Context) (string, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", repoOwner, repoName)
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "meikidict-cli")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var release struct {
		Assets []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, "jmdict-eng-common") &&
			(strings.HasSuffix(asset.Name, ".json.tgz") || strings.HasSuffix(asset.Name, ".json.gz")) {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no suitable jmdict asset found in latest release")
}

func downloadAndExtract(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return fmt.Errorf("no json file found in downloaded archive")
		}
		if err != nil {
			return fmt.Errorf("read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
			continue
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		_, copyErr := io.Copy(outFile, tarReader)
		closeErr := outFile.Close()
		if copyErr != nil {
			return fmt.Errorf("write to file: %w", copyErr)
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
}
