// Package update compares the running version with the latest release.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

// DefaultReleaseURL is the GitHub endpoint describing the latest release.
const DefaultReleaseURL = "https://api.github.com/repos/satishbabariya/forte-go/releases/latest"

// Result is the outcome of an update check.
type Result struct {
	Current   string
	Latest    string
	Available bool
}

// Checker fetches the latest release tag.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a Checker for the project's release feed.
func NewChecker() *Checker {
	return &Checker{
		URL:    DefaultReleaseURL,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Latest returns the tag name of the latest release.
func (c *Checker) Latest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch latest release: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("invalid release response: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release response has no tag")
	}
	return release.TagName, nil
}

// Check compares currentVersion with the latest release.
func (c *Checker) Check(ctx context.Context, currentVersion string) (Result, error) {
	latest, err := c.Latest(ctx)
	if err != nil {
		return Result{}, err
	}
	available, err := Newer(currentVersion, latest)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Current:   currentVersion,
		Latest:    strings.TrimPrefix(latest, "v"),
		Available: available,
	}, nil
}

// Newer reports whether latest is a higher version than current.
func Newer(current, latest string) (bool, error) {
	cur, err := version.NewVersion(current)
	if err != nil {
		return false, fmt.Errorf("invalid version format: %w", err)
	}
	lat, err := version.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("invalid latest version format: %w", err)
	}
	return cur.LessThan(lat), nil
}

// GetDownloadURL returns the download URL for the current platform
func GetDownloadURL(version string) string {
	return fmt.Sprintf("https://github.com/satishbabariya/forte-go/releases/download/v%s/forte-%s-%s",
		strings.TrimPrefix(version, "v"), runtime.GOOS, runtime.GOARCH)
}
