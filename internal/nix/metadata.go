package nix

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// FlakeMetadata is the subset of `nix flake metadata --json` output used here.
type FlakeMetadata struct {
	Description  string       `json:"description,omitempty"`
	LastModified int64        `json:"lastModified,omitempty"`
	Locked       LockedSource `json:"locked"`
	OriginalURL  string       `json:"originalUrl,omitempty"`
	Path         string       `json:"path"`
	ResolvedURL  string       `json:"resolvedUrl,omitempty"`
	Revision     string       `json:"revision,omitempty"`
	URL          string       `json:"url,omitempty"`
}

// LockedSource is the "locked" attribute set of a flake.
type LockedSource struct {
	LastModified int64  `json:"lastModified,omitempty"`
	NarHash      string `json:"narHash"`
	Owner        string `json:"owner,omitempty"`
	Repo         string `json:"repo,omitempty"`
	Rev          string `json:"rev,omitempty"`
	Type         string `json:"type,omitempty"`
}

// ParseFlakeMetadata decodes `nix flake metadata --json` output.
func ParseFlakeMetadata(data []byte) (*FlakeMetadata, error) {
	var meta FlakeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse flake metadata: %w", err)
	}
	return &meta, nil
}

// LockedURL returns the store path of the flake as a file URL pinned by its
// NAR hash.
func (m *FlakeMetadata) LockedURL() (string, error) {
	if m.Path == "" {
		return "", fmt.Errorf("flake metadata has no store path")
	}
	if m.Locked.NarHash == "" {
		return "", fmt.Errorf("flake metadata for %s has no narHash", m.Path)
	}

	u := url.URL{Scheme: "file", Path: m.Path}
	return u.String() + "?narHash=" + url.QueryEscape(m.Locked.NarHash), nil
}
