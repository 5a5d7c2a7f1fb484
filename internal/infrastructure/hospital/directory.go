package hospital

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Directory maps hospital ids to the base URL of each hospital's backend.
// Lookups are in-memory; Replace swaps the whole table atomically.
type Directory struct {
	mu   sync.RWMutex
	urls map[string]string
}

func NewDirectory(urls map[string]string) (*Directory, error) {
	normalized, err := normalize(urls)
	if err != nil {
		return nil, err
	}
	return &Directory{urls: normalized}, nil
}

// Resolve returns the backend base URL for hospitalID or ErrHospitalNotFound.
func (d *Directory) Resolve(hospitalID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	baseURL, ok := d.urls[strings.ToLower(strings.TrimSpace(hospitalID))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrHospitalNotFound, hospitalID)
	}
	return baseURL, nil
}

// Replace installs a new table. An invalid table is rejected and the
// current one stays in place.
func (d *Directory) Replace(urls map[string]string) error {
	normalized, err := normalize(urls)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.urls = normalized
	d.mu.Unlock()
	return nil
}

// IDs returns the configured hospital ids in sorted order.
func (d *Directory) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.urls))
	for id := range d.urls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func normalize(urls map[string]string) (map[string]string, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("hospital directory is empty")
	}

	normalized := make(map[string]string, len(urls))
	for id, raw := range urls {
		key := strings.ToLower(strings.TrimSpace(id))
		if key == "" {
			return nil, fmt.Errorf("hospital directory has an empty id")
		}

		parsed, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return nil, fmt.Errorf("hospital %q has invalid base url %q", id, raw)
		}
		normalized[key] = strings.TrimRight(parsed.String(), "/")
	}
	return normalized, nil
}
