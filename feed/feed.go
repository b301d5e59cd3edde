// Package feed retrieves and decodes remote playlist feeds. A feed is either
// a bare JSON array of playlist items, a single item object, or a feed object
// carrying a nested "playlist" list plus its own metadata.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/playman-cli/playman/internal/cache"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/network"
)

// Parse decodes a feed document. The returned value is placed verbatim under
// the "playlist" config option; config normalization handles the lifting of
// feed metadata and item coercion.
func Parse(r io.Reader) (any, error) {
	var decoded any
	if err := json.NewDecoder(r).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	switch decoded.(type) {
	case map[string]any, []any, string:
		return decoded, nil
	default:
		return nil, fmt.Errorf("feed must be an object or a list, got %T", decoded)
	}
}

// Load fetches and parses a feed from a URL. Documents are cached on disk;
// a fresh cached copy short-circuits the fetch. HTTPS feeds go through the
// browser-fingerprint client since feed CDNs commonly sit behind anti-bot
// challenges; plain HTTP falls back to the shared client.
func Load(url string) (any, error) {
	cacheKey := cache.Key(url)

	var cached any
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	content, err := fetch(url)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(cacheKey, content); err != nil {
		log.Warnf("cache feed %s: %v", url, err)
	}

	return content, nil
}

func fetch(url string) (any, error) {
	if strings.HasPrefix(url, "https://") {
		body, status, err := network.FetchBrowser(http.MethodGet, url, nil, "")
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("feed %s: unexpected status %d", url, status)
		}
		return Parse(strings.NewReader(body))
	}

	resp, err := network.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warnf("close feed body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s: unexpected status %d", url, resp.StatusCode)
	}

	return Parse(resp.Body)
}

// IsFeedURL reports whether a media location looks like a feed document
// rather than a directly playable source.
func IsFeedURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}

	trimmed := url
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}

	return strings.HasSuffix(trimmed, ".json") || strings.HasSuffix(trimmed, ".rss")
}
