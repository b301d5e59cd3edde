package options

import "fmt"

// Item is one playlist entry of the canonical configuration.
type Item struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	MediaID     string   `json:"mediaid,omitempty"`
	Image       string   `json:"image,omitempty"`
	File        string   `json:"file,omitempty"`
	Sources     []Source `json:"sources,omitempty"`
	Tracks      []Track  `json:"tracks,omitempty"`
	Preload     string   `json:"preload,omitempty"`
}

// Source is one renderable variant of a playlist item.
type Source struct {
	File    string `json:"file,omitempty"`
	Label   string `json:"label,omitempty"`
	Type    string `json:"type,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// Track is a sidecar resource of a playlist item (captions, chapters, thumbnails).
type Track struct {
	File    string `json:"file,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Label   string `json:"label,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// itemFields is the allow-list of top-level legacy option names a single-item
// playlist is synthesized from when no playlist was supplied.
var itemFields = []string{
	"title", "description", "type", "mediaid", "image",
	"file", "sources", "tracks", "preload",
}

// resolvePlaylist establishes the canonical "playlist" field: a non-empty
// []Item, regardless of the shape the caller supplied. A feed object carrying
// its own nested playlist is split into top-level feed metadata ("feedData")
// and the lifted item list.
func resolvePlaylist(cfg Config) {
	items := suppliedItems(cfg)

	if len(items) == 0 {
		items = []Item{synthesizeItem(cfg)}
	}

	cfg["playlist"] = items
}

// Items coerces arbitrary playlist content (an item list, a single item, a
// feed object, or a bare media location) into playlist items. Unrecognized
// content yields nil.
func Items(content any) []Item {
	return suppliedItems(Config{"playlist": content})
}

// suppliedItems interprets whatever the caller put under "playlist".
func suppliedItems(cfg Config) []Item {
	raw, ok := cfg["playlist"]
	if !ok {
		return nil
	}

	if feed, ok := raw.(map[string]any); ok {
		nested, hasNested := feed["playlist"]
		if !hasNested {
			// A bare map is treated as a single flattened item.
			item, ok := itemFrom(feed)
			if !ok {
				return nil
			}
			return []Item{item}
		}
		cfg["feedData"] = feed
		raw = nested
	}

	switch v := raw.(type) {
	case []Item:
		return v
	case Item:
		return []Item{v}
	case string:
		return []Item{{File: v}}
	case []any:
		var items []Item
		for _, entry := range v {
			if item, ok := itemFrom(entry); ok {
				items = append(items, item)
			}
		}
		return items
	case []map[string]any:
		var items []Item
		for _, entry := range v {
			if item, ok := itemFrom(entry); ok {
				items = append(items, item)
			}
		}
		return items
	default:
		return nil
	}
}

// synthesizeItem builds a single playlist item from the allow-listed top-level
// legacy fields present directly on the config. Zero matching fields still
// yield a (blank) item, never an empty playlist.
func synthesizeItem(cfg Config) Item {
	flat := make(map[string]any, len(itemFields))
	for _, field := range itemFields {
		if v, ok := cfg[field]; ok {
			flat[field] = v
		}
	}

	item, _ := itemFrom(flat)
	return item
}

// itemFrom leniently converts a raw playlist entry to an Item. Malformed
// entries degrade to (Item{}, false) rather than failing.
func itemFrom(raw any) (Item, bool) {
	switch v := raw.(type) {
	case Item:
		return v, true
	case *Item:
		if v == nil {
			return Item{}, false
		}
		return *v, true
	case string:
		return Item{File: v}, true
	case map[string]any:
		return Item{
			Title:       stringField(v, "title"),
			Description: stringField(v, "description"),
			Type:        stringField(v, "type"),
			MediaID:     stringField(v, "mediaid"),
			Image:       stringField(v, "image"),
			File:        stringField(v, "file"),
			Sources:     sourcesFrom(v["sources"]),
			Tracks:      tracksFrom(v["tracks"]),
			Preload:     stringField(v, "preload"),
		}, true
	default:
		return Item{}, false
	}
}

func sourcesFrom(raw any) []Source {
	var out []Source
	for _, entry := range anySlice(raw) {
		switch v := entry.(type) {
		case Source:
			out = append(out, v)
		case string:
			out = append(out, Source{File: v})
		case map[string]any:
			out = append(out, Source{
				File:    stringField(v, "file"),
				Label:   stringField(v, "label"),
				Type:    stringField(v, "type"),
				Default: boolField(v, "default"),
			})
		}
	}
	return out
}

func tracksFrom(raw any) []Track {
	var out []Track
	for _, entry := range anySlice(raw) {
		switch v := entry.(type) {
		case Track:
			out = append(out, v)
		case string:
			out = append(out, Track{File: v})
		case map[string]any:
			out = append(out, Track{
				File:    stringField(v, "file"),
				Kind:    stringField(v, "kind"),
				Label:   stringField(v, "label"),
				Default: boolField(v, "default"),
			})
		}
	}
	return out
}

func anySlice(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []Source:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []Track:
		out := make([]any, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	default:
		return []any{v}
	}
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
