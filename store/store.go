// Package store persists per-option player settings between runs. Values are
// kept string-encoded under their option name and deserialized back to their
// natural type during config normalization.
package store

import (
	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/options"
	"github.com/playman-cli/playman/where"
	"github.com/metafates/gache"
)

// cacher provides an abstracted, disk-backed registry for persisted option values.
var cacher = gache.New[map[string]string](
	&gache.Options{
		Path:       where.Store(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// All returns every persisted option, keyed by option name. A missing or
// unreadable store degrades to an empty mapping.
func All() map[string]string {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return make(map[string]string)
	}
	return cached
}

// Get retrieves one persisted option's encoded value.
func Get(name string) (string, bool) {
	value, ok := All()[name]
	return value, ok
}

// Set persists an option value under its name, encoding it with the same
// scheme normalization uses for decoding.
func Set(name string, value any) error {
	all := All()
	all[name] = options.Serialize(value)
	return cacher.Set(all)
}

// Remove deletes a persisted option. Removing an absent name is a no-op.
func Remove(name string) error {
	all := All()
	if _, ok := all[name]; !ok {
		return nil
	}
	delete(all, name)
	return cacher.Set(all)
}

// Clear wipes the persisted store.
func Clear() error {
	return cacher.Set(make(map[string]string))
}
