// Package cache provides localized filesystem-based caching for remote feed
// documents.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/where"
)

const TTL = 24 * time.Hour

func getDir() string {
	dir := filepath.Join(where.Cache(), "feeds")
	_ = filesystem.API().MkdirAll(dir, os.ModePerm)
	return dir
}

// Key generates a deterministic SHA-256 hash from a feed URL for use as a
// cache identifier.
func Key(url string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached document if it exists
// and has not exceeded its TTL.
func Read(key string, target any) bool {
	path := filepath.Join(getDir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write persists a serializable document to the cache using an atomic file
// swap to ensure data integrity.
func Write(key string, data any) error {
	path := filepath.Join(getDir(), key)
	tmpPath := path + ".tmp"

	f, err := filesystem.API().Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired
// cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		dir := getDir()
		entries, err := filesystem.API().ReadDir(dir)
		if err != nil {
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if time.Since(entry.ModTime()) > TTL {
				_ = filesystem.API().Remove(filepath.Join(dir, entry.Name()))
			}
		}
	}()
}
