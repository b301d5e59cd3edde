// Package license provides a high-level API for persisting and retrieving the
// player license key from the system keyring.
package license

import (
	"fmt"
	"strings"

	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/options"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.Playman
	user    = "license-key"
)

// Set persists the license key to the system keyring.
func Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("license key must not be empty")
	}
	return keyring.Set(service, user, key)
}

// Get retrieves the license key from the system keyring.
func Get() (string, error) {
	return keyring.Get(service, user)
}

// Delete removes the license key from the system keyring.
func Delete() error {
	return keyring.Delete(service, user)
}

// Inject feeds the stored license key into the process-wide config defaults
// so every subsequent player setup carries it. Absence is not an error; the
// player runs unlicensed.
func Inject() {
	key, err := Get()
	if err != nil || key == "" {
		return
	}
	options.SetDefault("key", key)
}
