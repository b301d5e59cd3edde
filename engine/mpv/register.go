package mpv

import (
	"os/exec"
	"runtime"

	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/key"
	"github.com/spf13/viper"
)

// RegisterProviders wires the external playback backends into the engine
// registry. The mpv binary path comes from configuration so users can point
// at a non-PATH build.
func RegisterProviders() {
	engine.Register(&engine.Provider{
		Name: "mpv",
		Available: func() bool {
			_, err := exec.LookPath(binary())
			return err == nil
		},
		New: func() engine.Engine {
			return New(binary())
		},
	})

	engine.Register(&engine.Provider{
		Name: "iina",
		Available: func() bool {
			if runtime.GOOS != constant.Darwin {
				return false
			}
			_, err := exec.LookPath("open")
			return err == nil
		},
		New: func() engine.Engine {
			return NewIINA()
		},
	})
}

func binary() string {
	if b := viper.GetString(key.EngineBinary); b != "" {
		return b
	}
	return "mpv"
}
