// Package cmd implements the command-line interface for playman.
package cmd

import (
	"os"

	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/icon"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(providersCmd)

	providersCmd.Flags().BoolP("raw", "r", false, "Suppress availability markers and the default annotation")
	providersCmd.SetOut(os.Stdout)
}

// providersCmd displays the registered playback engine providers.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Display registered playback engine providers and their availability",
	Run: func(cmd *cobra.Command, args []string) {
		registerEngines()

		raw := lo.Must(cmd.Flags().GetBool("raw"))
		chosen := viper.GetString(key.EngineDefault)

		for _, p := range engine.Available() {
			if raw {
				cmd.Println(p.Name)
				continue
			}

			marker := style.Fg(color.Green)(icon.Get(icon.Success))
			if !p.Ready() {
				marker = style.Fg(color.Red)(icon.Get(icon.Fail))
			}

			line := marker + " " + p.Name
			if p.Name == chosen {
				line += " " + style.Faint("(default)")
			}

			cmd.Println(line)
		}
	},
}
