// Package cmd implements the command-line interface for playman.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/playman-cli/playman/api"
	"github.com/playman-cli/playman/console"
	"github.com/playman-cli/playman/engine/mpv"
	"github.com/playman-cli/playman/feed"
	"github.com/playman-cli/playman/license"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/options"
	"github.com/playman-cli/playman/plugin"
	"github.com/playman-cli/playman/query"
	"github.com/playman-cli/playman/store"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("provider", "p", "", "Playback engine provider to use for this run")
	lo.Must0(runCmd.RegisterFlagCompletionFunc("provider", completionProviders))

	runCmd.Flags().Int("volume", -1, "Initial volume (0-100)")
	runCmd.Flags().BoolP("mute", "m", false, "Start muted")
	runCmd.Flags().Bool("paused", false, "Do not start playback automatically")
	runCmd.Flags().BoolP("repeat", "r", false, "Restart the playlist when it completes")
	runCmd.Flags().BoolP("fullscreen", "f", false, "Start in fullscreen")
	runCmd.Flags().BoolP("json", "j", false, "Print the canonical player configuration and exit without playing")

	runCmd.SetOut(os.Stdout)
}

// registerEngines makes the process-wide engine providers available. Safe to
// call more than once.
func registerEngines() {
	mpv.RegisterProviders()
}

// runCmd resolves media locations into a player configuration and drives it
// through the interactive dashboard.
var runCmd = &cobra.Command{
	Use:     "run [locations...]",
	Aliases: []string{"play", "open"},
	Short:   "Play media locations, playlists or remote feeds",
	Long: `Set up a player over the given media locations and attach the interactive dashboard to it.
Locations ending in .json or .rss are fetched and interpreted as remote playlist feeds.`,
	Args:    cobra.ArbitraryArgs,
	Example: "  playman run ~/video.mkv https://example.org/feed.json",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := options.Config{}

		if playlist := resolveLocations(args); len(playlist) > 0 {
			cfg["playlist"] = playlist
		}

		if provider := lo.Must(cmd.Flags().GetString("provider")); provider != "" {
			cfg["provider"] = provider
		}
		if volume := lo.Must(cmd.Flags().GetInt("volume")); volume >= 0 {
			cfg["volume"] = volume
		}
		if lo.Must(cmd.Flags().GetBool("mute")) {
			cfg["mute"] = true
		}
		if lo.Must(cmd.Flags().GetBool("repeat")) {
			cfg["repeat"] = true
		}
		if lo.Must(cmd.Flags().GetBool("fullscreen")) {
			cfg["fullscreen"] = true
		}
		cfg["autostart"] = !lo.Must(cmd.Flags().GetBool("paused"))

		if lo.Must(cmd.Flags().GetBool("json")) {
			canonical := options.Normalize(cfg, store.All())

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(canonical))
			return
		}

		CheckDependencies()
		registerEngines()
		license.Inject()

		if err := plugin.RegisterInstalled(); err != nil {
			log.Warn(err)
		}

		player := api.SelectPlayer(api.DefaultElementID)
		player.Setup(cfg)

		for _, location := range args {
			_ = query.Remember(location, 1)
		}

		handleErr(console.Run(&console.Options{Player: player}))
	},
}

// resolveLocations turns command-line arguments into playlist items, expanding
// remote feeds inline. Feeds that fail to load degrade to a logged warning.
func resolveLocations(locations []string) []options.Item {
	var items []options.Item

	for _, location := range locations {
		if !feed.IsFeedURL(location) {
			items = append(items, options.Item{File: location})
			continue
		}

		content, err := feed.Load(location)
		if err != nil {
			log.Warnf("skipping feed %s: %s", location, err)
			continue
		}

		items = append(items, options.Items(content)...)
	}

	return items
}
