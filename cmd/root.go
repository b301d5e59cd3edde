// Package cmd implements the command-line interface for playman.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/engine"
	"github.com/playman-cli/playman/icon"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/style"
	"github.com/playman-cli/playman/util"
	"github.com/playman-cli/playman/version"
	"github.com/playman-cli/playman/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("engine", "e", "", "Specify the playback engine provider to wire into new players")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("engine", completionProviders))
	lo.Must0(viper.BindPFlag(key.EngineDefault, rootCmd.PersistentFlags().Lookup("engine")))

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Propagate exceptions raised inside event listeners instead of swallowing them")
	lo.Must0(viper.BindPFlag(key.PlayerDebug, rootCmd.PersistentFlags().Lookup("debug")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

func completionProviders(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	registerEngines()

	return lo.Map(engine.Available(), func(p *engine.Provider, _ int) string {
		return p.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

// rootCmd defines the entry point for the playman application.
var rootCmd = &cobra.Command{
	Use:   constant.Playman + " [locations...]",
	Short: "A command-line media player built around embeddable player instances",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line media player built around embeddable player instances"),
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		runCmd.Run(runCmd, args)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
