// Package cmd implements the command-line interface for playman.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/icon"
	"github.com/playman-cli/playman/style"
	"github.com/playman-cli/playman/util"
	"github.com/playman-cli/playman/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

// pluginsCmd provides a parent command for managing Lua player plugins.
var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Manage installed Lua player plugins",
}

func init() {
	pluginsCmd.AddCommand(pluginsListCmd)

	pluginsListCmd.Flags().BoolP("raw", "r", false, "Suppress the header in the output")
	pluginsListCmd.SetOut(os.Stdout)
}

// pluginsListCmd displays the Lua plugin scripts found in the plugins directory.
var pluginsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display the Lua plugin scripts found in the plugins directory",
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("raw")) {
			cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Installed:"))
		}

		for _, name := range installedPlugins() {
			cmd.Printf("%s %s\n", icon.Get(icon.Lua), name)
		}
	},
}

func installedPlugins() []string {
	entries, err := filesystem.API().ReadDir(where.Plugins())
	if err != nil {
		return nil
	}

	return lo.FilterMap(entries, func(entry os.FileInfo, _ int) (string, bool) {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".lua") {
			return "", false
		}

		return util.FileStem(name), true
	})
}

func init() {
	pluginsCmd.AddCommand(pluginsRemoveCmd)

	pluginsRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Specify the name of the plugin(s) to uninstall")
	lo.Must0(pluginsRemoveCmd.MarkFlagRequired("name"))
	lo.Must0(pluginsRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return installedPlugins(), cobra.ShellCompDirectiveNoFileComp
	}))
}

// pluginsRemoveCmd uninstalls Lua plugin scripts from the plugins directory.
var pluginsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Permanently uninstall specified Lua plugins from the system",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Plugins(), name+".lua")
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	pluginsCmd.AddCommand(pluginsGenCmd)

	pluginsGenCmd.Flags().StringP("name", "n", "", "The display name of the new plugin")
	lo.Must0(pluginsGenCmd.MarkFlagRequired("name"))
}

// pluginsGenCmd scaffolds a boilerplate Lua plugin script.
var pluginsGenCmd = &cobra.Command{
	Use:     "gen",
	Aliases: []string{"new"},
	Short:   "Scaffold a new Lua plugin script using a predefined template",
	Long:    `Generate a boilerplate Lua plugin script exposing the player hook functions.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		var author string
		usr, err := user.Current()
		if err == nil {
			author = usr.Username
		} else {
			author = "Anonymous"
		}

		s := struct {
			Name           string
			Author         string
			PluginAddFn    string
			PluginResizeFn string
		}{
			Name:           lo.Must(cmd.Flags().GetString("name")),
			Author:         author,
			PluginAddFn:    constant.PluginAddFn,
			PluginResizeFn: constant.PluginResizeFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("plugin").Funcs(funcMap).Parse(constant.PluginTemplate)
		handleErr(err)

		target := filepath.Join(where.Plugins(), util.SanitizeFilename(s.Name)+".lua")
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		err = tmpl.Execute(f, s)
		handleErr(err)

		cmd.Println(target)
	},
}
