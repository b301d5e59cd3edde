// Package cmd implements the command-line interface for playman.
package cmd

import (
	"fmt"
	"strings"

	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/icon"
	"github.com/playman-cli/playman/license"
	"github.com/playman-cli/playman/style"
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(licenseCmd)
}

// licenseCmd provides a parent command for managing the player license key.
var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Manage the player license key stored in the system keyring",
}

func init() {
	licenseCmd.AddCommand(licenseSetCmd)
}

// licenseSetCmd stores a license key in the system keyring.
var licenseSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store a license key in the system keyring",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var key string

		if len(args) >= 1 {
			key = args[0]
		} else {
			prompt := survey.Password{
				Message: "License key:",
			}
			handleErr(survey.AskOne(&prompt, &key, survey.WithValidator(survey.Required)))
		}

		handleErr(license.Set(key))
		fmt.Printf("%s license key stored\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	licenseCmd.AddCommand(licenseShowCmd)

	licenseShowCmd.Flags().BoolP("reveal", "r", false, "Print the key itself instead of a masked form")
}

// licenseShowCmd displays the stored license key.
var licenseShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"get"},
	Short:   "Display the stored license key",
	Run: func(cmd *cobra.Command, args []string) {
		key, err := license.Get()
		handleErr(err)

		if reveal, _ := cmd.Flags().GetBool("reveal"); !reveal {
			key = mask(key)
		}

		fmt.Println(key)
	},
}

func init() {
	licenseCmd.AddCommand(licenseDeleteCmd)
}

// licenseDeleteCmd removes the stored license key.
var licenseDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Remove the license key from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(license.Delete())
		fmt.Printf("%s license key removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}

	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
