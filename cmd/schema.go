// Package cmd implements the command-line interface for playman.
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/playman-cli/playman/options"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("source", "s", false, "Generate the JSON Schema for playlist item sources")
	schemaCmd.Flags().BoolP("track", "t", false, "Generate the JSON Schema for playlist item tracks")
	schemaCmd.MarkFlagsMutuallyExclusive("source", "track")

	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd generates JSON schemas for the canonical playlist structures.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for canonical playlist structures",
	Long: `Generate the JSON Schema describing a canonical playlist item (the shape emitted
by "run --json" and accepted by remote feeds), or one of its nested structures.`,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "item", "source", "track":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("source")):
			schema = reflector.Reflect(&options.Source{})
		case lo.Must(cmd.Flags().GetBool("track")):
			schema = reflector.Reflect(&options.Track{})
		default:
			schema = reflector.Reflect([]options.Item{})
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
