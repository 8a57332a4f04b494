package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/pkg/pbxjson"
)

var dumpFormat string

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <project>",
		Short: "Print a project as JSON or YAML",
		Long: `The dump command prints the whole project, objects in file order,
as JSON or YAML.

Example:
  pbxctl dump App.xcodeproj
  pbxctl dump App.xcodeproj --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	_, g, err := openProject(args[0])
	if err != nil {
		return err
	}

	var out []byte
	switch dumpFormat {
	case "json":
		out, err = pbxjson.MarshalIndent(g, "", cfg.Indent)
		out = append(out, '\n')
	case "yaml", "yml":
		out, err = pbxjson.MarshalYAML(g)
	default:
		return fmt.Errorf("unknown format: %s (must be json or yaml)", dumpFormat)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
