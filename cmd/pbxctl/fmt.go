package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pkg/pbxproj"
)

var (
	fmtWrite bool
	fmtCheck bool
	fmtUTF8  bool
)

func init() {
	cmd := newFmtCmd()
	cmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to the project file")
	cmd.Flags().BoolVar(&fmtCheck, "check", false, "Fail if the project file is not in canonical form")
	cmd.Flags().BoolVar(&fmtUTF8, "utf8", false, "Convert UTF-16 and BOM-prefixed files to plain UTF-8")
	rootCmd.AddCommand(cmd)
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <project>",
		Short: "Rewrite a project in Xcode's canonical layout",
		Long: `The fmt command parses a project and serializes it again. Annotations
that no longer match the objects they describe (for example after a hand
edit or a merge) are regenerated; everything else is kept byte for byte.

Example:
  pbxctl fmt App.xcodeproj            # print the result
  pbxctl fmt App.xcodeproj --write    # rewrite in place
  pbxctl fmt App.xcodeproj --check    # exit 1 if the file would change`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args)
		},
	}
}

func runFmt(args []string) error {
	path := projectPath(args[0])
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read project %s: %w", path, err)
	}
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	g, err := pbxproj.Parse(src, opts)
	if err != nil {
		return fmt.Errorf("failed to load project %s: %w", path, err)
	}
	if fmtUTF8 {
		g.Encoding = plist.EncodingUTF8
	}
	out, err := pbxproj.Serialize(g)
	if err != nil {
		return err
	}
	changed := !bytes.Equal(src, out)

	switch {
	case fmtCheck:
		if changed {
			return fmt.Errorf("%s is not in canonical form", path)
		}
		printInfo("%s: ok\n", path)
	case fmtWrite:
		if !changed {
			printInfo("%s: unchanged\n", path)
			return nil
		}
		if err := save(path, g); err != nil {
			return err
		}
		printInfo("%s: formatted\n", path)
	default:
		_, err = os.Stdout.Write(out)
		return err
	}
	return nil
}
