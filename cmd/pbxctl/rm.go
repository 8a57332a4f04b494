package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/pbx"
)

var (
	rmCascade bool
	rmDryRun  bool
)

func init() {
	cmd := newRmCmd()
	cmd.Flags().BoolVarP(&rmCascade, "cascade", "r", false, "Also remove dependent objects and drop references to the removed ones")
	cmd.Flags().BoolVarP(&rmDryRun, "dry-run", "n", false, "Show what would be removed without writing")
	rootCmd.AddCommand(cmd)
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project> <id>...",
		Short: "Remove objects from a project",
		Long: `The rm command removes objects by identifier. Without --cascade an
object that is still referenced is not removed. With --cascade references
to it are dropped from lists, objects that cannot exist without it (such
as the build files of a removed file) are removed too, and so are the
objects only it referred to.

All removals succeed or the project is left unchanged.

Example:
  pbxctl rm App.xcodeproj 0A0000000000000000000027 --cascade
  pbxctl rm App.xcodeproj 0A0000000000000000000051 -r --dry-run`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(args)
		},
	}
}

func runRm(args []string) error {
	path, g, err := openProject(args[0])
	if err != nil {
		return err
	}

	ed := newEditor(g)
	var removed []pbx.ID
	for _, arg := range args[1:] {
		id := pbx.ID(arg)
		if len(removed) > 0 && !g.Has(id) {
			continue // taken by an earlier cascade
		}
		gone, err := ed.Remove(id, rmCascade)
		if err != nil {
			return err
		}
		removed = append(removed, gone...)
	}

	if !rmDryRun {
		if err := save(path, g); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"file": path, "removed": removed, "dryRun": rmDryRun})
	}
	verb := "Removed"
	if rmDryRun {
		verb = "Would remove"
	}
	printInfo("%s %d objects\n", verb, len(removed))
	for _, id := range removed {
		printVerbose("  %s\n", id)
	}
	return nil
}
