package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/edit"
	"github.com/joshuapare/pbxkit/pbx/walker"
)

var orphansPrune bool

func init() {
	cmd := newOrphansCmd()
	cmd.Flags().BoolVar(&orphansPrune, "prune", false, "Remove the orphans and write the project")
	rootCmd.AddCommand(cmd)
}

func newOrphansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans <project>",
		Short: "List objects unreachable from the root project",
		Long: `The orphans command lists the objects that nothing reachable from the
root project refers to. Merge conflicts and hand edits commonly leave
them behind; Xcode ignores them.

Example:
  pbxctl orphans App.xcodeproj
  pbxctl orphans App.xcodeproj --prune`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrphans(args)
		},
	}
}

type orphanInfo struct {
	ID   pbx.ID  `json:"id"`
	ISA  pbx.ISA `json:"isa"`
	Name string  `json:"name,omitempty"`
}

func runOrphans(args []string) error {
	path, g, err := openProject(args[0])
	if err != nil {
		return err
	}

	ids := walker.Unreachable(g)
	infos := make([]orphanInfo, 0, len(ids))
	for _, id := range ids {
		o, _ := g.Object(id)
		infos = append(infos, orphanInfo{ID: id, ISA: o.ISA(), Name: objectName(o)})
	}

	var removed []pbx.ID
	if orphansPrune && len(ids) > 0 {
		if removed, err = prune(g, ids); err != nil {
			return err
		}
		if err := save(path, g); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"file": path, "orphans": infos, "removed": removed})
	}
	if len(infos) == 0 {
		printInfo("No orphans\n")
		return nil
	}
	for _, o := range infos {
		printInfo("%s  %-32s %s\n", o.ID, o.ISA, o.Name)
	}
	if orphansPrune {
		printInfo("\nRemoved %d objects\n", len(removed))
	}
	return nil
}

// prune removes ids. Removing an orphan takes the objects only it refers to
// along, so the loop retries until no further orphan can go.
func prune(g *pbx.Graph, ids []pbx.ID) ([]pbx.ID, error) {
	ed := newEditor(g)
	var removed []pbx.ID
	pending := ids
	for len(pending) > 0 {
		var next []pbx.ID
		var lastErr error
		for _, id := range pending {
			if !g.Has(id) {
				continue
			}
			gone, err := ed.Remove(id, true)
			switch {
			case err == nil:
				removed = append(removed, gone...)
			case errors.Is(err, edit.ErrRequired), errors.Is(err, edit.ErrReferenced):
				next = append(next, id)
				lastErr = err
			default:
				return removed, err
			}
		}
		if len(next) == len(pending) {
			return removed, fmt.Errorf("cannot prune %d orphans: %w", len(next), lastErr)
		}
		pending = next
	}
	return removed, nil
}

// objectName returns a display name for o, or "".
func objectName(o pbx.Object) string {
	switch t := o.(type) {
	case pbx.TargetLike:
		return t.Name()
	case pbx.FileLike:
		return t.DisplayName()
	case pbx.BuildPhaseLike:
		return t.DisplayName()
	case *pbx.BuildConfiguration:
		return t.Name()
	}
	return ""
}
