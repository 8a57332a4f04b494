package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/edit"
)

var (
	addGroup      string
	addTarget     string
	addSourceTree string
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVarP(&addGroup, "group", "g", "", "Group identifier or name (default: main group)")
	cmd.Flags().StringVarP(&addTarget, "target", "t", "", "Also compile the file in this target's Sources phase")
	cmd.Flags().StringVar(&addSourceTree, "source-tree", pbx.SourceTreeGroup, "What the path is relative to")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <project> <path>",
		Short: "Add a file reference to a group",
		Long: `The add command creates a file reference for path, appends it to a
group and optionally adds it to a target's Sources phase. Set seed in the
config file to make the new identifiers reproducible.

Example:
  pbxctl add App.xcodeproj Extra.swift --group App --target App`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
}

func runAdd(args []string) error {
	path, g, err := openProject(args[0])
	if err != nil {
		return err
	}
	group, err := findGroup(g, addGroup)
	if err != nil {
		return err
	}

	var phase pbx.ID
	if addTarget != "" {
		t, ok := g.TargetByName(addTarget)
		if !ok {
			return fmt.Errorf("no target named %q", addTarget)
		}
		for _, id := range t.BuildPhases() {
			if o, ok := g.Object(id); ok && o.ISA() == pbx.ISASourcesBuildPhase {
				phase = id
				break
			}
		}
		if phase == "" {
			return fmt.Errorf("target %q has no Sources phase", addTarget)
		}
	}

	ed := newEditor(g)
	file, err := ed.AddFile(group, args[1], addSourceTree)
	if err != nil {
		return err
	}
	result := map[string]interface{}{"file": path, "fileRef": file}
	if phase != "" {
		build, err := ed.AddToPhase(phase, file, edit.Append)
		if err != nil {
			return err
		}
		result["buildFile"] = build
	}
	if err := save(path, g); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(result)
	}
	printInfo("Added %s as %s\n", args[1], file)
	if b, ok := result["buildFile"]; ok {
		printInfo("Compiled in %s as %s\n", addTarget, b)
	}
	return nil
}

// findGroup resolves a group by identifier or display name. An empty name
// selects the main group.
func findGroup(g *pbx.Graph, name string) (pbx.ID, error) {
	p := g.RootProject()
	if name == "" {
		return p.MainGroup(), nil
	}
	if o, ok := g.Object(pbx.ID(name)); ok {
		if _, ok := o.(pbx.GroupLike); ok {
			return o.ID(), nil
		}
		return "", fmt.Errorf("%s is a %s, not a group", name, o.ISA())
	}
	var found []pbx.ID
	for _, o := range g.ByISA(pbx.ISAGroup) {
		if o.(pbx.GroupLike).DisplayName() == name {
			found = append(found, o.ID())
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no group named %q", name)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("group name %q is ambiguous: %v", name, found)
	}
}
