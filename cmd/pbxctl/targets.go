package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/walker"
)

func init() {
	rootCmd.AddCommand(newTargetsCmd())
}

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets <project>",
		Short: "List targets with their phases and dependencies",
		Long: `The targets command lists the project's targets in order, with each
target's build phases, file counts, configurations and the targets it
depends on.

Example:
  pbxctl targets App.xcodeproj
  pbxctl targets App.xcodeproj --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(args)
		},
	}
}

type phaseInfo struct {
	ID    pbx.ID `json:"id"`
	Name  string `json:"name"`
	Files int    `json:"files"`
}

type targetInfo struct {
	ID             pbx.ID      `json:"id"`
	Name           string      `json:"name"`
	ISA            pbx.ISA     `json:"isa"`
	ProductType    string      `json:"productType,omitempty"`
	Phases         []phaseInfo `json:"phases"`
	Dependencies   []string    `json:"dependencies"`
	Configurations []string    `json:"configurations"`
}

func runTargets(args []string) error {
	_, g, err := openProject(args[0])
	if err != nil {
		return err
	}
	infos, err := describeTargets(walker.New(g))
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(infos)
	}
	for _, t := range infos {
		printInfo("%s (%s)\n", t.Name, t.ID)
		if t.ProductType != "" {
			printInfo("  product: %s\n", t.ProductType)
		}
		for _, p := range t.Phases {
			printInfo("  phase %-12s %d files\n", p.Name, p.Files)
		}
		for _, d := range t.Dependencies {
			printInfo("  depends on %s\n", d)
		}
		for _, c := range t.Configurations {
			printInfo("  config %s\n", c)
		}
	}
	return nil
}

func describeTargets(v *walker.View) ([]targetInfo, error) {
	targets, err := v.Targets()
	if err != nil {
		return nil, err
	}
	infos := make([]targetInfo, 0, len(targets))
	for _, t := range targets {
		info := targetInfo{ID: t.ID(), Name: t.Name(), ISA: t.ISA(), Dependencies: []string{}, Configurations: []string{}}
		if n, ok := t.(*pbx.NativeTarget); ok {
			info.ProductType = n.ProductType()
		}

		phases, err := v.Phases(t)
		if err != nil {
			return nil, err
		}
		for _, p := range phases {
			info.Phases = append(info.Phases, phaseInfo{ID: p.ID(), Name: p.DisplayName(), Files: len(p.Files())})
		}

		deps, err := v.Dependencies(t)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			info.Dependencies = append(info.Dependencies, d.Name())
		}

		configs, err := v.Configurations(t)
		if err != nil {
			return nil, err
		}
		for _, c := range configs {
			info.Configurations = append(info.Configurations, c.Name())
		}
		infos = append(infos, info)
	}
	return infos, nil
}
