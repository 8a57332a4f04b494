package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/edit"
	"github.com/joshuapare/pbxkit/pbx/ident"
	"github.com/joshuapare/pbxkit/pkg/pbxproj"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string

	// Loaded before every command
	cfg = defaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "pbxctl",
	Short: "Inspect and edit Xcode project files",
	Long: `pbxctl reads, checks and edits Xcode project.pbxproj files. Every
command accepts either the project.pbxproj file or the .xcodeproj bundle
that contains it. Edits are validated before the file is written, and
content that did not change comes out byte-identical.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default: ./"+defaultConfigName+" when present)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup builds the global logger and loads the config file.
func setup() error {
	logger.Init(logger.Options{Enabled: verbose, Level: slog.LevelDebug})
	c, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("config loaded", "path", configPath, "strict", cfg.Strict, "limits", cfg.Limits)
	return nil
}

// projectPath accepts a .xcodeproj bundle or the project file itself.
func projectPath(arg string) string {
	if filepath.Ext(arg) == ".xcodeproj" {
		return filepath.Join(arg, "project.pbxproj")
	}
	if st, err := os.Stat(arg); err == nil && st.IsDir() {
		return filepath.Join(arg, "project.pbxproj")
	}
	return arg
}

// loadOptions returns the parse options implied by the config.
func loadOptions() (pbxproj.Options, error) {
	limits, err := limitsPreset(cfg.Limits)
	if err != nil {
		return pbxproj.Options{}, err
	}
	return pbxproj.Options{Limits: &limits, Logger: logger.L}, nil
}

// openProject loads and validates the project named by arg.
func openProject(arg string) (string, *pbx.Graph, error) {
	path := projectPath(arg)
	opts, err := loadOptions()
	if err != nil {
		return path, nil, err
	}
	printVerbose("Loading project: %s\n", path)
	g, err := pbxproj.ReadFile(path, opts)
	if err != nil {
		return path, nil, err
	}
	logger.Debug("project loaded", "path", path, "objects", g.Len())
	return path, g, nil
}

// newEditor returns an editor configured from the config file.
func newEditor(g *pbx.Graph) *edit.Editor {
	opts := edit.Options{Strict: cfg.Strict, Logger: logger.L}
	if cfg.Seed != "" {
		opts.IDs = ident.Deterministic(cfg.Seed)
	}
	return edit.New(g, opts)
}

// save writes g back to path.
func save(path string, g *pbx.Graph) error {
	if err := pbxproj.WriteFile(path, g, pbxproj.WriteOptions{Backup: cfg.Backup}); err != nil {
		logger.Warn("write failed", "path", path, "error", err)
		return err
	}
	logger.Info("project written", "path", path, "backup", cfg.Backup)
	return nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
