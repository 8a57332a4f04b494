package pbx

// DefaultBuildActionMask is the action mask Xcode writes for every phase.
const DefaultBuildActionMask = 2147483647

// Copy-files destinations (dstSubfolderSpec).
const (
	SubfolderAbsolutePath     = 0
	SubfolderWrapper          = 1
	SubfolderExecutables      = 6
	SubfolderResources        = 7
	SubfolderFrameworks       = 10
	SubfolderSharedFrameworks = 11
	SubfolderSharedSupport    = 12
	SubfolderPlugins          = 13
	SubfolderJavaResources    = 15
	SubfolderProducts         = 16
)

// BuildPhaseLike is implemented by the build phase kinds.
type BuildPhaseLike interface {
	Object
	Files() []ID
	BuildActionMask() int
	RunOnlyForDeploymentPostprocessing() bool
	DisplayName() string
}

type phaseBase struct{ Base }

// Files returns the ordered PBXBuildFile identifiers.
func (p *phaseBase) Files() []ID { return p.RefList("files") }

// BuildActionMask returns the action mask.
func (p *phaseBase) BuildActionMask() int {
	n, _ := p.Int("buildActionMask")
	return n
}

// RunOnlyForDeploymentPostprocessing reports the deployment-only flag.
func (p *phaseBase) RunOnlyForDeploymentPostprocessing() bool {
	f, _ := p.Flag("runOnlyForDeploymentPostprocessing")
	return f.Bool()
}

// DisplayName returns the phase name, else the default Xcode shows for the kind.
func (p *phaseBase) DisplayName() string {
	if n := p.Text("name"); n != "" {
		return n
	}
	return defaultPhaseName(p.isa)
}

func defaultPhaseName(isa ISA) string {
	switch isa {
	case ISASourcesBuildPhase:
		return "Sources"
	case ISAFrameworksBuildPhase:
		return "Frameworks"
	case ISAResourcesBuildPhase:
		return "Resources"
	case ISAHeadersBuildPhase:
		return "Headers"
	case ISARezBuildPhase:
		return "Rez"
	case ISAAppleScriptBuildPhase:
		return "AppleScript"
	case ISACopyFilesBuildPhase:
		return "CopyFiles"
	case ISAShellScriptBuildPhase:
		return "ShellScript"
	default:
		return string(isa)
	}
}

// NewBuildPhase returns a detached empty phase of kind isa with the
// required fields set to Xcode's defaults.
func NewBuildPhase(isa ISA) (BuildPhaseLike, bool) {
	if !isa.IsBuildPhase() {
		return nil, false
	}
	p := New(isa).(BuildPhaseLike)
	b := p.base()
	must(b.SetInt("buildActionMask", DefaultBuildActionMask))
	must(b.SetRefList("files", nil))
	must(b.SetFlag("runOnlyForDeploymentPostprocessing", FlagNo))
	switch isa {
	case ISACopyFilesBuildPhase:
		must(b.SetText("dstPath", ""))
		must(b.SetInt("dstSubfolderSpec", SubfolderProducts))
	case ISAShellScriptBuildPhase:
		must(b.SetStringList("inputPaths", nil))
		must(b.SetStringList("outputPaths", nil))
		must(b.SetText("shellPath", "/bin/sh"))
		must(b.SetText("shellScript", ""))
	}
	return p, true
}

// SourcesBuildPhase compiles source files.
type SourcesBuildPhase struct{ phaseBase }

// FrameworksBuildPhase links libraries and frameworks.
type FrameworksBuildPhase struct{ phaseBase }

// ResourcesBuildPhase copies bundle resources.
type ResourcesBuildPhase struct{ phaseBase }

// HeadersBuildPhase installs headers.
type HeadersBuildPhase struct{ phaseBase }

// RezBuildPhase compiles Carbon resources.
type RezBuildPhase struct{ phaseBase }

// AppleScriptBuildPhase compiles AppleScript files.
type AppleScriptBuildPhase struct{ phaseBase }

// CopyFilesBuildPhase copies files to a destination inside the product.
type CopyFilesBuildPhase struct{ phaseBase }

// DstPath returns the destination path below the subfolder.
func (c *CopyFilesBuildPhase) DstPath() string { return c.Text("dstPath") }

// DstSubfolderSpec returns the destination subfolder code.
func (c *CopyFilesBuildPhase) DstSubfolderSpec() int {
	n, _ := c.Int("dstSubfolderSpec")
	return n
}

// ShellScriptBuildPhase runs a script.
type ShellScriptBuildPhase struct{ phaseBase }

// ShellPath returns the interpreter.
func (s *ShellScriptBuildPhase) ShellPath() string { return s.Text("shellPath") }

// ShellScript returns the script body.
func (s *ShellScriptBuildPhase) ShellScript() string { return s.Text("shellScript") }

// InputPaths returns the declared inputs.
func (s *ShellScriptBuildPhase) InputPaths() []string { return s.StringList("inputPaths") }

// OutputPaths returns the declared outputs.
func (s *ShellScriptBuildPhase) OutputPaths() []string { return s.StringList("outputPaths") }

var (
	_ BuildPhaseLike = (*SourcesBuildPhase)(nil)
	_ BuildPhaseLike = (*FrameworksBuildPhase)(nil)
	_ BuildPhaseLike = (*ResourcesBuildPhase)(nil)
	_ BuildPhaseLike = (*HeadersBuildPhase)(nil)
	_ BuildPhaseLike = (*RezBuildPhase)(nil)
	_ BuildPhaseLike = (*AppleScriptBuildPhase)(nil)
	_ BuildPhaseLike = (*CopyFilesBuildPhase)(nil)
	_ BuildPhaseLike = (*ShellScriptBuildPhase)(nil)
)
