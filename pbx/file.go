package pbx

import "strings"

// Source trees.
const (
	SourceTreeGroup         = "<group>"
	SourceTreeAbsolute      = "<absolute>"
	SourceTreeRoot          = "SOURCE_ROOT"
	SourceTreeBuiltProducts = "BUILT_PRODUCTS_DIR"
	SourceTreeSDK           = "SDKROOT"
	SourceTreeDeveloper     = "DEVELOPER_DIR"
)

// FileLike is implemented by objects that name a location on disk.
type FileLike interface {
	Object
	SourceTree() string
	Name() string
	Path() string
	DisplayName() string
}

// GroupLike is a FileLike container.
type GroupLike interface {
	FileLike
	Children() []ID
}

type fileBase struct{ Base }

// SourceTree returns what Path is relative to.
func (f *fileBase) SourceTree() string { return f.Text("sourceTree") }

// Name returns the explicit display name, if any.
func (f *fileBase) Name() string { return f.Text("name") }

// Path returns the location relative to SourceTree.
func (f *fileBase) Path() string { return f.Text("path") }

// DisplayName returns name, else path.
func (f *fileBase) DisplayName() string {
	if n := f.Name(); n != "" {
		return n
	}
	return f.Path()
}

// FileReference points at one file or folder.
type FileReference struct{ fileBase }

// LastKnownFileType is the type Xcode inferred when the file was added.
func (f *FileReference) LastKnownFileType() string { return f.Text("lastKnownFileType") }

// ExplicitFileType overrides LastKnownFileType.
func (f *FileReference) ExplicitFileType() string { return f.Text("explicitFileType") }

// FileType returns the explicit type, else the last known one.
func (f *FileReference) FileType() string {
	if t := f.ExplicitFileType(); t != "" {
		return t
	}
	return f.LastKnownFileType()
}

// IsSourceCode reports whether the file type is a compilable source type.
func (f *FileReference) IsSourceCode() bool {
	return strings.HasPrefix(f.FileType(), "sourcecode.")
}

// NewFileReference returns a detached file reference. The last known file
// type is derived from the path extension when it is a common one.
func NewFileReference(path, sourceTree string) *FileReference {
	f := New(ISAFileReference).(*FileReference)
	if t := FileTypeForPath(path); t != "" {
		must(f.SetText("lastKnownFileType", t))
	}
	must(f.SetText("path", path))
	must(f.SetText("sourceTree", sourceTree))
	return f
}

var extFileTypes = map[string]string{
	".swift":        "sourcecode.swift",
	".m":            "sourcecode.c.objc",
	".mm":           "sourcecode.cpp.objcpp",
	".c":            "sourcecode.c.c",
	".cc":           "sourcecode.cpp.cpp",
	".cpp":          "sourcecode.cpp.cpp",
	".h":            "sourcecode.c.h",
	".hpp":          "sourcecode.cpp.h",
	".metal":        "sourcecode.metal",
	".s":            "sourcecode.asm",
	".plist":        "text.plist.xml",
	".strings":      "text.plist.strings",
	".entitlements": "text.plist.entitlements",
	".xcconfig":     "text.xcconfig",
	".storyboard":   "file.storyboard",
	".xib":          "file.xib",
	".xcassets":     "folder.assetcatalog",
	".png":          "image.png",
	".framework":    "wrapper.framework",
	".xcframework":  "wrapper.xcframework",
	".a":            "archive.ar",
	".dylib":        "compiled.mach-o.dylib",
	".tbd":          "sourcecode.text-based-dylib-definition",
	".app":          "wrapper.application",
	".appex":        "wrapper.app-extension",
	".bundle":       "wrapper.plug-in",
	".xcdatamodeld": "wrapper.xcdatamodeld",
	".xcodeproj":    "wrapper.pb-project",
	".json":         "text.json",
	".md":           "net.daringfireball.markdown",
	".sh":           "text.script.sh",
	".modulemap":    "sourcecode.module-map",
}

// FileTypeForPath returns Xcode's file type for a path extension, or "".
func FileTypeForPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return extFileTypes[strings.ToLower(path[i:])]
}

type groupBase struct{ fileBase }

// Children returns the ordered child identifiers.
func (g *groupBase) Children() []ID { return g.RefList("children") }

// Group is a folder in the project navigator.
type Group struct{ groupBase }

// NewGroup returns a detached empty group. Either name or path may be empty.
func NewGroup(name, path string) *Group {
	g := New(ISAGroup).(*Group)
	must(g.SetRefList("children", nil))
	if name != "" {
		must(g.SetText("name", name))
	}
	if path != "" {
		must(g.SetText("path", path))
	}
	must(g.SetText("sourceTree", SourceTreeGroup))
	return g
}

// VariantGroup holds localized variants of one resource.
type VariantGroup struct{ groupBase }

// VersionGroup holds the versions of a Core Data model.
type VersionGroup struct{ groupBase }

// CurrentVersion returns the active model version.
func (v *VersionGroup) CurrentVersion() ID { return v.Ref("currentVersion") }

// VersionGroupType returns the type of the grouped versions.
func (v *VersionGroup) VersionGroupType() string { return v.Text("versionGroupType") }

// ReferenceProxy stands in for a product of another project.
type ReferenceProxy struct{ fileBase }

// RemoteRef returns the proxy describing the remote product.
func (r *ReferenceProxy) RemoteRef() ID { return r.Ref("remoteRef") }

// FileType returns the product's file type.
func (r *ReferenceProxy) FileType() string { return r.Text("fileType") }

var (
	_ GroupLike = (*Group)(nil)
	_ GroupLike = (*VariantGroup)(nil)
	_ GroupLike = (*VersionGroup)(nil)
	_ FileLike  = (*FileReference)(nil)
	_ FileLike  = (*ReferenceProxy)(nil)
)
