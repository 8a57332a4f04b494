package pbx

import "slices"

// ISA is the tag naming an object's kind.
type ISA string

// Known tags.
const (
	ISABuildFile ISA = "PBXBuildFile"

	ISAAppleScriptBuildPhase ISA = "PBXAppleScriptBuildPhase"
	ISACopyFilesBuildPhase   ISA = "PBXCopyFilesBuildPhase"
	ISAFrameworksBuildPhase  ISA = "PBXFrameworksBuildPhase"
	ISAHeadersBuildPhase     ISA = "PBXHeadersBuildPhase"
	ISAResourcesBuildPhase   ISA = "PBXResourcesBuildPhase"
	ISAShellScriptBuildPhase ISA = "PBXShellScriptBuildPhase"
	ISASourcesBuildPhase     ISA = "PBXSourcesBuildPhase"
	ISARezBuildPhase         ISA = "PBXRezBuildPhase"

	ISAContainerItemProxy ISA = "PBXContainerItemProxy"

	ISAFileReference ISA = "PBXFileReference"
	ISAGroup         ISA = "PBXGroup"
	ISAVariantGroup  ISA = "PBXVariantGroup"
	ISAVersionGroup  ISA = "XCVersionGroup"

	ISANativeTarget    ISA = "PBXNativeTarget"
	ISAAggregateTarget ISA = "PBXAggregateTarget"
	ISALegacyTarget    ISA = "PBXLegacyTarget"

	ISAProject            ISA = "PBXProject"
	ISATargetDependency   ISA = "PBXTargetDependency"
	ISABuildConfiguration ISA = "XCBuildConfiguration"
	ISAConfigurationList  ISA = "XCConfigurationList"

	ISABuildRule      ISA = "PBXBuildRule"
	ISAReferenceProxy ISA = "PBXReferenceProxy"

	ISASwiftPackageProductDependency ISA = "XCSwiftPackageProductDependency"
	ISARemoteSwiftPackageReference   ISA = "XCRemoteSwiftPackageReference"
	ISALocalSwiftPackageReference    ISA = "XCLocalSwiftPackageReference"
)

// Kind groups.
var (
	fileKinds   = []ISA{ISAFileReference, ISAGroup, ISAVariantGroup, ISAVersionGroup, ISAReferenceProxy}
	phaseKinds  = []ISA{ISAAppleScriptBuildPhase, ISACopyFilesBuildPhase, ISAFrameworksBuildPhase, ISAHeadersBuildPhase, ISAResourcesBuildPhase, ISAShellScriptBuildPhase, ISASourcesBuildPhase, ISARezBuildPhase}
	targetKinds = []ISA{ISANativeTarget, ISAAggregateTarget, ISALegacyTarget}
)

// Known reports whether isa has a schema.
func (isa ISA) Known() bool {
	_, ok := schemas[isa]
	return ok
}

// IsBuildPhase reports whether isa is one of the build phase kinds.
func (isa ISA) IsBuildPhase() bool { return slices.Contains(phaseKinds, isa) }

// IsTarget reports whether isa is one of the target kinds.
func (isa ISA) IsTarget() bool { return slices.Contains(targetKinds, isa) }

// IsFile reports whether isa is a file-like kind.
func (isa ISA) IsFile() bool { return slices.Contains(fileKinds, isa) }

// KnownISAs returns every tag with a schema, sorted.
func KnownISAs() []ISA {
	out := make([]ISA, 0, len(schemas))
	for isa := range schemas {
		out = append(out, isa)
	}
	sortISAs(out)
	return out
}
