package pbx

import (
	"slices"
	"sort"
)

// FieldKind is the value shape a schema field accepts.
type FieldKind uint8

const (
	KindString     FieldKind = iota // scalar text
	KindInt                         // scalar integer
	KindFlag                        // 0/1 or YES/NO
	KindRef                         // single identifier
	KindRefList                     // ordered list of identifiers
	KindStringList                  // list of scalars
	KindDict                        // opaque dictionary
	KindRefTable                    // list of dictionaries whose values are identifiers
	KindAny                         // anything
)

// String implements the Stringer interface for FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFlag:
		return "flag"
	case KindRef:
		return "reference"
	case KindRefList:
		return "reference list"
	case KindStringList:
		return "string list"
	case KindDict:
		return "dictionary"
	case KindRefTable:
		return "reference table"
	default:
		return "any"
	}
}

// IsRef reports whether the kind holds identifiers.
func (k FieldKind) IsRef() bool {
	return k == KindRef || k == KindRefList || k == KindRefTable
}

// Field describes one key of an object.
type Field struct {
	Key      string
	Kind     FieldKind
	Required bool

	// Soft references may point at identifiers outside the graph.
	Soft bool

	// Dependent marks a single reference whose holder cannot exist without
	// the target; removing the target removes the holder.
	Dependent bool

	// NoComment suppresses the /* name */ annotation after the identifier.
	NoComment bool

	// Accepts lists the kinds a reference may point at. Empty accepts any.
	Accepts []ISA

	// Style is the encoding used for a flag written for the first time.
	Style FlagStyle
}

// Accepting reports whether the field may reference an object of kind isa.
func (f Field) Accepting(isa ISA) bool {
	return len(f.Accepts) == 0 || slices.Contains(f.Accepts, isa)
}

// Admits reports whether the field may reference o. Objects of unknown kinds
// are admitted by every reference field.
func (f Field) Admits(o Object) bool {
	if _, ok := o.(*Unknown); ok {
		return true
	}
	return f.Accepting(o.ISA())
}

// Schema describes one isa.
type Schema struct {
	ISA    ISA
	Fields []Field // emission order for fields added programmatically

	// Inline objects are written on a single line.
	Inline bool

	rank map[string]int
}

// Field looks up a field by key.
func (s *Schema) Field(key string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	i, ok := s.rank[key]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Rank returns the emission position of key; unknown keys sort last.
func (s *Schema) Rank(key string) int {
	if key == "isa" {
		return -1
	}
	if s == nil {
		return 0
	}
	if i, ok := s.rank[key]; ok {
		return i
	}
	return len(s.Fields)
}

// RefFields returns the reference-holding fields in order.
func (s *Schema) RefFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Kind.IsRef() {
			out = append(out, f)
		}
	}
	return out
}

// Lookup returns the schema for isa.
func Lookup(isa ISA) (*Schema, bool) {
	s, ok := schemas[isa]
	return s, ok
}

// Field constructors keep the table below readable.

func str(key string) Field     { return Field{Key: key, Kind: KindString} }
func integer(key string) Field { return Field{Key: key, Kind: KindInt} }
func flag(key string) Field    { return Field{Key: key, Kind: KindFlag} }
func strs(key string) Field    { return Field{Key: key, Kind: KindStringList} }
func dict(key string) Field    { return Field{Key: key, Kind: KindDict} }

func ref(key string, accepts ...ISA) Field {
	return Field{Key: key, Kind: KindRef, Accepts: accepts}
}

func refs(key string, accepts ...ISA) Field {
	return Field{Key: key, Kind: KindRefList, Accepts: accepts}
}

func required(f Field) Field {
	f.Required = true
	return f
}

func dependent(f Field) Field {
	f.Dependent = true
	return f
}

var schemas = map[ISA]*Schema{}

func register(isa ISA, inline bool, fields ...Field) {
	s := &Schema{ISA: isa, Fields: fields, Inline: inline, rank: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.rank[f.Key] = i
	}
	schemas[isa] = s
}

func init() {
	packageRefs := []ISA{ISARemoteSwiftPackageReference, ISALocalSwiftPackageReference}

	register(ISABuildFile, true,
		dependent(ref("fileRef", fileKinds...)),
		str("platformFilter"),
		strs("platformFilters"),
		dependent(ref("productRef", ISASwiftPackageProductDependency)),
		dict("settings"),
	)

	phase := func(isa ISA, extra ...Field) {
		fields := []Field{
			required(integer("buildActionMask")),
			required(refs("files", ISABuildFile)),
			str("name"),
			required(flag("runOnlyForDeploymentPostprocessing")),
		}
		fields = append(fields, extra...)
		sortFields(fields)
		register(isa, false, fields...)
	}
	phase(ISASourcesBuildPhase)
	phase(ISAFrameworksBuildPhase)
	phase(ISAResourcesBuildPhase)
	phase(ISAHeadersBuildPhase)
	phase(ISARezBuildPhase)
	phase(ISAAppleScriptBuildPhase)
	phase(ISACopyFilesBuildPhase,
		required(str("dstPath")),
		required(integer("dstSubfolderSpec")),
	)
	phase(ISAShellScriptBuildPhase,
		flag("alwaysOutOfDate"),
		str("dependencyFile"),
		strs("inputFileListPaths"),
		strs("inputPaths"),
		strs("outputFileListPaths"),
		strs("outputPaths"),
		str("shellPath"),
		str("shellScript"),
		flag("showEnvVarsInLog"),
	)

	register(ISAContainerItemProxy, false,
		required(ref("containerPortal", ISAProject, ISAFileReference)),
		required(integer("proxyType")),
		Field{Key: "remoteGlobalIDString", Kind: KindRef, Required: true, Soft: true, NoComment: true},
		str("remoteInfo"),
	)

	physical := []Field{
		integer("indentWidth"),
		str("name"),
		str("path"),
		required(str("sourceTree")),
		integer("tabWidth"),
		flag("usesTabs"),
		flag("wrapsLines"),
	}
	withPhysical := func(extra ...Field) []Field {
		fields := append(slices.Clone(physical), extra...)
		sortFields(fields)
		return fields
	}

	register(ISAFileReference, true, withPhysical(
		str("explicitFileType"),
		integer("fileEncoding"),
		flag("includeInIndex"),
		str("lastKnownFileType"),
		integer("lineEnding"),
		str("plistStructureDefinitionIdentifier"),
		str("xcLanguageSpecificationIdentifier"),
	)...)
	register(ISAGroup, false, withPhysical(required(refs("children", fileKinds...)))...)
	register(ISAVariantGroup, false, withPhysical(required(refs("children", fileKinds...)))...)
	register(ISAVersionGroup, false, withPhysical(
		required(refs("children", ISAFileReference)),
		ref("currentVersion", ISAFileReference),
		str("versionGroupType"),
	)...)

	register(ISAReferenceProxy, false,
		required(str("fileType")),
		str("name"),
		str("path"),
		required(dependent(ref("remoteRef", ISAContainerItemProxy))),
		required(str("sourceTree")),
	)

	target := func(isa ISA, extra ...Field) {
		fields := []Field{
			required(ref("buildConfigurationList", ISAConfigurationList)),
			required(refs("buildPhases", phaseKinds...)),
			required(refs("dependencies", ISATargetDependency)),
			required(str("name")),
			str("productName"),
		}
		fields = append(fields, extra...)
		sortFields(fields)
		register(isa, false, fields...)
	}
	target(ISANativeTarget,
		refs("buildRules", ISABuildRule),
		refs("packageProductDependencies", ISASwiftPackageProductDependency),
		str("productInstallPath"),
		ref("productReference", ISAFileReference, ISAReferenceProxy),
		str("productType"),
	)
	target(ISAAggregateTarget)
	target(ISALegacyTarget,
		str("buildArgumentsString"),
		str("buildToolPath"),
		str("buildWorkingDirectory"),
		flag("passBuildSettingsInEnvironment"),
	)

	register(ISAProject, false,
		dict("attributes"),
		required(ref("buildConfigurationList", ISAConfigurationList)),
		str("compatibilityVersion"),
		str("developmentRegion"),
		flag("hasScannedForEncodings"),
		strs("knownRegions"),
		required(ref("mainGroup", ISAGroup)),
		integer("minimizedProjectReferenceProxies"),
		refs("packageReferences", packageRefs...),
		integer("preferredProjectObjectVersion"),
		ref("productRefGroup", ISAGroup),
		str("projectDirPath"),
		Field{Key: "projectReferences", Kind: KindRefTable},
		str("projectRoot"),
		required(refs("targets", targetKinds...)),
	)

	register(ISATargetDependency, false,
		str("name"),
		str("platformFilter"),
		strs("platformFilters"),
		ref("productRef", ISASwiftPackageProductDependency),
		dependent(ref("target", targetKinds...)),
		ref("targetProxy", ISAContainerItemProxy),
	)

	register(ISABuildConfiguration, false,
		ref("baseConfigurationReference", ISAFileReference),
		required(dict("buildSettings")),
		required(str("name")),
	)

	register(ISAConfigurationList, false,
		required(refs("buildConfigurations", ISABuildConfiguration)),
		required(flag("defaultConfigurationIsVisible")),
		str("defaultConfigurationName"),
	)

	register(ISABuildRule, false,
		required(str("compilerSpec")),
		str("dependencyFile"),
		str("filePatterns"),
		str("fileType"),
		strs("inputFiles"),
		required(flag("isEditable")),
		str("name"),
		required(strs("outputFiles")),
		strs("outputFilesCompilerFlags"),
		flag("runOncePerArchitecture"),
		str("script"),
	)

	register(ISASwiftPackageProductDependency, false,
		dependent(ref("package", packageRefs...)),
		str("productName"),
	)
	register(ISARemoteSwiftPackageReference, false,
		required(str("repositoryURL")),
		dict("requirement"),
	)
	register(ISALocalSwiftPackageReference, false,
		required(str("relativePath")),
	)
}

func sortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
}

func sortISAs(isas []ISA) {
	slices.Sort(isas)
}
