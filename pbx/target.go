package pbx

// Common product types.
const (
	ProductTypeApplication   = "com.apple.product-type.application"
	ProductTypeFramework     = "com.apple.product-type.framework"
	ProductTypeStaticLibrary = "com.apple.product-type.library.static"
	ProductTypeDynamicLib    = "com.apple.product-type.library.dynamic"
	ProductTypeBundle        = "com.apple.product-type.bundle"
	ProductTypeUnitTest      = "com.apple.product-type.bundle.unit-test"
	ProductTypeUITest        = "com.apple.product-type.bundle.ui-testing"
	ProductTypeAppExtension  = "com.apple.product-type.app-extension"
	ProductTypeTool          = "com.apple.product-type.tool"
)

// TargetLike is implemented by the target kinds.
type TargetLike interface {
	Object
	Name() string
	ProductName() string
	BuildConfigurationList() ID
	Dependencies() []ID
	BuildPhases() []ID
}

type targetBase struct{ Base }

// Name returns the target name.
func (t *targetBase) Name() string { return t.Text("name") }

// ProductName returns the product name.
func (t *targetBase) ProductName() string { return t.Text("productName") }

// BuildConfigurationList returns the target's XCConfigurationList.
func (t *targetBase) BuildConfigurationList() ID { return t.Ref("buildConfigurationList") }

// Dependencies returns the ordered PBXTargetDependency identifiers.
func (t *targetBase) Dependencies() []ID { return t.RefList("dependencies") }

// BuildPhases returns the ordered build phase identifiers.
func (t *targetBase) BuildPhases() []ID { return t.RefList("buildPhases") }

// NativeTarget builds a product from sources.
type NativeTarget struct{ targetBase }

// ProductType returns the product type identifier.
func (t *NativeTarget) ProductType() string { return t.Text("productType") }

// ProductReference returns the file reference of the built product.
func (t *NativeTarget) ProductReference() ID { return t.Ref("productReference") }

// BuildRules returns the ordered PBXBuildRule identifiers.
func (t *NativeTarget) BuildRules() []ID { return t.RefList("buildRules") }

// PackageProductDependencies returns the linked Swift package products.
func (t *NativeTarget) PackageProductDependencies() []ID {
	return t.RefList("packageProductDependencies")
}

// NewNativeTarget returns a detached target. The configuration list must be
// set with SetRef before the target is inserted.
func NewNativeTarget(name, productType string) *NativeTarget {
	t := New(ISANativeTarget).(*NativeTarget)
	must(t.SetRefList("buildPhases", nil))
	must(t.SetRefList("buildRules", nil))
	must(t.SetRefList("dependencies", nil))
	must(t.SetText("name", name))
	must(t.SetText("productName", name))
	if productType != "" {
		must(t.SetText("productType", productType))
	}
	return t
}

// AggregateTarget groups other targets without producing anything itself.
type AggregateTarget struct{ targetBase }

// LegacyTarget runs an external build tool.
type LegacyTarget struct{ targetBase }

// BuildToolPath returns the external tool.
func (t *LegacyTarget) BuildToolPath() string { return t.Text("buildToolPath") }

// BuildArgumentsString returns the tool arguments.
func (t *LegacyTarget) BuildArgumentsString() string { return t.Text("buildArgumentsString") }

// BuildWorkingDirectory returns the tool's working directory.
func (t *LegacyTarget) BuildWorkingDirectory() string { return t.Text("buildWorkingDirectory") }

var (
	_ TargetLike = (*NativeTarget)(nil)
	_ TargetLike = (*AggregateTarget)(nil)
	_ TargetLike = (*LegacyTarget)(nil)
)
