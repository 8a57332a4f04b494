package pbx

import (
	"strings"

	"github.com/joshuapare/pbxkit/pbx/plist"
)

// Proxy types of PBXContainerItemProxy.
const (
	ProxyTargetReference = 1
	ProxyReference       = 2
)

// BuildFile places a file (or package product) into a build phase.
type BuildFile struct{ Base }

// FileRef returns the referenced file.
func (b *BuildFile) FileRef() ID { return b.Ref("fileRef") }

// ProductRef returns the referenced Swift package product.
func (b *BuildFile) ProductRef() ID { return b.Ref("productRef") }

// Settings returns the per-file settings dictionary, or nil.
func (b *BuildFile) Settings() *plist.Dict { return b.Dict("settings") }

// NewBuildFile returns a detached build file for fileRef.
func NewBuildFile(fileRef ID) *BuildFile {
	b := New(ISABuildFile).(*BuildFile)
	must(b.SetRef("fileRef", fileRef))
	return b
}

// Project is the root object.
type Project struct{ Base }

// BuildConfigurationList returns the project-level configuration list.
func (p *Project) BuildConfigurationList() ID { return p.Ref("buildConfigurationList") }

// MainGroup returns the root group of the navigator.
func (p *Project) MainGroup() ID { return p.Ref("mainGroup") }

// ProductRefGroup returns the group holding product references.
func (p *Project) ProductRefGroup() ID { return p.Ref("productRefGroup") }

// Targets returns the ordered target identifiers.
func (p *Project) Targets() []ID { return p.RefList("targets") }

// PackageReferences returns the Swift package references.
func (p *Project) PackageReferences() []ID { return p.RefList("packageReferences") }

// Attributes returns the opaque attributes dictionary, or nil.
func (p *Project) Attributes() *plist.Dict { return p.Dict("attributes") }

// KnownRegions returns the localizations the project knows about.
func (p *Project) KnownRegions() []string { return p.StringList("knownRegions") }

// ProjectReferences returns the referenced projects as ProductGroup and
// ProjectRef pairs.
func (p *Project) ProjectReferences() []ProjectReference {
	a, ok := p.fields.Array("projectReferences")
	if !ok {
		return nil
	}
	var out []ProjectReference
	for _, v := range a.Items {
		d, ok := v.(*plist.Dict)
		if !ok {
			continue
		}
		out = append(out, ProjectReference{
			ProductGroup: ID(d.Text("ProductGroup")),
			ProjectRef:   ID(d.Text("ProjectRef")),
		})
	}
	return out
}

// ProjectReference is one entry of PBXProject.projectReferences.
type ProjectReference struct {
	ProductGroup ID
	ProjectRef   ID
}

// NewProject returns a detached project object. mainGroup and
// buildConfigurationList must be set with SetRef before insertion.
func NewProject(compatibilityVersion string) *Project {
	p := New(ISAProject).(*Project)
	attrs := plist.NewDict()
	attrs.Set("BuildIndependentTargetsInParallel", plist.NewString("1"))
	must(p.SetDict("attributes", attrs))
	must(p.SetText("compatibilityVersion", compatibilityVersion))
	must(p.SetText("developmentRegion", "en"))
	must(p.SetFlag("hasScannedForEncodings", FlagNo))
	must(p.SetStringList("knownRegions", []string{"en", "Base"}))
	must(p.SetText("projectDirPath", ""))
	must(p.SetText("projectRoot", ""))
	must(p.SetRefList("targets", nil))
	return p
}

// BuildConfiguration is one named set of build settings.
type BuildConfiguration struct{ Base }

// Name returns the configuration name (Debug, Release, ...).
func (c *BuildConfiguration) Name() string { return c.Text("name") }

// BuildSettings returns the opaque settings dictionary.
func (c *BuildConfiguration) BuildSettings() *plist.Dict { return c.Dict("buildSettings") }

// BaseConfigurationReference returns the .xcconfig file the settings extend.
func (c *BuildConfiguration) BaseConfigurationReference() ID {
	return c.Ref("baseConfigurationReference")
}

// Setting returns the raw value of one build setting.
func (c *BuildConfiguration) Setting(key string) (plist.Value, bool) {
	bs := c.BuildSettings()
	if bs == nil {
		return nil, false
	}
	return bs.Get(key)
}

// SetSetting sets one build setting to a string value. Setting the current
// value is a no-op.
func (c *BuildConfiguration) SetSetting(key, value string) {
	bs := c.BuildSettings()
	if bs == nil {
		bs = plist.NewDict()
		c.put("buildSettings", bs)
	}
	if s, ok := bs.Scalar(key); ok {
		if s.Set(value) {
			c.touch()
		}
		return
	}
	bs.Set(key, plist.NewString(value))
	c.touch()
}

// UnsetSetting removes a build setting.
func (c *BuildConfiguration) UnsetSetting(key string) {
	if bs := c.BuildSettings(); bs != nil && bs.Delete(key) {
		c.touch()
	}
}

// SetFlagSetting sets a YES/NO style build setting, keeping the encoding
// already used for it.
func (c *BuildConfiguration) SetFlagSetting(key string, f Flag) {
	style := StyleWord
	if v, ok := c.Setting(key); ok {
		if s, ok := v.(*plist.Scalar); ok {
			if cur, st, ok := ParseFlag(s.Text); ok {
				if cur == f {
					return
				}
				style = st
			}
		}
	}
	c.SetSetting(key, f.Format(style))
}

// NewBuildConfiguration returns a detached configuration with no settings.
func NewBuildConfiguration(name string) *BuildConfiguration {
	c := New(ISABuildConfiguration).(*BuildConfiguration)
	must(c.SetDict("buildSettings", plist.NewDict()))
	must(c.SetText("name", name))
	return c
}

// ConfigurationList is the set of configurations of a project or target.
type ConfigurationList struct{ Base }

// BuildConfigurations returns the ordered configuration identifiers.
func (l *ConfigurationList) BuildConfigurations() []ID { return l.RefList("buildConfigurations") }

// DefaultConfigurationName returns the configuration used by command-line builds.
func (l *ConfigurationList) DefaultConfigurationName() string {
	return l.Text("defaultConfigurationName")
}

// DefaultConfigurationIsVisible reports the visibility flag.
func (l *ConfigurationList) DefaultConfigurationIsVisible() bool {
	f, _ := l.Flag("defaultConfigurationIsVisible")
	return f.Bool()
}

// NewConfigurationList returns a detached list over configs.
func NewConfigurationList(defaultName string, configs ...ID) *ConfigurationList {
	l := New(ISAConfigurationList).(*ConfigurationList)
	must(l.SetRefList("buildConfigurations", configs))
	must(l.SetFlag("defaultConfigurationIsVisible", FlagNo))
	if defaultName != "" {
		must(l.SetText("defaultConfigurationName", defaultName))
	}
	return l
}

// BuildRule maps input files to a compiler or script.
type BuildRule struct{ Base }

// CompilerSpec returns the compiler identifier.
func (r *BuildRule) CompilerSpec() string { return r.Text("compilerSpec") }

// FileType returns the input file type the rule applies to.
func (r *BuildRule) FileType() string { return r.Text("fileType") }

// ContainerItemProxy points at a target or product, possibly in another project.
type ContainerItemProxy struct{ Base }

// ContainerPortal returns the project (or project file reference) holding the remote object.
func (c *ContainerItemProxy) ContainerPortal() ID { return c.Ref("containerPortal") }

// ProxyType returns ProxyTargetReference or ProxyReference.
func (c *ContainerItemProxy) ProxyType() int {
	n, _ := c.Int("proxyType")
	return n
}

// RemoteGlobalID returns the remote object's identifier. It only resolves in
// this graph when the portal is the root project.
func (c *ContainerItemProxy) RemoteGlobalID() ID { return c.Ref("remoteGlobalIDString") }

// RemoteInfo returns the remote object's name.
func (c *ContainerItemProxy) RemoteInfo() string { return c.Text("remoteInfo") }

// NewContainerItemProxy returns a detached proxy for a target in portal.
func NewContainerItemProxy(portal, remote ID, remoteInfo string) *ContainerItemProxy {
	c := New(ISAContainerItemProxy).(*ContainerItemProxy)
	must(c.SetRef("containerPortal", portal))
	must(c.SetInt("proxyType", ProxyTargetReference))
	must(c.SetRef("remoteGlobalIDString", remote))
	if remoteInfo != "" {
		must(c.SetText("remoteInfo", remoteInfo))
	}
	return c
}

// TargetDependency makes one target depend on another.
type TargetDependency struct{ Base }

// Target returns the target depended on, when it is in this project.
func (d *TargetDependency) Target() ID { return d.Ref("target") }

// TargetProxy returns the proxy describing the target depended on.
func (d *TargetDependency) TargetProxy() ID { return d.Ref("targetProxy") }

// Name returns the dependency name used for cross-project dependencies.
func (d *TargetDependency) Name() string { return d.Text("name") }

// NewTargetDependency returns a detached dependency on target via proxy.
// Either identifier may be empty.
func NewTargetDependency(target, proxy ID) *TargetDependency {
	d := New(ISATargetDependency).(*TargetDependency)
	if target != "" {
		must(d.SetRef("target", target))
	}
	if proxy != "" {
		must(d.SetRef("targetProxy", proxy))
	}
	return d
}

// SwiftPackageProductDependency is a product of a Swift package.
type SwiftPackageProductDependency struct{ Base }

// Package returns the package reference.
func (s *SwiftPackageProductDependency) Package() ID { return s.Ref("package") }

// ProductName returns the product name.
func (s *SwiftPackageProductDependency) ProductName() string { return s.Text("productName") }

// RemoteSwiftPackageReference is a package fetched from a repository.
type RemoteSwiftPackageReference struct{ Base }

// RepositoryURL returns the repository location.
func (r *RemoteSwiftPackageReference) RepositoryURL() string { return r.Text("repositoryURL") }

// Requirement returns the version requirement dictionary, or nil.
func (r *RemoteSwiftPackageReference) Requirement() *plist.Dict { return r.Dict("requirement") }

// RepositoryName returns the last path component of the URL without .git.
func (r *RemoteSwiftPackageReference) RepositoryName() string {
	u := strings.TrimRight(r.RepositoryURL(), "/")
	if i := strings.LastIndexAny(u, "/:"); i >= 0 {
		u = u[i+1:]
	}
	return strings.TrimSuffix(u, ".git")
}

// LocalSwiftPackageReference is a package in the local file system.
type LocalSwiftPackageReference struct{ Base }

// RelativePath returns the package location relative to the project.
func (l *LocalSwiftPackageReference) RelativePath() string { return l.Text("relativePath") }
