package walker

import (
	"errors"
	"path"

	"github.com/joshuapare/pbxkit/pbx"
)

// ErrStale is returned by View methods after the graph has been mutated.
var ErrStale = errors.New("walker: view is stale, the graph changed")

// View is a resolved read view over a graph. Its handles point directly at
// graph objects and are only valid while the graph is unchanged.
type View struct {
	g       *pbx.Graph
	gen     uint64
	parents map[pbx.ID]pbx.GroupLike
}

// New returns a view bound to the current generation of g.
func New(g *pbx.Graph) *View {
	return &View{g: g, gen: g.Generation()}
}

// Valid reports whether the graph is unchanged since the view was taken.
func (v *View) Valid() bool { return v.g.Generation() == v.gen }

func (v *View) check() error {
	if !v.Valid() {
		return ErrStale
	}
	return nil
}

// Project returns the root project.
func (v *View) Project() (*pbx.Project, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return v.g.RootProject(), nil
}

// Targets returns the root project's targets in order.
func (v *View) Targets() ([]pbx.TargetLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return v.g.Targets(), nil
}

// MainGroup returns the root group of the project navigator.
func (v *View) MainGroup() (pbx.GroupLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	p := v.g.RootProject()
	if p == nil {
		return nil, nil
	}
	g, _ := lookup[pbx.GroupLike](v.g, p.MainGroup())
	return g, nil
}

// Phases returns the build phases of t in order.
func (v *View) Phases(t pbx.TargetLike) ([]pbx.BuildPhaseLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return resolveAll[pbx.BuildPhaseLike](v.g, t.BuildPhases()), nil
}

// BuildFiles returns the build files of p in order.
func (v *View) BuildFiles(p pbx.BuildPhaseLike) ([]*pbx.BuildFile, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return resolveAll[*pbx.BuildFile](v.g, p.Files()), nil
}

// File returns the file a build file refers to, or nil for package products.
func (v *View) File(b *pbx.BuildFile) (pbx.FileLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	f, _ := lookup[pbx.FileLike](v.g, b.FileRef())
	return f, nil
}

// Product returns the package product a build file refers to, or nil.
func (v *View) Product(b *pbx.BuildFile) (*pbx.SwiftPackageProductDependency, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	p, _ := lookup[*pbx.SwiftPackageProductDependency](v.g, b.ProductRef())
	return p, nil
}

// Children returns the children of g in order.
func (v *View) Children(g pbx.GroupLike) ([]pbx.FileLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return resolveAll[pbx.FileLike](v.g, g.Children()), nil
}

// Dependencies returns the targets t depends on within this project.
func (v *View) Dependencies(t pbx.TargetLike) ([]pbx.TargetLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	var out []pbx.TargetLike
	for _, d := range resolveAll[*pbx.TargetDependency](v.g, t.Dependencies()) {
		if dep, ok := lookup[pbx.TargetLike](v.g, v.g.DependencyTarget(d)); ok {
			out = append(out, dep)
		}
	}
	return out, nil
}

// Configurations returns the build configurations of a project or target.
func (v *View) Configurations(owner interface{ BuildConfigurationList() pbx.ID }) ([]*pbx.BuildConfiguration, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	l, ok := lookup[*pbx.ConfigurationList](v.g, owner.BuildConfigurationList())
	if !ok {
		return nil, nil
	}
	return resolveAll[*pbx.BuildConfiguration](v.g, l.BuildConfigurations()), nil
}

// Parent returns the group containing f, or nil for the main group and
// objects outside the group tree.
func (v *View) Parent(f pbx.FileLike) (pbx.GroupLike, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if v.parents == nil {
		v.parents = make(map[pbx.ID]pbx.GroupLike)
		for _, o := range v.g.Sorted() {
			if g, ok := o.(pbx.GroupLike); ok {
				for _, c := range g.Children() {
					if _, seen := v.parents[c]; !seen {
						v.parents[c] = g
					}
				}
			}
		}
	}
	return v.parents[f.ID()], nil
}

// Path returns the location of f relative to the project directory.
// Locations anchored elsewhere are prefixed with the source tree variable,
// for example "$(BUILT_PRODUCTS_DIR)/App.app".
func (v *View) Path(f pbx.FileLike) (string, error) {
	var parts []string
	cur := f
	for depth := 0; cur != nil; depth++ {
		if depth > v.g.Len() {
			break // containment cycle
		}
		if p := cur.Path(); p != "" {
			parts = append(parts, p)
		}
		switch tree := cur.SourceTree(); tree {
		case pbx.SourceTreeGroup:
			parent, err := v.Parent(cur)
			if err != nil {
				return "", err
			}
			cur = parent
		case pbx.SourceTreeRoot, pbx.SourceTreeAbsolute:
			cur = nil
		default:
			parts = append(parts, "$("+tree+")")
			cur = nil
		}
	}
	if err := v.check(); err != nil {
		return "", err
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return path.Join(parts...), nil
}

func lookup[T pbx.Object](g *pbx.Graph, id pbx.ID) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	o, ok := g.Object(id)
	if !ok {
		return zero, false
	}
	t, ok := o.(T)
	return t, ok
}

func resolveAll[T pbx.Object](g *pbx.Graph, ids []pbx.ID) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if t, ok := lookup[T](g, id); ok {
			out = append(out, t)
		}
	}
	return out
}
