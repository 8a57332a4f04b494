package pbx

import "fmt"

const projectObjectComment = "Project object"

// annotator derives the /* */ text Xcode writes after identifiers. The
// annotations are cosmetic: they are rebuilt from the graph on every
// encode, except where the graph cannot say (dangling identifiers,
// passthrough objects) and the text read from the source is reused.
type annotator struct {
	g       *Graph
	phaseOf map[ID]BuildPhaseLike // build file -> phase listing it
	ownerOf map[ID]Object         // configuration list -> project or target
}

func newAnnotator(g *Graph) *annotator {
	a := &annotator{
		g:       g,
		phaseOf: make(map[ID]BuildPhaseLike),
		ownerOf: make(map[ID]Object),
	}
	for _, o := range g.Sorted() {
		switch t := o.(type) {
		case BuildPhaseLike:
			for _, f := range t.Files() {
				if _, seen := a.phaseOf[f]; !seen {
					a.phaseOf[f] = t
				}
			}
		case TargetLike:
			if l := t.BuildConfigurationList(); l != "" {
				a.ownerOf[l] = t
			}
		case *Project:
			if l := t.BuildConfigurationList(); l != "" {
				a.ownerOf[l] = t
			}
		}
	}
	return a
}

// comment returns the annotation for a reference to id. It reports false
// when the graph cannot derive one and the stored text should be used.
// An empty string with true means no annotation.
func (a *annotator) comment(id ID) (string, bool) {
	o, ok := a.g.objects[id]
	if !ok {
		return "", false
	}
	switch t := o.(type) {
	case *BuildFile:
		name, ok := a.buildFileName(t)
		if !ok {
			return "", false
		}
		if p, ok := a.phaseOf[id]; ok {
			return name + " in " + p.DisplayName(), true
		}
		return name, true
	case *Project:
		return projectObjectComment, true
	case *ConfigurationList:
		return a.configurationListName(id)
	case *ContainerItemProxy, *TargetDependency, *BuildRule:
		return string(o.ISA()), true
	case *BuildConfiguration:
		return t.Name(), true
	case *SwiftPackageProductDependency:
		return t.ProductName(), true
	case *RemoteSwiftPackageReference:
		return fmt.Sprintf("%s \"%s\"", ISARemoteSwiftPackageReference, t.RepositoryName()), true
	case *LocalSwiftPackageReference:
		return fmt.Sprintf("%s \"%s\"", ISALocalSwiftPackageReference, t.RelativePath()), true
	case BuildPhaseLike:
		return t.DisplayName(), true
	case TargetLike:
		return t.Name(), true
	case FileLike:
		return t.DisplayName(), true
	default:
		return "", false
	}
}

// objectComment returns the annotation for the key of o in the objects
// dictionary.
func (a *annotator) objectComment(o Object) string {
	if c, ok := a.comment(o.ID()); ok {
		return c
	}
	return o.base().comment
}

// buildFileName names the file or product a build file holds. It reports
// false when that reference does not resolve.
func (a *annotator) buildFileName(b *BuildFile) (string, bool) {
	ref := b.FileRef()
	if ref == "" {
		ref = b.ProductRef()
	}
	switch t := a.g.objects[ref].(type) {
	case FileLike:
		return t.DisplayName(), true
	case *SwiftPackageProductDependency:
		return t.ProductName(), true
	default:
		return "", false
	}
}

func (a *annotator) configurationListName(id ID) (string, bool) {
	switch t := a.ownerOf[id].(type) {
	case TargetLike:
		return fmt.Sprintf("Build configuration list for %s \"%s\"", t.ISA(), t.Name()), true
	case *Project:
		if a.g.Name == "" {
			return "", false
		}
		return fmt.Sprintf("Build configuration list for %s \"%s\"", t.ISA(), a.g.Name), true
	default:
		return "", false
	}
}
