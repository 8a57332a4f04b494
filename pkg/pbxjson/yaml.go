package pbxjson

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/plist"
)

// MarshalYAML returns g as a YAML document with the same shape as the JSON
// form. Mapping order follows the file.
func MarshalYAML(g *pbx.Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(YAMLNode(g)); err != nil {
		return nil, fmt.Errorf("pbxjson: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("pbxjson: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// YAMLNode builds the YAML node tree of g.
func YAMLNode(g *pbx.Graph) *yaml.Node {
	doc := mapping()
	for _, key := range g.TopKeys() {
		var v *yaml.Node
		if key == pbx.KeyObjects {
			v = mapping()
			for _, o := range g.Sorted() {
				v.Content = append(v.Content, str(string(o.ID())), node(o.Fields()))
			}
		} else {
			top, _ := g.Top(key)
			v = node(top)
		}
		doc.Content = append(doc.Content, str(key), v)
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func node(v plist.Value) *yaml.Node {
	switch t := v.(type) {
	case *plist.Scalar:
		if !isNumber(t) {
			return str(t.Text)
		}
		tag := "!!int"
		if strings.Contains(t.Text, ".") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.Text}
	case *plist.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(t.Items) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, item := range t.Items {
			n.Content = append(n.Content, node(item))
		}
		return n
	case *plist.Dict:
		n := mapping()
		if t.Len() == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, ent := range t.Entries() {
			n.Content = append(n.Content, str(ent.Key.Text), node(ent.Value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
