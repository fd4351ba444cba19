package document

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses YAML into a Node, preserving mapping key order.
func DecodeYAML(data []byte) (Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty input decodes to a null scalar.
		return Scalar{Value: nil}, nil
	}
	return fromYAMLNode(root.Content[0])
}

// EncodeYAML serializes a Node as YAML without re-sorting mapping keys.
func EncodeYAML(n Node) ([]byte, error) {
	yn, err := toYAMLNode(n)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(yn)
}

func fromYAMLNode(yn *yaml.Node) (Node, error) {
	switch yn.Kind {
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(yn.Content); i += 2 {
			keyNode := yn.Content[i]
			valNode := yn.Content[i+1]
			child, err := fromYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, child)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(yn.Content))
		for _, item := range yn.Content {
			child, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, child)
		}
		return seq, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(yn)
	case yaml.AliasNode:
		return fromYAMLNode(yn.Alias)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", yn.Kind, yn.Line)
	}
}

func fromYAMLScalar(yn *yaml.Node) (Node, error) {
	switch yn.Tag {
	case "!!null":
		return Scalar{Value: nil}, nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(yn.Value))
		if err != nil {
			// YAML admits spellings ParseBool does not; fall back to the decoder.
			var v bool
			if derr := yn.Decode(&v); derr != nil {
				return nil, fmt.Errorf("invalid bool %q at line %d", yn.Value, yn.Line)
			}
			b = v
		}
		return Scalar{Value: b}, nil
	case "!!int":
		i, err := strconv.ParseInt(yn.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q at line %d", yn.Value, yn.Line)
		}
		return Scalar{Value: i}, nil
	case "!!float":
		f, err := strconv.ParseFloat(yn.Value, 64)
		if err != nil {
			var v float64
			if derr := yn.Decode(&v); derr != nil {
				return nil, fmt.Errorf("invalid float %q at line %d", yn.Value, yn.Line)
			}
			f = v
		}
		return Scalar{Value: f}, nil
	default:
		return Scalar{Value: yn.Value}, nil
	}
}

func toYAMLNode(n Node) (*yaml.Node, error) {
	switch v := n.(type) {
	case *Mapping:
		yn := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			valNode, err := toYAMLNode(child)
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, keyNode, valNode)
		}
		return yn, nil
	case Sequence:
		yn := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, child)
		}
		return yn, nil
	case Scalar:
		if v.Value == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		yn := &yaml.Node{}
		if err := yn.Encode(v.Value); err != nil {
			return nil, fmt.Errorf("encoding scalar %v: %w", v.Value, err)
		}
		return yn, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, fmt.Errorf("unknown node type %T", n)
	}
}
