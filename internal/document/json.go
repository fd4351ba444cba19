package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON parses JSON into a Node. Object keys keep the order they appear
// in the input; encoding/json's map decoding would lose it, so this walks the
// token stream instead.
func DecodeJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}
	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			var seq Sequence
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			if seq == nil {
				seq = Sequence{}
			}
			return seq, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			if i, err := t.Int64(); err == nil {
				return Scalar{Value: i}, nil
			}
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Scalar{Value: f}, nil
	case string:
		return Scalar{Value: t}, nil
	case bool:
		return Scalar{Value: t}, nil
	case nil:
		return Scalar{Value: nil}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v (%T)", tok, tok)
	}
}

// EncodeJSON serializes a Node as two-space-indented JSON, emitting object
// keys in mapping insertion order.
func EncodeJSON(n Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSONValue(&buf, n, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeJSONValue(buf *bytes.Buffer, n Node, depth int) error {
	switch v := n.(type) {
	case *Mapping:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeIndent(buf, depth+1)
			keyJSON, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteString(": ")
			child, _ := v.Get(k)
			if err := encodeJSONValue(buf, child, depth+1); err != nil {
				return err
			}
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
		return nil
	case Sequence:
		if len(v) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeIndent(buf, depth+1)
			if err := encodeJSONValue(buf, item, depth+1); err != nil {
				return err
			}
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
		return nil
	case Scalar:
		out, err := json.Marshal(v.Value)
		if err != nil {
			return fmt.Errorf("encoding scalar %v: %w", v.Value, err)
		}
		buf.Write(out)
		return nil
	case nil:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("unknown node type %T", n)
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
