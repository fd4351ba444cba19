package document

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeYAML_PreservesKeyOrder(t *testing.T) {
	src := "zebra: 1\napple: 2\nmiddle: 3\n"
	n, err := DecodeYAML([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := n.(*Mapping)
	if !ok {
		t.Fatalf("expected *Mapping, got %T", n)
	}
	want := []string{"zebra", "apple", "middle"}
	if !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("keys = %v, want %v", m.Keys(), want)
	}
}

func TestDecodeJSON_PreservesKeyOrder(t *testing.T) {
	src := `{"zebra": 1, "apple": {"nested_z": true, "nested_a": false}, "middle": [1, 2]}`
	n, err := DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := n.(*Mapping)
	want := []string{"zebra", "apple", "middle"}
	if !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("keys = %v, want %v", m.Keys(), want)
	}
	nested, _ := m.Get("apple")
	nm := nested.(*Mapping)
	if !reflect.DeepEqual(nm.Keys(), []string{"nested_z", "nested_a"}) {
		t.Errorf("nested keys = %v", nm.Keys())
	}
}

func TestDecodeYAML_ScalarTypes(t *testing.T) {
	src := "str: hello\nint: 42\nfloat: 3.5\nbool: true\nnothing: null\n"
	n, err := DecodeYAML([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := n.(*Mapping)
	cases := map[string]any{
		"str":     "hello",
		"int":     int64(42),
		"float":   3.5,
		"bool":    true,
		"nothing": nil,
	}
	for key, want := range cases {
		v, ok := m.Get(key)
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		if got := v.(Scalar).Value; got != want {
			t.Errorf("%s = %v (%T), want %v (%T)", key, got, got, want, want)
		}
	}
}

func TestDecodeJSON_Numbers(t *testing.T) {
	n, err := DecodeJSON([]byte(`{"i": 7, "f": 2.25, "big": 9223372036854775807}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := n.(*Mapping)
	if v, _ := m.Get("i"); v.(Scalar).Value != int64(7) {
		t.Errorf("i = %v, want int64 7", v.(Scalar).Value)
	}
	if v, _ := m.Get("f"); v.(Scalar).Value != 2.25 {
		t.Errorf("f = %v, want 2.25", v.(Scalar).Value)
	}
	if v, _ := m.Get("big"); v.(Scalar).Value != int64(9223372036854775807) {
		t.Errorf("big = %v", v.(Scalar).Value)
	}
}

func TestRoundTrip_YAML(t *testing.T) {
	src := "application:\n  name: demo\n  pods:\n    - name: web\n      servicePorts:\n        - 3000\n"
	n, err := DecodeYAML([]byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := EncodeYAML(n)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeYAML(out)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if !Equal(n, back) {
		t.Errorf("round-trip changed document:\n%s", out)
	}
}

func TestRoundTrip_JSON(t *testing.T) {
	src := `{"b": [1, {"x": null}], "a": "text", "empty": {}, "list": []}`
	n, err := DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := EncodeJSON(n)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeJSON(out)
	if err != nil {
		t.Fatalf("re-decode: %v\noutput was:\n%s", err, out)
	}
	if !Equal(n, back) {
		t.Errorf("round-trip changed document:\n%s", out)
	}
	// Order must survive encoding.
	if idxB := strings.Index(string(out), `"b"`); idxB > strings.Index(string(out), `"a"`) {
		t.Errorf("keys were re-sorted:\n%s", out)
	}
}

func TestClone_Independent(t *testing.T) {
	orig := NewMapping()
	orig.Set("list", Sequence{Scalar{Value: "a"}})
	inner := NewMapping()
	inner.Set("k", Scalar{Value: int64(1)})
	orig.Set("map", inner)

	cp := Clone(orig).(*Mapping)
	if !Equal(orig, cp) {
		t.Fatal("clone differs from original")
	}

	cpInner, _ := cp.Get("map")
	cpInner.(*Mapping).Set("k", Scalar{Value: int64(2)})
	if v, _ := inner.Get("k"); v.(Scalar).Value != int64(1) {
		t.Error("mutating clone changed the original")
	}
}

func TestEqual(t *testing.T) {
	mk := func(keys ...string) *Mapping {
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, Scalar{Value: k})
		}
		return m
	}
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same mapping", mk("a", "b"), mk("a", "b"), true},
		{"different order", mk("a", "b"), mk("b", "a"), false},
		{"scalar match", Scalar{Value: int64(1)}, Scalar{Value: int64(1)}, true},
		{"int vs float", Scalar{Value: int64(1)}, Scalar{Value: 1.0}, false},
		{"sequence", Sequence{Scalar{Value: "x"}}, Sequence{Scalar{Value: "x"}}, true},
		{"mapping vs sequence", mk("a"), Sequence{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"template.yaml", FormatYAML},
		{"template.YML", FormatYAML},
		{"metadata.json", FormatJSON},
		{"noextension", FormatJSON},
		{"dir/x.txt", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Format != FormatJSON {
		t.Errorf("format = %v, want json", perr.Format)
	}
}

func TestLoadWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(in, []byte("z: 1\na: two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := Load(in)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Write(out, n); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !Equal(n, back) {
		t.Error("YAML->JSON round-trip changed document")
	}
}
