package doc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/parse"
	"github.com/signadot/jsonkv/path"
)

const readDoc = `{"s": "hello", "n": 7, "f": 2.5, "b": true, "a": [1, "x", null], "o": {"k1": 1, "k2": 2}}`

func TestToText(t *testing.T) {
	d := mustDoc(t, readDoc)
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"whole document", nil, `{"s":"hello","n":7,"f":2.5,"b":true,"a":[1,"x",null],"o":{"k1":1,"k2":2}}`},
		{"single path", []string{"$.s"}, `"hello"`},
		{"single array element", []string{"$.a[1]"}, `"x"`},
		{
			"multiple paths",
			[]string{"$.n", "$.missing", "$.b"},
			`{"$.n":7,"$.missing":null,"$.b":true}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := make([]*path.Path, len(tt.paths))
			for i, raw := range tt.paths {
				paths[i] = path.MustCompile(raw)
			}
			got, err := d.ToText(paths)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ToText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToTextMissingSinglePath(t *testing.T) {
	d := mustDoc(t, readDoc)
	_, err := d.ToText([]*path.Path{path.MustCompile("$.missing")})
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("error = %v, want ErrPathNotFound", err)
	}
}

func TestToTextOptions(t *testing.T) {
	d := mustDoc(t, `{"a": 1}`)
	got, err := d.ToText(nil, encode.Indent("  "), encode.Newline("\n"), encode.Space(" "))
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Errorf("ToText = %q, want %q", got, want)
	}
}

func TestType(t *testing.T) {
	d := mustDoc(t, readDoc)
	tests := []struct {
		path string
		want string
	}{
		{"$", "object"},
		{"$.s", "string"},
		{"$.n", "integer"},
		{"$.f", "number"},
		{"$.b", "boolean"},
		{"$.a", "array"},
		{"$.a[2]", "null"},
		{"$.o", "object"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := d.Type(path.MustCompile(tt.path))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Type(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
	if _, err := d.Type(path.MustCompile("$.zz")); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("missing path error = %v", err)
	}
}

func TestLens(t *testing.T) {
	d := mustDoc(t, readDoc)
	if n, err := d.StrLen(path.MustCompile("$.s")); err != nil || n != 5 {
		t.Errorf("StrLen = %d, %v, want 5", n, err)
	}
	if n, err := d.ArrLen(path.MustCompile("$.a")); err != nil || n != 3 {
		t.Errorf("ArrLen = %d, %v, want 3", n, err)
	}
	if n, err := d.ObjLen(path.MustCompile("$.o")); err != nil || n != 2 {
		t.Errorf("ObjLen = %d, %v, want 2", n, err)
	}
	if _, err := d.StrLen(path.MustCompile("$.n")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("StrLen on number error = %v", err)
	}
	if _, err := d.ArrLen(path.MustCompile("$.o")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ArrLen on object error = %v", err)
	}
	if _, err := d.ObjLen(path.MustCompile("$.a")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ObjLen on array error = %v", err)
	}
}

func TestObjKeys(t *testing.T) {
	d := mustDoc(t, readDoc)
	keys, err := d.ObjKeys(path.MustCompile("$.o"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(keys, []string{"k1", "k2"}) {
		t.Errorf("ObjKeys = %v, want [k1 k2]", keys)
	}
	// returned slice is a copy
	keys[0] = "mutated"
	keys2, err := d.ObjKeys(path.MustCompile("$.o"))
	if err != nil {
		t.Fatal(err)
	}
	if keys2[0] != "k1" {
		t.Error("ObjKeys shares its backing array with the document")
	}
}

func TestArrIndex(t *testing.T) {
	d := mustDoc(t, `{"a": [0, 1, 2, 1, "x", 2.0]}`)
	tests := []struct {
		name        string
		scalar      string
		start, stop int
		want        int
	}{
		{"first match", "1", 0, 0, 1},
		{"window skips first", "1", 2, 0, 3},
		{"absent", "9", 0, 0, -1},
		{"stop bounds scan", "1", 0, 1, -1},
		{"negative start", "1", -3, 0, 3},
		{"negative stop", `"x"`, 0, -1, 4},
		{"int does not match float", "2.0", 0, 0, 5},
		{"string", `"x"`, 0, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parse.Parse([]byte(tt.scalar))
			if err != nil {
				t.Fatal(err)
			}
			got, err := d.ArrIndex(path.MustCompile("$.a"), s, tt.start, tt.stop)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ArrIndex(%s, %d, %d) = %d, want %d",
					tt.scalar, tt.start, tt.stop, got, tt.want)
			}
		})
	}
}

func TestResp(t *testing.T) {
	d := mustDoc(t, `{"a": [1, true], "s": "x"}`)
	got, err := d.Resp(path.MustCompile("$"))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"{", "a", []any{"[", int64(1), "true"}, "s", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resp = %#v, want %#v", got, want)
	}
}

func TestMemory(t *testing.T) {
	d := mustDoc(t, `{"a": [1, 2], "s": "hello"}`)
	whole, err := d.Memory(path.MustCompile("$"))
	if err != nil {
		t.Fatal(err)
	}
	part, err := d.Memory(path.MustCompile("$.a"))
	if err != nil {
		t.Fatal(err)
	}
	if whole <= part || part <= 0 {
		t.Errorf("Memory: whole %d, part %d", whole, part)
	}
}
