package encode

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/signadot/jsonkv/format"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
)

func mustParse(t *testing.T, text string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestEncodeCompact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"null", "null", "null"},
		{"bool", "true", "true"},
		{"integer", "42", "42"},
		{"float", "1.5", "1.5"},
		{"integral float keeps point", "2.0", "2.0"},
		{"string", `"hi"`, `"hi"`},
		{"string escapes", "\"a\\\"b\\nc\"", `"a\"b\nc"`},
		{"empty array", "[]", "[]"},
		{"empty object", "{}", "{}"},
		{"array", "[1, 2, 3]", "[1,2,3]"},
		{"object", `{"a": 1, "b": [true, null]}`, `{"a":1,"b":[true,null]}`},
		{"nested empties", `{"a": [], "b": {}}`, `{"a":[],"b":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustString(mustParse(t, tt.in))
			if got != tt.want {
				t.Errorf("encode(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeOptions(t *testing.T) {
	n := mustParse(t, `{"a": 1, "b": [2]}`)
	tests := []struct {
		name string
		opts []EncodeOption
		want string
	}{
		{
			name: "space only",
			opts: []EncodeOption{Space(" ")},
			want: `{"a": 1,"b": [2]}`,
		},
		{
			name: "newline only",
			opts: []EncodeOption{Newline("\n")},
			want: "{\n\"a\":1,\n\"b\":[\n2\n]\n}",
		},
		{
			name: "pretty",
			opts: []EncodeOption{Indent("  "), Newline("\n"), Space(" ")},
			want: "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustString(n, tt.opts...)
			if got != tt.want {
				t.Errorf("encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodePrettyEmptyContainers(t *testing.T) {
	got := MustString(mustParse(t, `{"a": [], "b": {}}`),
		Indent("  "), Newline("\n"), Space(" "))
	want := "{\n  \"a\": [],\n  \"b\": {}\n}"
	if got != want {
		t.Errorf("encode = %q, want %q", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	texts := []string{
		`{"a":1,"b":[true,null,"x"],"c":{"d":2.5}}`,
		`[1,2.0,-3,"s"]`,
		`{}`,
	}
	for _, text := range texts {
		n := mustParse(t, text)
		got := MustString(n)
		if got != text {
			t.Errorf("round trip %q = %q", text, got)
		}
		back := mustParse(t, got)
		if !ir.Equal(n, back) {
			t.Errorf("reparse of %q differs", text)
		}
	}
}

func TestEncodeNonFinite(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := Encode(ir.FromFloat(math.Inf(1)), buf)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("error = %v, want ErrEncoding", err)
	}
}

func TestEncodeYAML(t *testing.T) {
	n := mustParse(t, `{"z": 1, "a": ["x", 2.5]}`)
	buf := bytes.NewBuffer(nil)
	if err := Encode(n, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	back, err := parse.Parse(buf.Bytes(), parse.ParseFormat(format.YAMLFormat))
	if err != nil {
		t.Fatalf("reparse yaml %q: %v", buf.String(), err)
	}
	if len(back.Keys) != 2 || back.Keys[0] != "z" {
		t.Errorf("yaml key order = %v, want z first", back.Keys)
	}
	if !ir.Equal(ir.Get(back, "a"), ir.Get(n, "a")) {
		t.Errorf("yaml round trip a = %+v", ir.Get(back, "a"))
	}
}
