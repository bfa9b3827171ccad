package doc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/jsonkv/codec"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/path"
)

func mustDoc(t *testing.T, text string) *Document {
	t.Helper()
	d, err := FromText([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func wantDoc(t *testing.T, d *Document, text string) {
	t.Helper()
	want := mustDoc(t, text)
	if !ir.Equal(d.Root, want.Root) {
		got, err := d.ToText(nil)
		if err != nil {
			t.Fatal(err)
		}
		t.Errorf("document = %s, want %s", got, text)
	}
}

func TestNumIncrBy(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		literal string
		want    string
		wantErr error
	}{
		{"int plus int", `{"n": 1}`, "$.n", "2", "3", nil},
		{"int plus float widens", `{"n": 1}`, "$.n", "0.5", "1.5", nil},
		{"float plus int", `{"n": 1.5}`, "$.n", "1", "2.5", nil},
		{"integral float keeps point", `{"n": 1.0}`, "$.n", "1", "2.0", nil},
		{"negative", `{"n": 5}`, "$.n", "-7", "-2", nil},
		{"not a number target", `{"n": "x"}`, "$.n", "1", "", ErrTypeMismatch},
		{"not a number literal", `{"n": 1}`, "$.n", `"x"`, "", ErrTypeMismatch},
		{"missing path", `{"n": 1}`, "$.m", "1", "", ErrPathNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDoc(t, tt.doc)
			got, err := NumIncrBy(d, path.MustCompile(tt.path), []byte(tt.literal))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				wantDoc(t, d, tt.doc)
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("NumIncrBy = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumMultBy(t *testing.T) {
	d := mustDoc(t, `{"n": 4}`)
	got, err := NumMultBy(d, path.MustCompile("$.n"), []byte("3"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "12" {
		t.Errorf("NumMultBy = %q, want 12", got)
	}
	got, err = NumMultBy(d, path.MustCompile("$.n"), []byte("0.5"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "6.0" {
		t.Errorf("NumMultBy = %q, want 6.0", got)
	}
}

func TestNumOpNonFinite(t *testing.T) {
	d := mustDoc(t, `{"n": 1e308}`)
	_, err := NumMultBy(d, path.MustCompile("$.n"), []byte("1e10"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("error = %v, want ErrTypeMismatch", err)
	}
	wantDoc(t, d, `{"n": 1e308}`)
}

// A failed transform must leave byte-identical persisted state behind.
func TestValueOpAtomicity(t *testing.T) {
	d := mustDoc(t, `{"a": {"b": [1, {"c": "x"}]}, "n": "nan"}`)
	before := codec.Encode(d.Root)
	_, err := NumIncrBy(d, path.MustCompile("$.n"), []byte("1"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("error = %v, want ErrTypeMismatch", err)
	}
	after := codec.Encode(d.Root)
	if !bytes.Equal(before, after) {
		t.Error("failed operation changed persisted bytes")
	}
}

func TestToggle(t *testing.T) {
	d := mustDoc(t, `{"b": true}`)
	got, err := Toggle(d, path.MustCompile("$.b"))
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("Toggle = true, want false")
	}
	got, err = Toggle(d, path.MustCompile("$.b"))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("Toggle = false, want true")
	}

	d = mustDoc(t, `{"b": 1}`)
	if _, err := Toggle(d, path.MustCompile("$.b")); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("error = %v, want ErrTypeMismatch", err)
	}
	wantDoc(t, d, `{"b": 1}`)
}

func TestStrAppend(t *testing.T) {
	d := mustDoc(t, `{"s": "foo"}`)
	n, err := StrAppend(d, path.MustCompile("$.s"), []byte(`"bar"`))
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("StrAppend = %d, want 6", n)
	}
	wantDoc(t, d, `{"s": "foobar"}`)

	if _, err := StrAppend(d, path.MustCompile("$.s"), []byte("1")); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("non-string literal error = %v, want ErrTypeMismatch", err)
	}
}

func TestArrAppend(t *testing.T) {
	d := mustDoc(t, `{"a": [1, 2]}`)
	n, err := ArrAppend(d, path.MustCompile("$.a"), ir.FromInt(3), ir.FromString("x"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("ArrAppend = %d, want 4", n)
	}
	wantDoc(t, d, `{"a": [1, 2, 3, "x"]}`)

	if _, err := ArrAppend(d, path.MustCompile("$"), ir.FromInt(1)); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("append to object error = %v, want ErrTypeMismatch", err)
	}
}

func TestArrInsert(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    string
		wantErr error
	}{
		{"front", 0, `{"a": [9, 1, 2, 3]}`, nil},
		{"middle", 1, `{"a": [1, 9, 2, 3]}`, nil},
		{"append", 3, `{"a": [1, 2, 3, 9]}`, nil},
		{"negative", -1, `{"a": [1, 2, 9, 3]}`, nil},
		{"past end", 4, "", ErrIndexOutOfBounds},
		{"before front", -4, "", ErrIndexOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDoc(t, `{"a": [1, 2, 3]}`)
			n, err := ArrInsert(d, path.MustCompile("$.a"), tt.index, ir.FromInt(9))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				wantDoc(t, d, `{"a": [1, 2, 3]}`)
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if n != 4 {
				t.Errorf("ArrInsert = %d, want 4", n)
			}
			wantDoc(t, d, tt.want)
		})
	}
}

func TestArrTrim(t *testing.T) {
	tests := []struct {
		name        string
		start, stop int
		wantLen     int
		want        string
	}{
		{"inner", 1, 3, 3, `{"a": [1, 2, 3]}`},
		{"whole", 0, 4, 5, `{"a": [0, 1, 2, 3, 4]}`},
		{"stop clamped", 2, 100, 3, `{"a": [2, 3, 4]}`},
		{"out of range empties", 10, 20, 0, `{"a": []}`},
		{"inverted empties", 3, 1, 0, `{"a": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDoc(t, `{"a": [0, 1, 2, 3, 4]}`)
			n, err := ArrTrim(d, path.MustCompile("$.a"), tt.start, tt.stop)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.wantLen {
				t.Errorf("ArrTrim = %d, want %d", n, tt.wantLen)
			}
			wantDoc(t, d, tt.want)
		})
	}
}

func TestArrPop(t *testing.T) {
	d := mustDoc(t, `{"a": [1, 2, 3]}`)
	got, err := ArrPop(d, path.MustCompile("$.a"), -1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Int64 == nil || *got.Int64 != 3 {
		t.Errorf("ArrPop = %+v, want 3", got)
	}
	wantDoc(t, d, `{"a": [1, 2]}`)

	got, err = ArrPop(d, path.MustCompile("$.a"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Int64 == nil || *got.Int64 != 1 {
		t.Errorf("ArrPop = %+v, want 1", got)
	}
	wantDoc(t, d, `{"a": [2]}`)
}

func TestArrPopEmpty(t *testing.T) {
	d := mustDoc(t, `{"a": []}`)
	got, err := ArrPop(d, path.MustCompile("$.a"), -1)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("ArrPop of empty = %+v, want nil", got)
	}
	wantDoc(t, d, `{"a": []}`)
}

// A popped element that happens to be an empty array is still a popped
// element, not the no-element case.
func TestArrPopEmptyElement(t *testing.T) {
	d := mustDoc(t, `{"a": [[]]}`)
	got, err := ArrPop(d, path.MustCompile("$.a"), -1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || !got.IsArray() || len(got.Values) != 0 {
		t.Errorf("ArrPop = %+v, want an empty array", got)
	}
	wantDoc(t, d, `{"a": []}`)
}

func TestClear(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantN   int
		wantDoc string
	}{
		{"array", `{"v": [1, 2]}`, 1, `{"v": []}`},
		{"object", `{"v": {"a": 1}}`, 1, `{"v": {}}`},
		{"number", `{"v": 7}`, 1, `{"v": 0}`},
		{"string", `{"v": "x"}`, 1, `{"v": ""}`},
		{"bool", `{"v": true}`, 1, `{"v": false}`},
		{"null", `{"v": null}`, 0, `{"v": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDoc(t, tt.doc)
			n, err := Clear(d, path.MustCompile("$.v"))
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.wantN {
				t.Errorf("Clear = %d, want %d", n, tt.wantN)
			}
			wantDoc(t, d, tt.wantDoc)
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		path        string
		value       string
		opt         SetOption
		wantApplied bool
		wantDoc     string
		wantErr     error
	}{
		{"replace root", `{"a": 1}`, "$", "[1]", SetAny, true, "[1]", nil},
		{"replace member", `{"a": 1}`, "$.a", "2", SetAny, true, `{"a": 2}`, nil},
		{"replace element", `{"a": [1, 2]}`, "$.a[1]", "9", SetAny, true, `{"a": [1, 9]}`, nil},
		{"create member", `{"a": 1}`, "$.b", "2", SetAny, true, `{"a": 1, "b": 2}`, nil},
		{"nx skips existing", `{"a": 1}`, "$.a", "2", SetMustNotExist, false, `{"a": 1}`, nil},
		{"nx creates missing", `{"a": 1}`, "$.b", "2", SetMustNotExist, true, `{"a": 1, "b": 2}`, nil},
		{"xx replaces existing", `{"a": 1}`, "$.a", "2", SetMustExist, true, `{"a": 2}`, nil},
		{"xx skips missing", `{"a": 1}`, "$.b", "2", SetMustExist, false, `{"a": 1}`, nil},
		{"nx skips root", `{"a": 1}`, "$", "2", SetMustNotExist, false, `{"a": 1}`, nil},
		{"missing grandparent", `{"a": 1}`, "$.x.y", "2", SetAny, false, "", ErrPathNotFound},
		{"member under array", `{"a": [1]}`, "$.a.b", "2", SetAny, false, "", ErrPathNotFound},
		{"missing index", `{"a": [1]}`, "$.a[5]", "2", SetAny, false, "", ErrPathNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDoc(t, tt.doc)
			v := mustDoc(t, tt.value).Root
			applied, err := Set(d, path.MustCompile(tt.path), v, tt.opt)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				wantDoc(t, d, tt.doc)
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if applied != tt.wantApplied {
				t.Errorf("applied = %v, want %v", applied, tt.wantApplied)
			}
			wantDoc(t, d, tt.wantDoc)
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		wantN   int
		wantDoc string
	}{
		{"member", `{"a": 1, "b": 2}`, "$.a", 1, `{"b": 2}`},
		{"element", `{"a": [1, 2, 3]}`, "$.a[1]", 1, `{"a": [1, 3]}`},
		{"negative element", `{"a": [1, 2, 3]}`, "$.a[-1]", 1, `{"a": [1, 2]}`},
		{"missing is zero", `{"a": 1}`, "$.x", 0, `{"a": 1}`},
		{"root goes null", `{"a": 1}`, "$", 1, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDoc(t, tt.doc)
			n, err := Delete(d, path.MustCompile(tt.path))
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.wantN {
				t.Errorf("Delete = %d, want %d", n, tt.wantN)
			}
			wantDoc(t, d, tt.wantDoc)
		})
	}
}

func TestMerge(t *testing.T) {
	d := mustDoc(t, `{"a": {"b": 1, "c": 2}, "d": 3}`)
	err := Merge(d, path.MustCompile("$.a"), []byte(`{"b": 9, "c": null, "e": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	a, err := d.First(path.MustCompile("$.a"))
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(a, "c") != nil {
		t.Error("merge did not remove c")
	}
	if b := ir.Get(a, "b"); b == nil || b.Int64 == nil || *b.Int64 != 9 {
		t.Errorf("b = %+v, want 9", b)
	}
	if e := ir.Get(a, "e"); e == nil || e.String != "x" {
		t.Errorf("e = %+v, want x", e)
	}

	if err := Merge(d, path.MustCompile("$.a"), []byte("{bad")); err == nil {
		t.Error("bad patch did not fail")
	}
	if err := Merge(d, path.MustCompile("$.z"), []byte("{}")); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("missing path error = %v, want ErrPathNotFound", err)
	}
}
