// Package jsonkv binds the document engine to a keyed store: each
// function validates its arguments, opens the keyed document under the
// store's per-key lock, invokes the engine, and forwards keyspace
// notifications. No engine logic lives here.
package jsonkv

import (
	"errors"
	"fmt"

	"github.com/signadot/jsonkv/doc"
	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
	"github.com/signadot/jsonkv/path"
	"github.com/signadot/jsonkv/store"
)

// ErrNotRoot rejects creation of a new key anywhere but the root path.
var ErrNotRoot = errors.New("new objects must be created at the root")

func compilePath(raw string) (*path.Path, error) {
	return path.Compile(path.Normalize(raw))
}

// Set writes a JSON value at rawPath under key. New keys may only be
// created at the root path. The returned bool reports whether the write
// applied; NX/XX style restrictions make it false without error.
func Set(s *store.Store, key, rawPath string, value []byte, opt doc.SetOption, popts ...parse.ParseOption) (bool, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return false, err
	}
	v, err := parse.Parse(value, popts...)
	if err != nil {
		return false, err
	}
	applied := false
	err = s.Update(key, func(d *doc.Document) error {
		applied, err = doc.Set(d, p, v, opt)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		if opt == doc.SetMustExist {
			return false, nil
		}
		if !p.IsRoot() {
			return false, ErrNotRoot
		}
		s.Create(key, v)
		applied, err = true, nil
	}
	if err != nil {
		return false, err
	}
	if applied {
		s.Notify("json.set", key)
	}
	return applied, nil
}

// Get renders the values at rawPaths (the whole document when none are
// given). ok is false when the key does not exist.
func Get(s *store.Store, key string, encOpts []encode.EncodeOption, rawPaths ...string) (string, bool, error) {
	paths := make([]*path.Path, 0, len(rawPaths))
	for _, raw := range rawPaths {
		p, err := compilePath(raw)
		if err != nil {
			return "", false, err
		}
		paths = append(paths, p)
	}
	var res string
	err := s.View(key, func(d *doc.Document) error {
		var err error
		res, err = d.ToText(paths, encOpts...)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return res, true, nil
}

// MGet renders the value at rawPath for each key; keys without the path
// or without a document yield nil rather than failing the call.
func MGet(s *store.Store, keys []string, rawPath string) ([]*string, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return nil, err
	}
	res := make([]*string, len(keys))
	for i, key := range keys {
		err := s.View(key, func(d *doc.Document) error {
			text, err := d.ToText([]*path.Path{p})
			if err != nil {
				return err
			}
			res[i] = &text
			return nil
		})
		if err != nil {
			res[i] = nil
		}
	}
	return res, nil
}

// Del removes the value at rawPath, deleting the key itself for the root
// path. Missing keys and paths report 0 removals without error.
func Del(s *store.Store, key, rawPath string) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	deleted := 0
	if p.IsRoot() {
		if s.Delete(key) {
			deleted = 1
		}
	} else {
		err = s.Update(key, func(d *doc.Document) error {
			deleted, err = doc.Delete(d, p)
			return err
		})
		if errors.Is(err, store.ErrNoKey) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
	}
	if deleted > 0 {
		s.Notify("json.del", key)
	}
	return deleted, nil
}

// Type reports the kind of the value at rawPath; ok is false for a
// missing key or path.
func Type(s *store.Store, key, rawPath string) (string, bool, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return "", false, err
	}
	var res string
	err = s.View(key, func(d *doc.Document) error {
		res, err = d.Type(p)
		return err
	})
	if errors.Is(err, store.ErrNoKey) || errors.Is(err, doc.ErrPathNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return res, true, nil
}

func NumIncrBy(s *store.Store, key, rawPath string, literal []byte) (string, error) {
	return numOp(s, "json.numincrby", key, rawPath, literal, doc.NumIncrBy)
}

func NumMultBy(s *store.Store, key, rawPath string, literal []byte) (string, error) {
	return numOp(s, "json.nummultby", key, rawPath, literal, doc.NumMultBy)
}

func numOp(s *store.Store, event, key, rawPath string, literal []byte,
	op func(*doc.Document, *path.Path, []byte) (string, error)) (string, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return "", err
	}
	var res string
	err = s.Update(key, func(d *doc.Document) error {
		res, err = op(d, p, literal)
		return err
	})
	if err != nil {
		return "", err
	}
	s.Notify(event, key)
	return res, nil
}

// Toggle negates the boolean at rawPath and returns the new value.
func Toggle(s *store.Store, key, rawPath string) (bool, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return false, err
	}
	var res bool
	err = s.Update(key, func(d *doc.Document) error {
		res, err = doc.Toggle(d, p)
		return err
	})
	if err != nil {
		return false, err
	}
	s.Notify("json.toggle", key)
	return res, nil
}

// StrAppend concatenates a JSON string literal onto the string at
// rawPath and returns the new length.
func StrAppend(s *store.Store, key, rawPath string, literal []byte) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	res := 0
	err = s.Update(key, func(d *doc.Document) error {
		res, err = doc.StrAppend(d, p, literal)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.Notify("json.strappend", key)
	return res, nil
}

func StrLen(s *store.Store, key, rawPath string) (int, bool, error) {
	return lenOp(s, key, rawPath, (*doc.Document).StrLen)
}

func ArrLen(s *store.Store, key, rawPath string) (int, bool, error) {
	return lenOp(s, key, rawPath, (*doc.Document).ArrLen)
}

func ObjLen(s *store.Store, key, rawPath string) (int, bool, error) {
	return lenOp(s, key, rawPath, (*doc.Document).ObjLen)
}

func lenOp(s *store.Store, key, rawPath string,
	op func(*doc.Document, *path.Path) (int, error)) (int, bool, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, false, err
	}
	res := 0
	err = s.View(key, func(d *doc.Document) error {
		res, err = op(d, p)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return res, true, nil
}

// ArrAppend appends one or more JSON values to the array at rawPath and
// returns the new length.
func ArrAppend(s *store.Store, key, rawPath string, items ...[]byte) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	nodes, err := parseItems(items)
	if err != nil {
		return 0, err
	}
	res := 0
	err = s.Update(key, func(d *doc.Document) error {
		res, err = doc.ArrAppend(d, p, nodes...)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.Notify("json.arrappend", key)
	return res, nil
}

// ArrInsert splices JSON values into the array at rawPath before index
// and returns the new length.
func ArrInsert(s *store.Store, key, rawPath string, index int, items ...[]byte) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	nodes, err := parseItems(items)
	if err != nil {
		return 0, err
	}
	res := 0
	err = s.Update(key, func(d *doc.Document) error {
		res, err = doc.ArrInsert(d, p, index, nodes...)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.Notify("json.arrinsert", key)
	return res, nil
}

func parseItems(items [][]byte) ([]*ir.Node, error) {
	nodes := make([]*ir.Node, len(items))
	for i, item := range items {
		n, err := parse.Parse(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		nodes[i] = n
	}
	return nodes, nil
}

// ArrIndex scans for the first element equal to the JSON scalar within
// [start, stop); missing keys and absent elements report -1.
func ArrIndex(s *store.Store, key, rawPath string, scalar []byte, start, stop int) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	sv, err := parse.Parse(scalar)
	if err != nil {
		return 0, err
	}
	res := -1
	err = s.View(key, func(d *doc.Document) error {
		res, err = d.ArrIndex(p, sv, start, stop)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	return res, nil
}

// ArrPop removes the element at the clamped index of the array at
// rawPath and returns it rendered; ok is false when the array is empty.
func ArrPop(s *store.Store, key, rawPath string, index int) (string, bool, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return "", false, err
	}
	var popped *ir.Node
	err = s.Update(key, func(d *doc.Document) error {
		popped, err = doc.ArrPop(d, p, index)
		return err
	})
	if err != nil {
		return "", false, err
	}
	if popped == nil {
		return "", false, nil
	}
	s.Notify("json.arrpop", key)
	return encode.MustString(popped), true, nil
}

// ArrTrim keeps [start, stop] of the array at rawPath and returns the
// new length.
func ArrTrim(s *store.Store, key, rawPath string, start, stop int) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	res := 0
	err = s.Update(key, func(d *doc.Document) error {
		res, err = doc.ArrTrim(d, p, start, stop)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.Notify("json.arrtrim", key)
	return res, nil
}

// ObjKeys lists the object keys at rawPath in insertion order; ok is
// false for a missing key.
func ObjKeys(s *store.Store, key, rawPath string) ([]string, bool, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return nil, false, err
	}
	var res []string
	err = s.View(key, func(d *doc.Document) error {
		res, err = d.ObjKeys(p)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// Clear empties containers (and zeroes scalars) at rawPath, reporting
// how many nodes were cleared; missing keys report 0.
func Clear(s *store.Store, key, rawPath string) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	res := 0
	err = s.Update(key, func(d *doc.Document) error {
		res, err = doc.Clear(d, p)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if res > 0 {
		s.Notify("json.clear", key)
	}
	return res, nil
}

// Merge applies an RFC 7386 merge patch at rawPath.
func Merge(s *store.Store, key, rawPath string, patch []byte) error {
	p, err := compilePath(rawPath)
	if err != nil {
		return err
	}
	err = s.Update(key, func(d *doc.Document) error {
		return doc.Merge(d, p, patch)
	})
	if err != nil {
		return err
	}
	s.Notify("json.merge", key)
	return nil
}

// Resp returns the protocol-shaped flattening of the value at rawPath;
// missing keys yield nil.
func Resp(s *store.Store, key, rawPath string) (any, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return nil, err
	}
	var res any
	err = s.View(key, func(d *doc.Document) error {
		res, err = d.Resp(p)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DebugMemory estimates the byte footprint of the subtree at rawPath;
// missing keys report 0.
func DebugMemory(s *store.Store, key, rawPath string) (int, error) {
	p, err := compilePath(rawPath)
	if err != nil {
		return 0, err
	}
	res := 0
	err = s.View(key, func(d *doc.Document) error {
		res, err = d.Memory(p)
		return err
	})
	if errors.Is(err, store.ErrNoKey) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return res, nil
}
