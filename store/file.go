package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/signadot/jsonkv/codec"
	"github.com/signadot/jsonkv/debug"
	"github.com/signadot/jsonkv/doc"
)

// Store file layout: magic, a length-prefixed aux metadata section, then
// a count of entries, each a length-prefixed key followed by
// length-prefixed document bytes in the codec's versioned format.
var fileMagic = []byte{'J', 'K', 'V', 0x01}

// Save writes every key's document to w. The aux section is written
// empty: aux metadata has a load hook only.
func (s *Store) Save(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := bytes.NewBuffer(nil)
	buf.Write(fileMagic)
	writeUint32(buf, 0) // aux section
	keys := slices.Sorted(maps.Keys(s.keys))
	writeUint32(buf, uint32(len(keys)))
	for _, key := range keys {
		e := s.keys[key]
		e.mu.Lock()
		d := codec.Encode(e.doc.Root)
		e.mu.Unlock()
		writeUint32(buf, uint32(len(key)))
		buf.WriteString(key)
		writeUint32(buf, uint32(len(d)))
		buf.Write(d)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Load reads a store file into s, replacing its contents. Truncated
// input fails with codec.ErrShortRead so the host can retry with its
// partial-read policy; other malformed bytes fail with codec.ErrDecode.
func (s *Store) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c := &cursor{data: data}
	magic, err := c.take(len(fileMagic))
	if err != nil {
		return err
	}
	if !bytes.Equal(magic, fileMagic) {
		return fmt.Errorf("%w: bad magic", codec.ErrDecode)
	}
	aux, err := c.section()
	if err != nil {
		return err
	}
	if err := codec.LoadAux(aux); err != nil {
		return err
	}
	n, err := c.u32()
	if err != nil {
		return err
	}
	keys := make(map[string]*entry, n)
	for range n {
		keyBytes, err := c.section()
		if err != nil {
			return err
		}
		docBytes, err := c.section()
		if err != nil {
			return err
		}
		root, err := codec.Decode(docBytes)
		if err != nil {
			return fmt.Errorf("key %q: %w", keyBytes, err)
		}
		if debug.Codec() {
			debug.Logf("loaded %q (%d bytes)\n", keyBytes, len(docBytes))
		}
		keys[string(keyBytes)] = &entry{doc: doc.New(root)}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
	return nil
}

func (s *Store) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Load(f)
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d",
			codec.ErrShortRead, n, c.pos)
	}
	d := c.data[c.pos : c.pos+n]
	c.pos += n
	return d, nil
}

func (c *cursor) u32() (uint32, error) {
	d, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(d), nil
}

func (c *cursor) section() ([]byte, error) {
	n, err := c.u32()
	if err != nil {
		return nil, err
	}
	return c.take(int(n))
}
