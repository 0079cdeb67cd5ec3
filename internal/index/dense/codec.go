package dense

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Serialized index layout: 4-byte magic, uint32 version, uint32 dim,
// uint32 count, then count*dim little-endian float32 values.
const (
	codecMagic   = "LDXF"
	codecVersion = 1
)

// Save writes the index to path.
func (ix *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(codecMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	for _, v := range []uint32{codecVersion, uint32(ix.dim), uint32(ix.count)} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	buf := make([]byte, 4)
	for _, x := range ix.vectors {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(x))
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write vectors: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush index file: %w", err)
	}
	return f.Sync()
}

// Load reads a serialized index from path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	magic := make([]byte, len(codecMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != codecMagic {
		return nil, fmt.Errorf("not a dense index file (magic %q)", magic)
	}

	var version, dim, count uint32
	for _, p := range []*uint32{&version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
	}
	if version != codecVersion {
		return nil, fmt.Errorf("unsupported index version %d", version)
	}
	if count > 0 && dim == 0 {
		return nil, fmt.Errorf("corrupt header: %d vectors with zero dimension", count)
	}

	ix := &Index{
		dim:     int(dim),
		count:   int(count),
		vectors: make([]float32, int(dim)*int(count)),
	}
	data := make([]byte, len(ix.vectors)*4)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	for i := range ix.vectors {
		ix.vectors[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return ix, nil
}
