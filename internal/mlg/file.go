package mlg

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// DecodeFile reads an entire MLG file into memory and decodes it. The file
// is mapped read-only where mmap is available, with a plain ReadAt
// fallback; the mapping is released before returning, since the Document
// owns copies of everything it needs.
func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%s: file too large to buffer", path)
	}
	size := int(size64)

	if size > 0 {
		data, merr := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
		if merr == nil {
			doc, derr := Decode(data)
			_ = unix.Munmap(data)
			return doc, derr
		}
	}

	data, err := readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
