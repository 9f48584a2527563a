// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"

	rifflist "github.com/youpy/go-riff"
)

// ChunkInfo describes one top level chunk of a RIFF file.
type ChunkInfo struct {
	ID string
	// Size is the declared body size, without the pad byte of odd chunks.
	Size uint32
}

// ListChunks returns the chunks of a RIFF file in file order. Chunk bodies
// are not read, so this is cheap even for large data chunks.
//
// A RIFF size field larger than the file (0xFFFFFFFF from streaming
// writers, or a truncated file) is clamped to the bytes present when the
// length of r is known through Size or Stat.
func ListChunks(r rifflist.RIFFReader) (fileType string, chunks []ChunkInfo, err error) {
	// go-riff panics on short reads.
	defer func() {
		if p := recover(); p != nil {
			fileType, chunks = "", nil
			err = fmt.Errorf("%w: listing chunks: %v", ErrMalformedHeader, p)
		}
	}()

	var head [8]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	if size, ok := readerSize(r); ok {
		declared := int64(binary.LittleEndian.Uint32(head[4:]))
		if declared+8 > size {
			r = clampedRIFF{RIFFReader: r, size: uint32(size - 8)}
		}
	}

	container, err := rifflist.NewReader(r).Read()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	chunks = make([]ChunkInfo, 0, len(container.Chunks))
	for _, ch := range container.Chunks {
		size, err := declaredSize(r, ch)
		if err != nil {
			return "", nil, err
		}
		chunks = append(chunks, ChunkInfo{
			ID:   string(ch.ChunkID[:]),
			Size: size,
		})
	}

	return string(container.FileType[:]), chunks, nil
}

// declaredSize reads the size field in front of the chunk body. go-riff
// only keeps the size rounded up to an even count.
func declaredSize(r io.ReaderAt, ch *rifflist.Chunk) (uint32, error) {
	body, ok := ch.RIFFReader.(*io.SectionReader)
	if !ok {
		return ch.ChunkSize, nil
	}

	_, off, _ := body.Outer()
	var b [4]byte
	if _, err := r.ReadAt(b[:], off-4); err != nil {
		return 0, fmt.Errorf("%w: chunk %q size: %w", ErrIO, ch.ChunkID, err)
	}

	return binary.LittleEndian.Uint32(b[:]), nil
}

func readerSize(r rifflist.RIFFReader) (int64, bool) {
	switch v := r.(type) {
	case interface{ Size() int64 }:
		return v.Size(), true
	case interface{ Stat() (fs.FileInfo, error) }:
		fi, err := v.Stat()
		if err != nil {
			return 0, false
		}
		return fi.Size(), true
	}

	return 0, false
}

// clampedRIFF replaces the RIFF size field (bytes 4 to 8) with size.
type clampedRIFF struct {
	rifflist.RIFFReader
	size uint32
}

func (c clampedRIFF) ReadAt(p []byte, off int64) (int, error) {
	n, err := c.RIFFReader.ReadAt(p, off)

	var field [4]byte
	binary.LittleEndian.PutUint32(field[:], c.size)
	for i := range n {
		if pos := off + int64(i); pos >= 4 && pos < 8 {
			p[i] = field[pos-4]
		}
	}

	return n, err
}
