// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
)

// chunk encodes one RIFF chunk: id, little endian size and body.
func chunk(id string, body []byte) []byte {
	out := make([]byte, 8, 8+len(body))
	copy(out, id)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func fmtBody(format AudioFormat, channels uint16, rate uint32, bits uint16) []byte {
	b := make([]byte, 16)
	blockAlign := channels * bits / 8
	binary.LittleEndian.PutUint16(b[0:], uint16(format))
	binary.LittleEndian.PutUint16(b[2:], channels)
	binary.LittleEndian.PutUint32(b[4:], rate)
	binary.LittleEndian.PutUint32(b[8:], rate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(b[12:], blockAlign)
	binary.LittleEndian.PutUint16(b[14:], bits)
	return b
}

func riffFile(chunks ...[]byte) []byte {
	body := []byte("WAVE")
	for _, c := range chunks {
		body = append(body, c...)
	}
	return chunk("RIFF", body)
}

func pcm16Payload(samples ...int16) []byte {
	b := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}
	return b
}

// streamOnly hides io.Seeker so the parser has to read to skip.
type streamOnly struct {
	io.Reader
}

func readers(data []byte) map[string]func() io.Reader {
	return map[string]func() io.Reader{
		"seeker": func() io.Reader { return bytes.NewReader(data) },
		"stream": func() io.Reader { return streamOnly{bytes.NewReader(data)} },
	}
}

// failWriter fails every write.
type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }
