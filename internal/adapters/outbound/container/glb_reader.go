/*
Package container decodes the GLB binary container.

Layout (all integers little-endian uint32):

	[Header]       12 bytes  magic "glTF", version, total length
	[Chunk header]  8 bytes  chunk length, chunk type
	[Chunk data]    chunk length bytes of UTF-8 JSON

Only the header and the first (JSON) chunk are read. The binary buffer chunk
that normally follows is never touched.
*/
package container

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/ntbtools/glbcheck/internal/domain"
)

const (
	// Magic is "glTF" read as a little-endian uint32.
	Magic uint32 = 0x46546C67
	// Version is written by Encode.
	Version = domain.SupportedContainerVersion

	ChunkTypeJSON uint32 = 0x4E4F534A // "JSON"
	ChunkTypeBIN  uint32 = 0x004E4942 // "BIN\0"

	headerSize      = 12
	chunkHeaderSize = 8
)

var (
	ErrBadMagic        = errors.New("not a GLB container (bad magic)")
	ErrTruncated       = errors.New("container truncated")
	ErrInvalidEncoding = errors.New("metadata chunk is not valid UTF-8")
)

// Reader implements domain.ContainerReader for files on disk.
type Reader struct{}

func New() *Reader { return &Reader{} }

// Read opens path and decodes its header and metadata chunk. The file is
// closed before Read returns.
func (r *Reader) Read(path string) (*domain.Document, *domain.ContainerHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a GLB header and metadata chunk from rd.
func Parse(rd io.Reader) (*domain.Document, *domain.ContainerHeader, error) {
	var buf [headerSize + chunkHeaderSize]byte

	if _, err := io.ReadFull(rd, buf[:headerSize]); err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", truncated(err))
	}

	hdr := &domain.ContainerHeader{
		Magic:   binary.LittleEndian.Uint32(buf[0:4]),
		Version: binary.LittleEndian.Uint32(buf[4:8]),
		Length:  binary.LittleEndian.Uint32(buf[8:12]),
	}
	if hdr.Magic != Magic {
		return nil, hdr, fmt.Errorf("magic 0x%08X: %w", hdr.Magic, ErrBadMagic)
	}

	if _, err := io.ReadFull(rd, buf[headerSize:]); err != nil {
		return nil, hdr, fmt.Errorf("reading chunk header: %w", truncated(err))
	}
	hdr.ChunkLength = binary.LittleEndian.Uint32(buf[12:16])
	hdr.ChunkType = binary.LittleEndian.Uint32(buf[16:20])

	// Read through a LimitReader so a bogus length cannot force a huge
	// allocation up front.
	payload, err := io.ReadAll(io.LimitReader(rd, int64(hdr.ChunkLength)))
	if err != nil {
		return nil, hdr, fmt.Errorf("reading metadata chunk: %w", err)
	}
	if uint32(len(payload)) < hdr.ChunkLength {
		return nil, hdr, fmt.Errorf("metadata chunk has %d of %d bytes: %w", len(payload), hdr.ChunkLength, ErrTruncated)
	}
	if !utf8.Valid(payload) {
		return nil, hdr, ErrInvalidEncoding
	}

	var doc domain.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, hdr, fmt.Errorf("decoding metadata JSON: %w", err)
	}

	return &doc, hdr, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

// Encode writes doc as a minimal GLB: header plus a JSON chunk padded with
// spaces to a 4-byte boundary. No binary chunk is emitted.
func Encode(w io.Writer, doc *domain.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding metadata JSON: %w", err)
	}
	return EncodeRaw(w, Magic, Version, payload)
}

// EncodeRaw writes a GLB with the given magic, version and JSON payload
// verbatim apart from padding. It exists so callers can build malformed
// containers.
func EncodeRaw(w io.Writer, magic, version uint32, payload []byte) error {
	if pad := len(payload) % 4; pad != 0 {
		payload = append(payload, bytes.Repeat([]byte{' '}, 4-pad)...)
	}

	total := uint32(headerSize + chunkHeaderSize + len(payload))
	fields := []uint32{magic, version, total, uint32(len(payload)), ChunkTypeJSON}

	var out bytes.Buffer
	for _, v := range fields {
		if err := binary.Write(&out, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	out.Write(payload)

	_, err := w.Write(out.Bytes())
	return err
}

// WriteFile encodes doc to path.
func WriteFile(path string, doc *domain.Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
