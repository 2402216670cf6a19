package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/hupe1980/respool/internal/conv"
)

const (
	// Magic identifies a record.
	Magic = "RSP1"
	// Version is the current record format version.
	Version uint8 = 2

	fixedSize = len(Magic) + 1 + 1 + 1 + 2 + 2 + 2 + 4 + 4 + 4
)

var (
	// ErrCorrupt is returned for records that cannot be parsed.
	ErrCorrupt = errors.New("corrupt record")
	// ErrChecksum is returned when the payload checksum does not match.
	ErrChecksum = errors.New("record checksum mismatch")
	// ErrVersion is returned for records written by an unknown format version.
	ErrVersion = errors.New("unsupported record version")
)

// Header describes a record payload.
type Header struct {
	Codec       string
	Type        string
	Pool        string
	Name        string
	Compression Compression
}

// Encode frames payload. The compression in h is a request; the header of
// the produced record carries the compression actually applied.
func Encode(h Header, payload []byte) ([]byte, error) {
	codecLen, err := conv.LenUint8(len(h.Codec))
	if err != nil {
		return nil, fmt.Errorf("codec name too long: %w", err)
	}
	typeLen, err := conv.LenUint16(len(h.Type))
	if err != nil {
		return nil, fmt.Errorf("type name too long: %w", err)
	}
	poolLen, err := conv.LenUint16(len(h.Pool))
	if err != nil {
		return nil, fmt.Errorf("pool name too long: %w", err)
	}
	nameLen, err := conv.LenUint16(len(h.Name))
	if err != nil {
		return nil, fmt.Errorf("resource name too long: %w", err)
	}
	payloadLen, err := conv.LenUint32(len(payload))
	if err != nil {
		return nil, fmt.Errorf("payload too large: %w", err)
	}

	stored, used, err := compress(payload, h.Compression)
	if err != nil {
		return nil, err
	}

	storedLen, err := conv.LenUint32(len(stored))
	if err != nil {
		return nil, fmt.Errorf("payload too large: %w", err)
	}

	buf := make([]byte, 0, fixedSize+len(h.Codec)+len(h.Type)+len(h.Pool)+len(h.Name)+len(stored))
	buf = append(buf, Magic...)
	buf = append(buf, Version, byte(used))
	buf = append(buf, codecLen)
	buf = append(buf, h.Codec...)
	buf = binary.LittleEndian.AppendUint16(buf, typeLen)
	buf = append(buf, h.Type...)
	buf = binary.LittleEndian.AppendUint16(buf, poolLen)
	buf = append(buf, h.Pool...)
	buf = binary.LittleEndian.AppendUint16(buf, nameLen)
	buf = append(buf, h.Name...)
	buf = binary.LittleEndian.AppendUint32(buf, payloadLen)
	buf = binary.LittleEndian.AppendUint32(buf, storedLen)
	buf = binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(stored))
	buf = append(buf, stored...)
	return buf, nil
}

// Decode parses a record and returns its header and uncompressed payload.
func Decode(data []byte) (Header, []byte, error) {
	var h Header
	r := reader{data: data}

	if string(r.next(len(Magic))) != Magic {
		return h, nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	version := r.u8()
	if r.err == nil && version != Version {
		return h, nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}
	h.Compression = Compression(r.u8())
	h.Codec = string(r.next(int(r.u8())))
	h.Type = string(r.next(int(r.u16())))
	h.Pool = string(r.next(int(r.u16())))
	h.Name = string(r.next(int(r.u16())))
	rawLen := r.u32()
	storedLen := r.u32()
	sum := r.u32()
	n, err := conv.Uint32ToInt(storedLen)
	if err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	stored := r.next(n)
	if r.err != nil {
		return h, nil, r.err
	}
	if r.off != len(data) {
		return h, nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(data)-r.off)
	}
	if crc32.ChecksumIEEE(stored) != sum {
		return h, nil, ErrChecksum
	}

	payload, err := decompress(stored, h.Compression, rawLen)
	if err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return h, payload, nil
}

// reader is a bounds-checked cursor; after the first short read every
// accessor returns zero values and err stays set.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: truncated at offset %d", ErrCorrupt, r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}
