// Package record frames a single stored resource value.
//
// Layout (little endian):
//
//	magic        [4]byte  "RSP1"
//	version      uint8
//	compression  uint8    none | lz4 | zstd
//	codec        uint8 length + bytes
//	type         uint16 length + bytes   Go type of the value
//	pool         uint16 length + bytes
//	name         uint16 length + bytes
//	rawLen       uint32   payload length before compression
//	storedLen    uint32   payload length as stored
//	checksum     uint32   CRC32 (IEEE) of the stored payload
//	payload      [storedLen]byte
//
// Records are self-describing: the reader learns the codec and compression
// and the value type from the header, so they can change between writers.
package record
