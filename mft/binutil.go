package mft

import (
	"encoding/binary"
	"unicode/utf16"
)

// Hand written little-endian field readers over a record's raw bytes.
// Mirrors the teacher's ParseUint16/ParseUint32/ParseUint64 helpers but
// operates on an in-memory slice rather than an io.ReaderAt, since the
// decoder always works over one already-buffered record slot.

func u16(buf []byte, offset int) uint16 {
	if offset < 0 || offset+2 > len(buf) {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[offset : offset+2])
}

func u32(buf []byte, offset int) uint32 {
	if offset < 0 || offset+4 > len(buf) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

func u64(buf []byte, offset int) uint64 {
	if offset < 0 || offset+8 > len(buf) {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[offset : offset+8])
}

// mftReference48 reads a 48-bit record-number bitfield packed into the
// low 48 bits of a little-endian u64, as used by FILE_NAME.mftReference
// and ATTRIBUTE_LIST_ENTRY.mftReference.
func mftReference48(buf []byte, offset int) uint64 {
	return u64(buf, offset) & 0x0000FFFFFFFFFFFF

}

// utf16String decodes a UTF-16LE string of byteLength bytes starting at
// offset. Used for FILE_NAME.name and attribute names.
func utf16String(buf []byte, offset int, byteLength int) string {
	if offset < 0 || byteLength <= 0 || offset+byteLength > len(buf) {
		return ""
	}
	raw := buf[offset : offset+byteLength]
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
	}
	return string(utf16.Decode(units))
}
