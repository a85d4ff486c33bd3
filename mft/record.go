package mft

// Byte layout for MFT_ENTRY, NTFS_ATTRIBUTE, STANDARD_INFORMATION,
// FILE_NAME and ATTRIBUTE_LIST_ENTRY mirrors the teacher's NTFS_PROFILE
// (see SPEC_FULL.md 4.1) field by field.

const (
	offMagic            = 0
	offFixupOffset       = 4
	offFixupCount        = 6
	offSequenceValue     = 16
	offAttributeOffset   = 20
	offFlags             = 22
	offUsedSize          = 24
	offAllocatedSize     = 28
	offBaseRecordRef     = 32

	offAttrType         = 0
	offAttrLength       = 4
	offAttrResident     = 8
	offAttrNameLength   = 9
	offAttrNameOffset   = 10
	offAttrID           = 14
	offAttrContentSize   = 16
	offAttrContentOffset = 20
	offAttrAllocSize     = 40
	offAttrActualSize    = 48

	attrHeaderMinLen = 16

	attrTypeStandardInformation uint32 = 0x10
	attrTypeAttributeList       uint32 = 0x20
	attrTypeFileName            uint32 = 0x30
	attrTypeData                uint32 = 0x80
	attrTypeEnd                 uint32 = 0xFFFFFFFF

	recordMask48 = 0x0000FFFFFFFFFFFF
)

// EntryFlags is the MFT_ENTRY.flags bitset.
type EntryFlags uint16

const (
	FlagInUse       EntryFlags = 1 << 0
	FlagIsDirectory EntryFlags = 1 << 1
)

// Entry is a fully decoded MFT record slot - spec.md 3's "Decoded entry".
// Once returned from Decode (and, where an $ATTRIBUTE_LIST is present,
// ResolveExtensions) it is immutable.
type Entry struct {
	RecordNumber   uint64
	SequenceNumber uint16
	Flags          EntryFlags

	HasBaseRecord bool
	BaseRecordRef uint64

	Names []NameRecord

	HasSI        bool
	SITimestamps StandardInformationTimes

	SizeLogical   int64
	SizeAllocated int64

	ADS []ADSStream

	Corruption CorruptionFlag

	attrListRefs []attributeListRef
}

func (e *Entry) InUse() bool       { return e.Flags&FlagInUse != 0 }
func (e *Entry) IsDirectory() bool { return e.Flags&FlagIsDirectory != 0 }

// HasAttributeList reports whether this entry carries an $ATTRIBUTE_LIST
// pointing at extension records that ResolveExtensions should follow.
func (e *Entry) HasAttributeList() bool { return len(e.attrListRefs) > 0 }

// DisplayName implements spec.md 3 invariant 3 and 4.1's "Name selection
// for display": any Win32/POSIX/Win32+DOS name wins over every DOS name
// for the same entry, whatever their attribute ids; among several such
// names (or, failing any, several DOS names) the earlier attribute id wins.
func (e *Entry) DisplayName() (string, bool) {
	n, ok := e.PrimaryName()
	if !ok {
		return "", false
	}
	return n.Filename, true
}

// PrimaryName returns the NameRecord DisplayName's filename comes from -
// the timeline assembler uses it to source the FN-side timestamp events
// without repeating every hardlink name's timestamps.
func (e *Entry) PrimaryName() (NameRecord, bool) {
	var best, bestDOS *NameRecord

	for i := range e.Names {
		n := &e.Names[i]
		if n.Namespace == NamespaceDOS {
			if bestDOS == nil || n.attributeID < bestDOS.attributeID {
				bestDOS = n
			}
			continue
		}
		if best == nil || n.attributeID < best.attributeID {
			best = n
		}
	}

	if best != nil {
		return *best, true
	}
	if bestDOS != nil {
		return *bestDOS, true
	}
	return NameRecord{}, false
}

// Decode parses one MFT record slot. data is presumed to hold exactly one
// record (spec.md 4.1's input contract); recordNumber is the caller's
// positional index, not the record_number field embedded in the header -
// the two normally agree but the caller's index is authoritative per the
// ingest pipeline's identity rule (spec.md 4.4).
func Decode(data []byte, recordNumber uint64) (*Entry, error) {
	if len(data) < offAllocatedSize+4 {
		return nil, ErrHeaderMalformed
	}

	switch string(data[offMagic : offMagic+4]) {
	case "FILE":
	case "BAAD":
		return nil, &SlotEmptyError{Damaged: true}
	default:
		return nil, &SlotEmptyError{Damaged: false}
	}

	fixupOffset := int(u16(data, offFixupOffset))
	fixupCount := int(u16(data, offFixupCount))
	usedSize := u32(data, offUsedSize)
	allocatedSize := u32(data, offAllocatedSize)
	attributeOffset := u16(data, offAttributeOffset)

	if uint32(len(data)) < allocatedSize {
		allocatedSize = uint32(len(data))
	}
	if usedSize > allocatedSize || uint32(attributeOffset) > usedSize {
		return nil, ErrHeaderMalformed
	}

	entry := &Entry{
		RecordNumber:   recordNumber,
		SequenceNumber: u16(data, offSequenceValue),
		Flags:          EntryFlags(u16(data, offFlags)),
	}

	baseRef := u64(data, offBaseRecordRef) & recordMask48
	if baseRef != 0 {
		entry.HasBaseRecord = true
		entry.BaseRecordRef = baseRef
	}

	buf := applyFixup(data, fixupOffset, fixupCount, allocatedSize, entry)

	walkAttributes(buf, int(attributeOffset), int64(usedSize), entry)

	return entry, nil
}

// applyFixup copies data and replaces the update-sequence sentinel at the
// end of each 512-byte sector with the original bytes stored in the
// update-sequence array, per spec.md 4.1's "Fixup application". A sentinel mismatch sets CorruptFixupMismatch on entry
// and leaves that sector's trailing bytes untouched; other sectors are
// still fixed up.
func applyFixup(data []byte, usaOffset, usaCount int, allocatedSize uint32, entry *Entry) []byte {
	buf := make([]byte, len(data))
	copy(buf, data)

	if usaOffset <= 0 || usaCount <= 1 || usaOffset+2 > len(buf) {
		return buf
	}

	sentinel0, sentinel1 := buf[usaOffset], buf[usaOffset+1]
	tableStart := usaOffset + 2
	numSectors := usaCount - 1

	for i := 0; i < numSectors; i++ {
		sectorEnd := (i + 1) * 512
		if sectorEnd > len(buf) || sectorEnd > int(allocatedSize) {
			break
		}
		entryStart := tableStart + i*2
		if entryStart+2 > len(buf) {
			break
		}
		if buf[sectorEnd-2] != sentinel0 || buf[sectorEnd-1] != sentinel1 {
			entry.Corruption |= CorruptFixupMismatch
			continue
		}
		buf[sectorEnd-2] = buf[entryStart]
		buf[sectorEnd-1] = buf[entryStart+1]
	}

	return buf
}

// walkAttributes is the Attribute Walker's per-slot pass (spec.md 4.1's
// "Attribute iteration"): it reads successive attribute headers from
// start until the 0xFFFFFFFF terminator or the used_size boundary.
func walkAttributes(buf []byte, start int, usedSize int64, entry *Entry) {
	offset := start

	for {
		if int64(offset)+4 > usedSize || offset+attrHeaderMinLen > len(buf) {
			break
		}
		typeCode := u32(buf, offset+offAttrType)
		if typeCode == attrTypeEnd {
			break
		}

		length := u32(buf, offset+offAttrLength)
		if length == 0 || int64(offset)+int64(length) > usedSize {
			entry.Corruption |= CorruptTruncatedAttribute
			break
		}

		parseAttribute(buf, offset, int(length), typeCode, entry)
		offset += int(length)
	}
}

func parseAttribute(buf []byte, offset, length int, typeCode uint32, entry *Entry) {
	resident := buf[offset+offAttrResident] == 0
	nameLength := int(buf[offset+offAttrNameLength])
	nameOffset := int(u16(buf, offset+offAttrNameOffset))
	attributeID := u16(buf, offset+offAttrID)

	switch typeCode {
	case attrTypeStandardInformation:
		parseStandardInformation(buf, offset, resident, entry)

	case attrTypeFileName:
		parseFileName(buf, offset, resident, attributeID, entry)

	case attrTypeAttributeList:
		parseAttributeList(buf, offset, length, resident, entry)

	case attrTypeData:
		parseData(buf, offset, resident, nameOffset, nameLength, entry)
	}
}

func contentOffset(buf []byte, attrOffset int) int {
	return attrOffset + int(u16(buf, attrOffset+offAttrContentOffset))
}
