package mft

// Namespace identifies which of the four FILE_NAME naming conventions a
// NameRecord was recorded under.
type Namespace uint8

const (
	NamespacePOSIX     Namespace = 0
	NamespaceWin32     Namespace = 1
	NamespaceDOS       Namespace = 2
	NamespaceWin32DOS  Namespace = 3
)

func (n Namespace) String() string {
	switch n {
	case NamespacePOSIX:
		return "POSIX"
	case NamespaceWin32:
		return "Win32"
	case NamespaceDOS:
		return "DOS"
	case NamespaceWin32DOS:
		return "Win32+DOS"
	default:
		return "unknown"
	}
}

// NameRecord is one $FILE_NAME attribute: a parent reference, the name
// itself, and the FN-side mirror of the four SI timestamp kinds.
type NameRecord struct {
	Namespace Namespace
	ParentRef uint64
	ParentSeq uint16
	Filename  string
	Times     StandardInformationTimes

	attributeID uint16
}

const (
	fnOffParentRef  = 0
	fnOffParentSeq  = 6
	fnOffCreated    = 8
	fnOffModified   = 16
	fnOffMFTChanged = 24
	fnOffAccessed   = 32
	fnOffNameLength = 64
	fnOffNamespace  = 65
	fnOffName       = 66
)

// parseFileName decodes a resident $FILE_NAME attribute's content and
// appends the resulting NameRecord to entry.Names. Non-resident
// $FILE_NAME never occurs on-disk; such a record is simply skipped.
func parseFileName(buf []byte, attrOffset int, resident bool, attributeID uint16, entry *Entry) {
	if !resident {
		return
	}
	content := contentOffset(buf, attrOffset)

	rec := NameRecord{
		ParentRef:   mftReference48(buf, content+fnOffParentRef),
		ParentSeq:   u16(buf, content+fnOffParentSeq),
		attributeID: attributeID,
	}
	if t, ok := winFileTime(u64(buf, content+fnOffCreated)); ok {
		rec.Times.Created = t
	}
	if t, ok := winFileTime(u64(buf, content+fnOffModified)); ok {
		rec.Times.Modified = t
	}
	if t, ok := winFileTime(u64(buf, content+fnOffMFTChanged)); ok {
		rec.Times.MFTChanged = t
	}
	if t, ok := winFileTime(u64(buf, content+fnOffAccessed)); ok {
		rec.Times.Accessed = t
	}

	if content+fnOffNamespace >= len(buf) {
		return
	}
	nameLength := int(buf[content+fnOffNameLength])
	rec.Namespace = Namespace(buf[content+fnOffNamespace])
	rec.Filename = utf16String(buf, content+fnOffName, nameLength*2)

	entry.Names = append(entry.Names, rec)
}
