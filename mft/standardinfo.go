package mft

import "time"

// StandardInformationTimes holds the four NTFS timestamp kinds, shared
// between $STANDARD_INFORMATION and the mirrored fields on $FILE_NAME.
// A zero time.Time means the corresponding field carried one of the two
// unset sentinels and was suppressed by winFileTime.
type StandardInformationTimes struct {
	Created    time.Time
	Modified   time.Time
	MFTChanged time.Time
	Accessed   time.Time
}

const (
	siOffCreated    = 0
	siOffModified   = 8
	siOffMFTChanged = 16
	siOffAccessed   = 24
)

// parseStandardInformation decodes a resident $STANDARD_INFORMATION
// attribute's four timestamps into entry.SITimestamps. $STANDARD_INFORMATION
// is always resident; a non-resident header here would itself be a
// malformed record and is simply ignored rather than treated as fatal.
func parseStandardInformation(buf []byte, attrOffset int, resident bool, entry *Entry) {
	if !resident {
		return
	}
	content := contentOffset(buf, attrOffset)

	entry.HasSI = true
	if t, ok := winFileTime(u64(buf, content+siOffCreated)); ok {
		entry.SITimestamps.Created = t
	}
	if t, ok := winFileTime(u64(buf, content+siOffModified)); ok {
		entry.SITimestamps.Modified = t
	}
	if t, ok := winFileTime(u64(buf, content+siOffMFTChanged)); ok {
		entry.SITimestamps.MFTChanged = t
	}
	if t, ok := winFileTime(u64(buf, content+siOffAccessed)); ok {
		entry.SITimestamps.Accessed = t
	}
}
