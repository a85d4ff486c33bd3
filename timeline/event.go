// Package timeline turns decoded mft.Entry values into sortable,
// filterable timestamp events, grounded on the teacher's parser/mft.go
// MFTHighlight (the same SI/FN 0x10/0x30 timestamp split, Created/
// LastModified/LastRecordChange/LastAccess kinds).
package timeline

import (
	"time"

	"github.com/Velocidex/go-mft-timeline/mft"
)

// Origin distinguishes which attribute a timestamp came from.
type Origin uint8

const (
	OriginStandardInformation Origin = iota
	OriginFileName
)

func (o Origin) String() string {
	if o == OriginFileName {
		return "FN"
	}
	return "SI"
}

// Kind is one of the four NTFS timestamp roles, shared by both origins.
type Kind uint8

const (
	KindCreated Kind = iota
	KindModified
	KindMFTChanged
	KindAccessed
)

func (k Kind) String() string {
	switch k {
	case KindCreated:
		return "created"
	case KindModified:
		return "modified"
	case KindMFTChanged:
		return "mft_changed"
	case KindAccessed:
		return "accessed"
	default:
		return "unknown"
	}
}

// Event is one timeline row: a single timestamp pulled from one entry's
// $STANDARD_INFORMATION or primary $FILE_NAME attribute.
type Event struct {
	Timestamp    time.Time
	RecordNumber uint64
	Origin       Origin
	Kind         Kind

	Path        string
	Name        string
	IsDirectory bool

	Size      int64
	IsDeleted bool
	ADS       []mft.ADSStream
}
