package mft

import "github.com/Velocidex/go-mft-timeline/internal/diag"

// attributeListRef is one entry of an $ATTRIBUTE_LIST: a pointer at an
// attribute that actually lives in a different MFT record (an "extension
// record"). Decode collects these without following them - spec.md 4.1
// keeps the decoder pure over a single slot; ResolveExtensions is the
// separate, caller-driven step that dereferences them.
type attributeListRef struct {
	typeCode     uint32
	attributeID  uint16
	mftReference uint64
}

const (
	aleOffLength  = 4
	aleOffMFTRef  = 16
	aleOffAttrID  = 24
	aleMinLen     = 26
)

// parseAttributeList decodes a resident $ATTRIBUTE_LIST's entries into
// entry.attrListRefs. A non-resident $ATTRIBUTE_LIST's content lives in
// cluster runs this decoder never materializes; such a list is simply
// left unresolved rather than treated as a decode failure.
func parseAttributeList(buf []byte, attrOffset, attrLength int, resident bool, entry *Entry) {
	if !resident {
		return
	}
	content := contentOffset(buf, attrOffset)
	size := int(u32(buf, attrOffset+offAttrContentSize))
	end := content + size
	if end > attrOffset+attrLength {
		end = attrOffset + attrLength
	}

	offset := content
	for offset+aleMinLen <= end && offset+aleMinLen <= len(buf) {
		typeCode := u32(buf, offset)
		entryLength := int(u16(buf, offset+aleOffLength))
		if entryLength <= 0 {
			break
		}

		entry.attrListRefs = append(entry.attrListRefs, attributeListRef{
			typeCode:     typeCode,
			attributeID:  u16(buf, offset+aleOffAttrID),
			mftReference: mftReference48(buf, offset+aleOffMFTRef),
		})

		offset += entryLength
	}
}

// RecordLookup fetches the raw bytes of the MFT slot at recordNumber, for
// ResolveExtensions to decode and merge. The ingest pipeline backs this
// with its record source; tests back it with an in-memory map.
type RecordLookup func(recordNumber uint64) ([]byte, error)

// ResolveExtensions follows entry's $ATTRIBUTE_LIST references, if any,
// decoding each extension record through lookup and merging its names,
// $STANDARD_INFORMATION and alternate data streams back into entry. This
// is the Attribute Walker's cross-record half (spec.md 4.1's "Extension
// record following"): visited (record_number, attribute_id) pairs are
// tracked so a reference cycle sets CorruptAttrListCycle and stops,
// instead of looping forever.
func ResolveExtensions(entry *Entry, lookup RecordLookup) {
	if len(entry.attrListRefs) == 0 {
		return
	}

	type visitKey struct {
		record uint64
		attr   uint16
	}
	visited := map[visitKey]bool{
		{entry.RecordNumber, 0}: true,
	}

	for _, ref := range entry.attrListRefs {
		if ref.mftReference == entry.RecordNumber {
			continue
		}

		key := visitKey{ref.mftReference, ref.attributeID}
		if visited[key] {
			entry.Corruption |= CorruptAttrListCycle
			diag.Printf("mft: attribute list cycle at record %d via extension %d\n", entry.RecordNumber, ref.mftReference)
			break
		}
		visited[key] = true

		data, err := lookup(ref.mftReference)
		if err != nil {
			continue
		}

		ext, err := Decode(data, ref.mftReference)
		if err != nil {
			continue
		}

		entry.Names = append(entry.Names, ext.Names...)
		if !entry.HasSI && ext.HasSI {
			entry.HasSI = true
			entry.SITimestamps = ext.SITimestamps
		}
		entry.ADS = append(entry.ADS, ext.ADS...)
		entry.Corruption |= ext.Corruption
	}
}
