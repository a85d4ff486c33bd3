package mft

// ADSStream is one named alternate data stream: spec.md 4.1's "$DATA with
// a name is recorded as an alternate data stream, not merged into the
// primary size."
type ADSStream struct {
	Name string
	Size int64
}

// parseData handles a $DATA attribute. The unnamed stream (nameLength==0)
// is the file's primary content and sets Entry.SizeLogical/SizeAllocated;
// any named stream is appended to Entry.ADS. Only sizes are taken from a
// non-resident header - actual cluster run content is out of scope.
func parseData(buf []byte, attrOffset int, resident bool, nameOffset, nameLength int, entry *Entry) {
	var streamName string
	if nameLength > 0 {
		streamName = utf16String(buf, attrOffset+nameOffset, nameLength*2)
	}

	var size int64
	if resident {
		size = int64(u32(buf, attrOffset+offAttrContentSize))
	} else {
		size = int64(u64(buf, attrOffset+offAttrActualSize))
	}

	if streamName == "" {
		entry.SizeLogical = size
		if resident {
			entry.SizeAllocated = size
		} else {
			entry.SizeAllocated = int64(u64(buf, attrOffset+offAttrAllocSize))
		}
		return
	}

	entry.ADS = append(entry.ADS, ADSStream{Name: streamName, Size: size})
}
