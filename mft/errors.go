package mft

import "errors"

// ErrSlotEmpty marks a record slot that carries no decodable entry - the
// slot was never allocated or its signature does not match FILE/BAAD. This
// is not a failure; callers skip the slot silently.
var ErrSlotEmpty = errors.New("mft: slot empty")

// ErrHeaderMalformed marks a record whose header fails the fail-closed
// checks in spec.md 4.1 (used_size > allocated_size, or
// first_attribute_offset past used_size). The slot produces no entry.
var ErrHeaderMalformed = errors.New("mft: header malformed")

// SlotEmptyError distinguishes a BAAD signature (damaged but possibly
// recoverable) from a slot whose signature matches neither FILE nor BAAD.
// Both outcomes are ErrSlotEmpty to callers that only check with
// errors.Is; the Damaged flag lets the ingest pipeline keep a separate
// BAAD-sighting counter per the open question in spec.md 9.
type SlotEmptyError struct {
	Damaged bool
}

func (e *SlotEmptyError) Error() string {
	if e.Damaged {
		return "mft: slot empty (BAAD signature)"
	}
	return "mft: slot empty (no FILE/BAAD signature)"
}

func (e *SlotEmptyError) Is(target error) bool {
	return target == ErrSlotEmpty
}

// CorruptionFlag is a bitset of sub-parse failures a decoded entry
// survived. The entry is still emitted; these bits let a caller decide
// how much to trust it.
type CorruptionFlag uint32

const (
	CorruptFixupMismatch CorruptionFlag = 1 << iota
	CorruptTruncatedAttribute
	CorruptAttrListCycle
)

func (f CorruptionFlag) Has(flag CorruptionFlag) bool {
	return f&flag != 0
}

func (f CorruptionFlag) String() string {
	if f == 0 {
		return "none"
	}
	names := []string{}
	if f.Has(CorruptFixupMismatch) {
		names = append(names, "FixupMismatch")
	}
	if f.Has(CorruptTruncatedAttribute) {
		names = append(names, "TruncatedAttribute")
	}
	if f.Has(CorruptAttrListCycle) {
		names = append(names, "AttrListCycle")
	}
	result := names[0]
	for _, n := range names[1:] {
		result += "|" + n
	}
	return result
}
