package mft

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestCorruptionFlagStringCombination(t *testing.T) {
	flag := CorruptFixupMismatch | CorruptAttrListCycle

	g := goldie.New(t)
	g.Assert(t, "corruption_flag_string", []byte(flag.String()))
}

func TestCorruptionFlagStringNone(t *testing.T) {
	assert.Equal(t, "none", CorruptionFlag(0).String())
}

func TestCorruptionFlagHas(t *testing.T) {
	flag := CorruptFixupMismatch | CorruptTruncatedAttribute
	assert.True(t, flag.Has(CorruptFixupMismatch))
	assert.True(t, flag.Has(CorruptTruncatedAttribute))
	assert.False(t, flag.Has(CorruptAttrListCycle))
}
