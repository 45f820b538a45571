package barcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/activos-api/pkg/barcode"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  sn-001a ":  "SN-001A",
		"ＳＮ－００１": "SN-001",
		"tag 42":      "TAG42",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, barcode.Normalize(in), "entrada %q", in)
	}
}

func TestNormalizePtr(t *testing.T) {
	assert.Nil(t, barcode.NormalizePtr(nil))
	blank := "   "
	assert.Nil(t, barcode.NormalizePtr(&blank))
	v := "ab1"
	got := barcode.NormalizePtr(&v)
	if assert.NotNil(t, got) {
		assert.Equal(t, "AB1", *got)
	}
}
