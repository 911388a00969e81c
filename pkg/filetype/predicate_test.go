package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeStringRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		s    string
		enc  Encoding
	}{
		{"ascii", "ftyp", ASCII},
		{"latin1", "caf\xe9", Latin1},
		{"utf16le-bmp", "matroska", UTF16LE},
		{"utf16be-bmp", "matroska", UTF16BE},
		{"utf16le-surrogate-pair", "emoji: \U0001F600", UTF16LE},
		{"utf16be-surrogate-pair", "emoji: \U0001F600", UTF16BE},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := encodeString(tc.s, tc.enc)
			decoded, err := decodeString(encoded, tc.enc)
			require.NoError(t, err)
			assert.Equal(t, tc.s, decoded)
		})
	}
}

func TestCheckMatchesAtOffsetWithMask(t *testing.T) {
	sample := []byte{0x00, 0xFF, 0x42, 0x00}
	assert.True(t, check(sample, []byte{0x42}, 2, nil))
	assert.False(t, check(sample, []byte{0x43}, 2, nil))

	// mask clears the high nibble before comparing
	assert.True(t, check(sample, []byte{0x0F}, 1, []byte{0x0F}))
}

func TestCheckOutOfBoundsReadsAsZeroRatherThanPanicking(t *testing.T) {
	sample := []byte{0x01, 0x02}
	assert.False(t, check(sample, []byte{0x00, 0x00, 0x99}, 0, nil))
	assert.NotPanics(t, func() {
		check(sample, []byte{0x01, 0x02, 0x03, 0x04}, 0, nil)
	})
}

func TestCheckStringEncodesBeforeMatching(t *testing.T) {
	sample := encodeString("ftypheic", ASCII)
	assert.True(t, checkString(sample, "ftyp", 0, ASCII))
	assert.False(t, checkString(sample, "ftyp", 1, ASCII))
}

func TestIndexOfFindsNeedleAnywhereInWindow(t *testing.T) {
	sample := []byte("garbage-prefix-AIPrivateData-garbage-suffix")
	assert.Equal(t, 15, indexOf(sample, []byte("AIPrivateData")))
	assert.Equal(t, -1, indexOf(sample, []byte("not-present")))
}
