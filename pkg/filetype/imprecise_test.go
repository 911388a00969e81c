package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpreciseMPEGProgramStream(t *testing.T) {
	res := detect(t, []byte{0x00, 0x00, 0x01, 0xBA, 0x00}, Config{})
	require.NotNil(t, res)
	assert.Equal(t, Result{"mpg", "video/mpeg"}, *res)

	res = detect(t, []byte{0x00, 0x00, 0x01, 0xB3, 0x00}, Config{})
	require.NotNil(t, res)
	assert.Equal(t, Result{"mpg", "video/mpeg"}, *res)
}

func TestImpreciseTTFICOCUR(t *testing.T) {
	res := detect(t, []byte{0x00, 0x01, 0x00, 0x00, 0x00}, Config{})
	require.NotNil(t, res)
	assert.Equal(t, Result{"ttf", "font/ttf"}, *res)

	res = detect(t, []byte{0x00, 0x00, 0x01, 0x00}, Config{})
	require.NotNil(t, res)
	assert.Equal(t, Result{"ico", "image/x-icon"}, *res)

	res = detect(t, []byte{0x00, 0x00, 0x02, 0x00}, Config{})
	require.NotNil(t, res)
	assert.Equal(t, Result{"cur", "image/x-icon"}, *res)
}

func mpegAudioFrame(secondByte byte) []byte {
	return []byte{0xFF, secondByte, 0x00, 0x00}
}

func TestScanMPEGAudioSyncClassifiesEachLayer(t *testing.T) {
	res := detect(t, mpegAudioFrame(0xF0), Config{}) // 11110000: &0x16==0x10 -> aac
	require.NotNil(t, res)
	assert.Equal(t, Result{"aac", "audio/aac"}, *res)

	res = detect(t, mpegAudioFrame(0xFA), Config{}) // 11111010: &0x06==0x02 -> mp3
	require.NotNil(t, res)
	assert.Equal(t, Result{"mp3", "audio/mpeg"}, *res)

	res = detect(t, mpegAudioFrame(0xFC), Config{}) // 11111100: &0x06==0x04 -> mp2
	require.NotNil(t, res)
	assert.Equal(t, Result{"mp2", "audio/mpeg"}, *res)

	res = detect(t, mpegAudioFrame(0xFE), Config{}) // 11111110: &0x06==0x06 -> mp1
	require.NotNil(t, res)
	assert.Equal(t, Result{"mp1", "audio/mpeg"}, *res)
}

func TestScanMPEGAudioSyncRejectsBadSyncWord(t *testing.T) {
	res := detect(t, []byte{0xFF, 0x00, 0x00, 0x00}, Config{}) // top three bits of byte1 not all set (byte1&0xE0 != 0xE0)
	assert.Nil(t, res)
}

func TestImpreciseOnlyRunsWhenConfidentDeferredCleanly(t *testing.T) {
	// A confident match (bmp) must win outright, even though the trailing
	// bytes would otherwise look like an MPEG audio sync word to the
	// imprecise fallback.
	input := append([]byte{0x42, 0x4D}, mpegAudioFrame(0xFA)...)
	res := detect(t, input, Config{})
	require.NotNil(t, res)
	assert.Equal(t, Result{"bmp", "image/bmp"}, *res)
}
