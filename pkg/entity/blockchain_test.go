package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumAddress(t *testing.T) {
	// Reference vectors from the EIP-55 specification.
	tests := []struct {
		in       string
		expected string
	}{
		{in: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", expected: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{in: "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359", expected: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"},
		{in: "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb", expected: "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"},
		{in: "0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb", expected: "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"},
	}

	for _, test := range tests {
		checksummed, err := ChecksumAddress(test.in)
		require.NoError(t, err)
		assert.Equal(t, test.expected, checksummed)

		// Checksumming is idempotent and case-insensitive on input.
		again, err := ChecksumAddress(checksummed)
		require.NoError(t, err)
		assert.Equal(t, test.expected, again)
	}
}

func TestChecksumAddressInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"0x",
		"not-an-address",
		"tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb",
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae",    // too short
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed0",  // too long
		"0xzzaeb6053f3e94c9b9a09f33669435e7ef1beaed",   // not hex
		"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",     // no prefix
	} {
		_, err := ChecksumAddress(in)
		assert.ErrorIs(t, err, ErrInvalidAddress, "address %q", in)
	}
}

func TestIsHexAddress(t *testing.T) {
	assert.True(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.True(t, IsHexAddress("0X5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.False(t, IsHexAddress("0x5aaeb6"))
	assert.False(t, IsHexAddress("hello"))
}
