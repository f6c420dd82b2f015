package entity

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

var ErrInvalidAddress = errors.New("invalid blockchain address")

// IsHexAddress reports whether s looks like a 20 byte hex account address
// with a 0x prefix.
func IsHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}

	s = s[2:]
	if len(s) != 40 {
		return false
	}

	_, err := hex.DecodeString(s)
	return err == nil
}

// ChecksumAddress normalizes a hex account address to its EIP-55 mixed-case
// checksum form. Addresses that don't parse as 20 byte hex are rejected.
func ChecksumAddress(address string) (string, error) {
	if !IsHexAddress(address) {
		return "", ErrInvalidAddress
	}

	lower := strings.ToLower(address[2:])

	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(lower))
	digest := hex.EncodeToString(hash.Sum(nil))

	checksummed := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' && digest[i] >= '8' {
			c -= 'a' - 'A'
		}
		checksummed[i] = c
	}

	return "0x" + string(checksummed), nil
}
