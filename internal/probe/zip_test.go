package probe

import (
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/pbkdf2"
)

func TestAesFastAcceptMatchesDerivedVerifier(t *testing.T) {
	salt := []byte("0123456789abcdef") // 16 bytes, 256-bit salt length
	password := "correct-horse"
	derivedLen := 2*(256/8) + 2

	derived := pbkdf2.Key([]byte(password), salt, 1000, derivedLen, sha1.New)
	var verifier [2]byte
	copy(verifier[:], derived[len(derived)-2:])

	info := AesInfo{AESKeyBits: 256, Salt: salt, Verifier: verifier, DerivedKeyLength: derivedLen}
	assert.True(t, aesFastAccept(password, info))
}

func TestAesFastAcceptRejectsWrongPassword(t *testing.T) {
	salt := []byte("0123456789abcdef")
	derivedLen := 2*(256/8) + 2
	derived := pbkdf2.Key([]byte("the-real-password"), salt, 1000, derivedLen, sha1.New)
	var verifier [2]byte
	copy(verifier[:], derived[len(derived)-2:])

	info := AesInfo{AESKeyBits: 256, Salt: salt, Verifier: verifier, DerivedKeyLength: derivedLen}
	assert.False(t, aesFastAccept("wrong-guess", info))
}
