package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the byte slice is nil.
//
// This function uses subtle.XORBytes to perform a constant-time XOR operation
// that the compiler cannot optimize away. XORing data with itself (x XOR x = 0)
// securely zeros the data while providing resistance to compiler optimizations.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	subtle.XORBytes(data, data, data)
	runtime.KeepAlive(data)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive data.
// This is a convenience function that ignores the error from SecureWipe.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeBoxKeyPair securely erases the private key in a [BoxKeyPair].
func WipeBoxKeyPair(kp *BoxKeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil BoxKeyPair")
	}
	return SecureWipe(kp.Private[:])
}

// WipeSigningKeyPair securely erases the private seed in a [SigningKeyPair].
func WipeSigningKeyPair(kp *SigningKeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil SigningKeyPair")
	}
	return SecureWipe(kp.Private[:])
}
