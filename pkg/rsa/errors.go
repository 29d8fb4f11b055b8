package rsa

import "errors"

// Errors returned by the RSA engine. ErrSymbolTooLarge is the only failure
// that occurs in normal operation; the others guard against misuse.
var (
	ErrSymbolTooLarge = errors.New("rsa: symbol code does not fit below the modulus")
	ErrKeyTooSmall    = errors.New("rsa: requested modulus bit length is too small")
	ErrNilKey         = errors.New("rsa: nil key")
)
