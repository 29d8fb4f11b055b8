package session

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleOrdering(t *testing.T) {
	s := New(nil)
	assert.Equal(t, StateNoKeys, s.State())

	// Encrypt and Decrypt require their predecessors.
	_, err := s.Encrypt("hi")
	assert.ErrorIs(t, err, ErrNoKeys)

	_, err = s.Decrypt()
	assert.ErrorIs(t, err, ErrNoCiphertext)

	_, err = s.Verify()
	assert.ErrorIs(t, err, ErrNoDecryption)

	// Full walk through the lifecycle.
	kp, err := s.Generate(64)
	require.NoError(t, err)
	require.NotNil(t, kp)
	assert.Equal(t, StateKeysGenerated, s.State())

	_, err = s.Decrypt()
	assert.ErrorIs(t, err, ErrNoCiphertext)

	ct, err := s.Encrypt("round trip")
	require.NoError(t, err)
	assert.Len(t, ct, len("round trip"))
	assert.Equal(t, StateMessageEncrypted, s.State())

	msg, err := s.Decrypt()
	require.NoError(t, err)
	assert.Equal(t, "round trip", msg)
	assert.Equal(t, StateMessageDecrypted, s.State())

	ok, err := s.Verify()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateResetsEverything(t *testing.T) {
	s := New(nil)

	_, err := s.Generate(64)
	require.NoError(t, err)
	_, err = s.Encrypt("before")
	require.NoError(t, err)
	_, err = s.Decrypt()
	require.NoError(t, err)

	// Regenerating is allowed from any state and drops all artifacts.
	kp1 := s.Keys()
	kp2, err := s.Generate(64)
	require.NoError(t, err)
	assert.Equal(t, StateKeysGenerated, s.State())
	assert.NotEqual(t, kp1.Public.N.String(), kp2.Public.N.String())

	_, err = s.Decrypt()
	assert.ErrorIs(t, err, ErrNoCiphertext)
}

func TestReEncryptDropsDecryption(t *testing.T) {
	s := New(nil)

	_, err := s.Generate(64)
	require.NoError(t, err)
	_, err = s.Encrypt("first")
	require.NoError(t, err)
	_, err = s.Decrypt()
	require.NoError(t, err)

	_, err = s.Encrypt("second")
	require.NoError(t, err)
	assert.Equal(t, StateMessageEncrypted, s.State())

	msg, err := s.Decrypt()
	require.NoError(t, err)
	assert.Equal(t, "second", msg)
}

func TestFailedEncryptionKeepsState(t *testing.T) {
	s := New(nil)

	_, err := s.Generate(64)
	require.NoError(t, err)
	_, err = s.Encrypt("kept")
	require.NoError(t, err)

	// A 6-bit request yields the 3-bit primes 5 and 7, so n = 35 and
	// encrypting 'A' (code 65) must fail without touching the state.
	small := New(nil)
	kp, err := small.Generate(6)
	require.NoError(t, err)
	require.True(t, kp.Public.N.Cmp(big.NewInt(65)) < 0)

	_, err = small.Encrypt("A")
	require.Error(t, err)
	assert.Equal(t, StateKeysGenerated, small.State())

	// The first session is untouched.
	msg, err := s.Decrypt()
	require.NoError(t, err)
	assert.Equal(t, "kept", msg)
}
