package types

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemProgramID(t *testing.T) {
	require.Equal(t, "11111111111111111111111111111111", SystemProgramID.String())

	decoded, err := PublicKeyFromBase58("11111111111111111111111111111111")
	require.NoError(t, err)
	require.True(t, decoded.IsZero())
}

func TestPublicKeyBase58RoundTrip(t *testing.T) {
	kp, err := NewKeypair(bytes.NewReader(bytes.Repeat([]byte{7}, 64)))
	require.NoError(t, err)

	decoded, err := PublicKeyFromBase58(kp.PublicKey().String())
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey(), decoded)

	data, err := json.Marshal(map[string]PublicKey{"owner": decoded})
	require.NoError(t, err)

	var back map[string]PublicKey
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, decoded, back["owner"])
}

func TestPublicKeyFromBase58Errors(t *testing.T) {
	_, err := PublicKeyFromBase58("")
	require.ErrorIs(t, err, ErrInvalidBase58)

	_, err = PublicKeyFromBase58("0OIl")
	require.ErrorIs(t, err, ErrInvalidBase58)

	_, err = PublicKeyFromBase58("2222")
	require.ErrorIs(t, err, ErrInvalidPublicKeySize)

	require.Panics(t, func() { MustPublicKeyFromBase58("nope0") })
}

func TestKeypairSignVerify(t *testing.T) {
	kp, err := NewRandomKeypair()
	require.NoError(t, err)

	msg := []byte("https://example.com/a.gif")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.True(t, kp.PublicKey().Verify(msg, sig))
	require.False(t, kp.PublicKey().Verify([]byte("other"), sig))

	decoded, err := SignatureFromBase58(sig.String())
	require.NoError(t, err)
	require.Equal(t, sig, decoded)
}

func TestKeypairFileRoundTrip(t *testing.T) {
	kp, err := NewRandomKeypair()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keys", "id.json")
	require.NoError(t, SaveKeypairFile(path, kp))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadKeypairFile(path)
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey(), loaded.Address())
}

func TestLoadKeypairFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`[1,2,3]`), 0600))
	_, err := LoadKeypairFile(short)
	require.Error(t, err)

	outOfRange := filepath.Join(dir, "range.json")
	require.NoError(t, os.WriteFile(outOfRange, []byte(`[256]`), 0600))
	_, err = LoadKeypairFile(outOfRange)
	require.Error(t, err)

	mismatched := make([]byte, 64)
	mismatched[40] = 1
	_, err = KeypairFromSecretKey(mismatched)
	require.Error(t, err)

	_, err = LoadKeypairFile(filepath.Join(dir, "missing.json"))
	require.True(t, os.IsNotExist(err))
}
