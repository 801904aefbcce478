package gif

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
)

func TestDiscriminators(t *testing.T) {
	require.Equal(t, [8]byte{16, 90, 130, 242, 159, 10, 232, 133}, baseAccountDiscriminator)
	require.Equal(t, [8]byte{126, 54, 85, 33, 226, 32, 195, 32}, startStuffOffDiscriminator)
	require.Equal(t, [8]byte{171, 74, 141, 100, 33, 70, 87, 155}, addGifDiscriminator)
}

func TestBaseAccountLayout(t *testing.T) {
	user := types.PublicKey{0xaa}
	account := &BaseAccount{
		TotalGifs: 1,
		GifList:   []ItemStruct{{GifLink: "ab", UserAddress: user}},
	}

	expected := []byte{16, 90, 130, 242, 159, 10, 232, 133}
	expected = append(expected, 1, 0, 0, 0, 0, 0, 0, 0)
	expected = append(expected, 1, 0, 0, 0)
	expected = append(expected, 2, 0, 0, 0, 'a', 'b')
	expected = append(expected, user.Bytes()...)
	require.Equal(t, expected, account.Encode())

	// Accounts are allocated larger than their content.
	padded := append(account.Encode(), make([]byte, 64)...)
	decoded, err := DecodeBaseAccount(padded)
	require.NoError(t, err)
	require.Equal(t, account, decoded)
	require.Equal(t, []gallery.Item{{Link: "ab", Submitter: user.String()}}, decoded.Items())
}

func TestDecodeEmptyAccountHasEmptyList(t *testing.T) {
	decoded, err := DecodeBaseAccount((&BaseAccount{}).Encode())
	require.NoError(t, err)
	require.NotNil(t, decoded.Items())
	require.Empty(t, decoded.Items())
}

func TestDecodeBaseAccountRejectsMalformedData(t *testing.T) {
	valid := (&BaseAccount{TotalGifs: 1, GifList: []ItemStruct{{GifLink: "https://example.com/a.gif"}}}).Encode()

	cases := map[string][]byte{
		"empty":               nil,
		"wrong discriminator": append([]byte{1, 2, 3, 4, 5, 6, 7, 8}, valid[8:]...),
		"truncated":           valid[:len(valid)-1],
		"huge list":           append(append([]byte{}, valid[:16]...), 0xff, 0xff, 0xff, 0xff),
		"huge string":         append(append([]byte{}, valid[:20]...), 0xff, 0xff, 0xff, 0x00),
	}
	for name, data := range cases {
		_, err := DecodeBaseAccount(data)
		require.Error(t, err, name)
	}

	_, err := DecodeBaseAccount(nil)
	require.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestInstructions(t *testing.T) {
	program, base, user := types.PublicKey{1}, types.PublicKey{2}, types.PublicKey{3}

	start := StartStuffOffInstruction(program, base, user)
	require.Equal(t, program, start.ProgramID)
	require.True(t, IsStartStuffOffData(start.Data))
	require.Len(t, start.Accounts, 3)
	require.True(t, start.Accounts[0].IsSigner)
	require.True(t, start.Accounts[1].IsSigner)
	require.Equal(t, types.SystemProgramID, start.Accounts[2].PublicKey)
	require.False(t, start.Accounts[2].IsWritable)

	add := AddGifInstruction(program, base, user, "https://example.com/a.gif")
	require.False(t, IsStartStuffOffData(add.Data))
	require.False(t, add.Accounts[0].IsSigner)
	require.True(t, add.Accounts[0].IsWritable)
	require.True(t, add.Accounts[1].IsSigner)

	link, err := ParseAddGifData(add.Data)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a.gif", link)

	_, err = ParseAddGifData(start.Data)
	require.Error(t, err)
}
