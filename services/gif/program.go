package gif

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/status-im/arcadia/chain/tx"
	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
)

const discriminatorLength = 8

// maxLinkLength bounds decoded strings.
const maxLinkLength = 4096

var (
	baseAccountDiscriminator   = discriminator("account", "BaseAccount")
	startStuffOffDiscriminator = discriminator("global", "start_stuff_off")
	addGifDiscriminator        = discriminator("global", "add_gif")
)

func discriminator(namespace, name string) [discriminatorLength]byte {
	var d [discriminatorLength]byte
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	copy(d[:], sum[:discriminatorLength])
	return d
}

// ItemStruct is one entry of the on-chain gif list.
type ItemStruct struct {
	GifLink     string
	UserAddress types.PublicKey
}

// BaseAccount is the program account holding the gif list.
type BaseAccount struct {
	TotalGifs uint64
	GifList   []ItemStruct
}

// Items converts the on-chain list to gallery items.
func (a *BaseAccount) Items() []gallery.Item {
	items := make([]gallery.Item, 0, len(a.GifList))
	for _, it := range a.GifList {
		items = append(items, gallery.Item{Link: it.GifLink, Submitter: it.UserAddress.String()})
	}
	return items
}

// Encode lays the account out the way the program stores it.
func (a *BaseAccount) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(baseAccountDiscriminator[:])
	_ = binary.Write(&buf, binary.LittleEndian, a.TotalGifs)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(a.GifList)))
	for _, it := range a.GifList {
		writeString(&buf, it.GifLink)
		buf.Write(it.UserAddress.Bytes())
	}
	return buf.Bytes()
}

// DecodeBaseAccount parses account data. Trailing bytes are ignored since
// the account is allocated larger than its content.
func DecodeBaseAccount(data []byte) (*BaseAccount, error) {
	if len(data) < discriminatorLength || !bytes.Equal(data[:discriminatorLength], baseAccountDiscriminator[:]) {
		return nil, ErrInvalidAccountData
	}
	r := bytes.NewReader(data[discriminatorLength:])

	account := &BaseAccount{}
	if err := binary.Read(r, binary.LittleEndian, &account.TotalGifs); err != nil {
		return nil, errors.Wrap(err, "read total gifs")
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errors.Wrap(err, "read gif list length")
	}
	// Every entry takes at least a length prefix and a key.
	if int64(n)*(4+types.PublicKeyLength) > int64(r.Len()) {
		return nil, errors.Wrapf(ErrInvalidAccountData, "gif list length %d exceeds data", n)
	}

	account.GifList = make([]ItemStruct, 0, n)
	for i := uint32(0); i < n; i++ {
		link, err := readString(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read gif %d link", i)
		}
		var key [types.PublicKeyLength]byte
		if _, err := io.ReadFull(r, key[:]); err != nil {
			return nil, errors.Wrapf(err, "read gif %d user", i)
		}
		account.GifList = append(account.GifList, ItemStruct{GifLink: link, UserAddress: types.PublicKey(key)})
	}
	return account, nil
}

// StartStuffOffInstruction creates baseAccount, paid by user.
func StartStuffOffInstruction(programID, baseAccount, user types.PublicKey) tx.Instruction {
	return tx.Instruction{
		ProgramID: programID,
		Accounts: []tx.AccountMeta{
			{PublicKey: baseAccount, IsSigner: true, IsWritable: true},
			{PublicKey: user, IsSigner: true, IsWritable: true},
			{PublicKey: types.SystemProgramID},
		},
		Data: startStuffOffDiscriminator[:],
	}
}

// AddGifInstruction appends link to the list held by baseAccount.
func AddGifInstruction(programID, baseAccount, user types.PublicKey, link string) tx.Instruction {
	var data bytes.Buffer
	data.Write(addGifDiscriminator[:])
	writeString(&data, link)
	return tx.Instruction{
		ProgramID: programID,
		Accounts: []tx.AccountMeta{
			{PublicKey: baseAccount, IsWritable: true},
			{PublicKey: user, IsSigner: true, IsWritable: true},
		},
		Data: data.Bytes(),
	}
}

// ParseAddGifData returns the link carried by add_gif instruction data.
func ParseAddGifData(data []byte) (string, error) {
	if len(data) < discriminatorLength || !bytes.Equal(data[:discriminatorLength], addGifDiscriminator[:]) {
		return "", fmt.Errorf("not an add_gif instruction")
	}
	return readString(bytes.NewReader(data[discriminatorLength:]))
}

// IsStartStuffOffData reports whether data invokes start_stuff_off.
func IsStartStuffOffData(data []byte) bool {
	return bytes.Equal(data, startStuffOffDiscriminator[:])
}

func writeString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxLinkLength || int(n) > r.Len() {
		return "", errors.Wrapf(ErrInvalidAccountData, "string length %d", n)
	}
	s := make([]byte, n)
	if _, err := io.ReadFull(r, s); err != nil {
		return "", err
	}
	return string(s), nil
}
