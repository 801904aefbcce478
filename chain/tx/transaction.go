package tx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/status-im/arcadia/chain/types"
)

var (
	ErrNoInstructions  = errors.New("transaction has no instructions")
	ErrMissingSigner   = errors.New("missing signer for required signature")
	ErrTooManyAccounts = errors.New("too many accounts in transaction")
)

// Signer produces signatures for one account.
type Signer interface {
	Address() types.PublicKey
	Sign(message []byte) (types.Signature, error)
}

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	PublicKey  types.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a single program invocation.
type Instruction struct {
	ProgramID types.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// MessageHeader counts the signer and read-only sections of the account list.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts by index into the message keys.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is the signed part of a legacy transaction.
type Message struct {
	Header          MessageHeader
	AccountKeys     []types.PublicKey
	RecentBlockhash types.PublicKey
	Instructions    []CompiledInstruction
}

// Transaction is a message plus one signature per required signer.
type Transaction struct {
	Signatures []types.Signature
	Message    Message
}

// NewMessage orders all referenced accounts (fee payer first, then writable
// signers, read-only signers, writable and read-only non signers) and compiles
// the instructions against that order.
func NewMessage(feePayer types.PublicKey, recentBlockhash types.PublicKey, instructions ...Instruction) (Message, error) {
	if len(instructions) == 0 {
		return Message{}, ErrNoInstructions
	}

	metas := []AccountMeta{{PublicKey: feePayer, IsSigner: true, IsWritable: true}}
	for _, ix := range instructions {
		metas = append(metas, ix.Accounts...)
		metas = append(metas, AccountMeta{PublicKey: ix.ProgramID})
	}

	merged := make([]AccountMeta, 0, len(metas))
	index := make(map[types.PublicKey]int, len(metas))
	for _, meta := range metas {
		if i, ok := index[meta.PublicKey]; ok {
			merged[i].IsSigner = merged[i].IsSigner || meta.IsSigner
			merged[i].IsWritable = merged[i].IsWritable || meta.IsWritable
			continue
		}
		index[meta.PublicKey] = len(merged)
		merged = append(merged, meta)
	}
	if len(merged) > 256 {
		return Message{}, ErrTooManyAccounts
	}

	var groups [4][]AccountMeta
	groups[0] = append(groups[0], merged[0])
	for _, meta := range merged[1:] {
		switch {
		case meta.IsSigner && meta.IsWritable:
			groups[0] = append(groups[0], meta)
		case meta.IsSigner:
			groups[1] = append(groups[1], meta)
		case meta.IsWritable:
			groups[2] = append(groups[2], meta)
		default:
			groups[3] = append(groups[3], meta)
		}
	}

	msg := Message{
		Header: MessageHeader{
			NumRequiredSignatures:       uint8(len(groups[0]) + len(groups[1])),
			NumReadonlySignedAccounts:   uint8(len(groups[1])),
			NumReadonlyUnsignedAccounts: uint8(len(groups[3])),
		},
		RecentBlockhash: recentBlockhash,
	}

	position := make(map[types.PublicKey]uint8, len(merged))
	for _, group := range groups {
		for _, meta := range group {
			position[meta.PublicKey] = uint8(len(msg.AccountKeys))
			msg.AccountKeys = append(msg.AccountKeys, meta.PublicKey)
		}
	}

	for _, ix := range instructions {
		compiled := CompiledInstruction{
			ProgramIDIndex: position[ix.ProgramID],
			Data:           ix.Data,
		}
		for _, acc := range ix.Accounts {
			compiled.Accounts = append(compiled.Accounts, position[acc.PublicKey])
		}
		msg.Instructions = append(msg.Instructions, compiled)
	}

	return msg, nil
}

// Signers returns the accounts whose signatures the message requires, in order.
func (m Message) Signers() []types.PublicKey {
	return m.AccountKeys[:m.Header.NumRequiredSignatures]
}

// IsWritable reports whether the account at index i is writable.
func (m Message) IsWritable(i int) bool {
	h := m.Header
	required := int(h.NumRequiredSignatures)
	if i < required {
		return i < required-int(h.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)
}

// Serialize encodes the message in the wire format that gets signed.
func (m Message) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(m.Header.NumRequiredSignatures)
	buf.WriteByte(m.Header.NumReadonlySignedAccounts)
	buf.WriteByte(m.Header.NumReadonlyUnsignedAccounts)

	if err := writeCompactU16(&buf, len(m.AccountKeys)); err != nil {
		return nil, err
	}
	for _, key := range m.AccountKeys {
		buf.Write(key[:])
	}
	buf.Write(m.RecentBlockhash[:])

	if err := writeCompactU16(&buf, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, ix := range m.Instructions {
		buf.WriteByte(ix.ProgramIDIndex)
		if err := writeCompactU16(&buf, len(ix.Accounts)); err != nil {
			return nil, err
		}
		buf.Write(ix.Accounts)
		if err := writeCompactU16(&buf, len(ix.Data)); err != nil {
			return nil, err
		}
		buf.Write(ix.Data)
	}
	return buf.Bytes(), nil
}

// NewTransaction compiles the instructions and signs the message with the
// given signers. Every required signature must be covered by a signer.
func NewTransaction(feePayer types.PublicKey, recentBlockhash types.PublicKey, instructions []Instruction, signers ...Signer) (*Transaction, error) {
	msg, err := NewMessage(feePayer, recentBlockhash, instructions...)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{Message: msg}
	if err := tx.Sign(signers...); err != nil {
		return nil, err
	}
	return tx, nil
}

// Sign fills in the signatures for every required signer.
func (t *Transaction) Sign(signers ...Signer) error {
	payload, err := t.Message.Serialize()
	if err != nil {
		return err
	}

	byKey := make(map[types.PublicKey]Signer, len(signers))
	for _, s := range signers {
		byKey[s.Address()] = s
	}

	required := t.Message.Signers()
	t.Signatures = make([]types.Signature, len(required))
	for i, key := range required {
		signer, ok := byKey[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSigner, key)
		}
		sig, err := signer.Sign(payload)
		if err != nil {
			return fmt.Errorf("sign with %s: %w", key, err)
		}
		t.Signatures[i] = sig
	}
	return nil
}

// Signature returns the first signature, which identifies the transaction.
func (t *Transaction) Signature() types.Signature {
	if len(t.Signatures) == 0 {
		return types.Signature{}
	}
	return t.Signatures[0]
}

// Serialize encodes the signed transaction for submission.
func (t *Transaction) Serialize() ([]byte, error) {
	msg, err := t.Message.Serialize()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeCompactU16(&buf, len(t.Signatures)); err != nil {
		return nil, err
	}
	for _, sig := range t.Signatures {
		buf.Write(sig[:])
	}
	buf.Write(msg)
	return buf.Bytes(), nil
}
