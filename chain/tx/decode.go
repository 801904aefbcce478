package tx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/status-im/arcadia/chain/types"
)

var ErrInvalidSignature = errors.New("invalid transaction signature")

// DeserializeTransaction decodes a wire encoded transaction.
func DeserializeTransaction(data []byte) (*Transaction, error) {
	r := bytes.NewReader(data)

	numSigs, err := readCompactU16(r)
	if err != nil {
		return nil, fmt.Errorf("read signature count: %w", err)
	}
	t := &Transaction{Signatures: make([]types.Signature, numSigs)}
	for i := range t.Signatures {
		if _, err := io.ReadFull(r, t.Signatures[i][:]); err != nil {
			return nil, fmt.Errorf("read signature %d: %w", i, err)
		}
	}

	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t.Message.Header = MessageHeader{
		NumRequiredSignatures:       header[0],
		NumReadonlySignedAccounts:   header[1],
		NumReadonlyUnsignedAccounts: header[2],
	}

	numKeys, err := readCompactU16(r)
	if err != nil {
		return nil, fmt.Errorf("read account count: %w", err)
	}
	t.Message.AccountKeys = make([]types.PublicKey, numKeys)
	for i := range t.Message.AccountKeys {
		if _, err := io.ReadFull(r, t.Message.AccountKeys[i][:]); err != nil {
			return nil, fmt.Errorf("read account %d: %w", i, err)
		}
	}
	if _, err := io.ReadFull(r, t.Message.RecentBlockhash[:]); err != nil {
		return nil, fmt.Errorf("read blockhash: %w", err)
	}

	numIx, err := readCompactU16(r)
	if err != nil {
		return nil, fmt.Errorf("read instruction count: %w", err)
	}
	for i := 0; i < numIx; i++ {
		var ix CompiledInstruction
		if ix.ProgramIDIndex, err = r.ReadByte(); err != nil {
			return nil, fmt.Errorf("read program index: %w", err)
		}
		if ix.Accounts, err = readCompactBytes(r); err != nil {
			return nil, fmt.Errorf("read instruction accounts: %w", err)
		}
		if ix.Data, err = readCompactBytes(r); err != nil {
			return nil, fmt.Errorf("read instruction data: %w", err)
		}
		t.Message.Instructions = append(t.Message.Instructions, ix)
	}

	if int(t.Message.Header.NumRequiredSignatures) != numSigs {
		return nil, fmt.Errorf("signature count %d does not match header %d", numSigs, t.Message.Header.NumRequiredSignatures)
	}
	return t, nil
}

// VerifySignatures checks every signature against its signer's key.
func (t *Transaction) VerifySignatures() error {
	payload, err := t.Message.Serialize()
	if err != nil {
		return err
	}
	signers := t.Message.Signers()
	if len(signers) != len(t.Signatures) {
		return ErrInvalidSignature
	}
	for i, key := range signers {
		if !key.Verify(payload, t.Signatures[i]) {
			return fmt.Errorf("%w: %s", ErrInvalidSignature, key)
		}
	}
	return nil
}

func readCompactBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readCompactU16(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
