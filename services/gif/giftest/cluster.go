// Package giftest runs the gif program against an in-process cluster double.
package giftest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/status-im/arcadia/chain/tx"
	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/rpc"
	"github.com/status-im/arcadia/rpc/rpctest"
	"github.com/status-im/arcadia/services/gif"
)

const errCodeSimulationFailed = -32002

// Cluster executes start_stuff_off and add_gif transactions and serves the
// resulting accounts.
type Cluster struct {
	*rpctest.Server

	ProgramID types.PublicKey
	Blockhash types.PublicKey

	mu       sync.Mutex
	accounts map[types.PublicKey]*gif.BaseAccount
	status   string
	failNext *rpctest.Error
}

// NewCluster starts a cluster hosting the gif program at programID.
func NewCluster(t testing.TB, programID types.PublicKey) *Cluster {
	c := &Cluster{
		Server:    rpctest.NewServer(t),
		ProgramID: programID,
		Blockhash: types.PublicKey{0xb1, 0x0c, 0x4a, 0x54},
		accounts:  make(map[types.PublicKey]*gif.BaseAccount),
		status:    "finalized",
	}
	c.Handle(rpc.MethodGetAccountInfo, c.getAccountInfo)
	c.Handle(rpc.MethodGetLatestBlockhash, c.getLatestBlockhash)
	c.Handle(rpc.MethodSendTransaction, c.sendTransaction)
	c.Handle(rpc.MethodGetSignatureStatuses, c.getSignatureStatuses)
	return c
}

// SetAccount stores account at key as if the program had written it.
func (c *Cluster) SetAccount(key types.PublicKey, account *gif.BaseAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[key] = account
}

// Account returns the account at key, nil if missing.
func (c *Cluster) Account(key types.PublicKey) *gif.BaseAccount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accounts[key]
}

// SetConfirmationStatus sets the status reported for every signature.
func (c *Cluster) SetConfirmationStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// FailNextTransaction makes the next sendTransaction return err.
func (c *Cluster) FailNextTransaction(err *rpctest.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = err
}

func (c *Cluster) getAccountInfo(params []json.RawMessage) (interface{}, *rpctest.Error) {
	var address string
	if err := json.Unmarshal(params[0], &address); err != nil {
		return nil, invalidParams(err)
	}
	key, err := types.PublicKeyFromBase58(address)
	if err != nil {
		return nil, invalidParams(err)
	}

	c.mu.Lock()
	account := c.accounts[key]
	c.mu.Unlock()

	result := rpc.AccountInfoResult{Context: rpc.RPCContext{Slot: 1}}
	if account != nil {
		result.Value = &rpc.AccountInfo{
			Lamports: 1,
			Owner:    c.ProgramID,
			Data:     []string{base64.StdEncoding.EncodeToString(account.Encode()), "base64"},
		}
	}
	return result, nil
}

func (c *Cluster) getLatestBlockhash([]json.RawMessage) (interface{}, *rpctest.Error) {
	result := rpc.BlockhashResult{Context: rpc.RPCContext{Slot: 1}}
	result.Value.Blockhash = c.Blockhash.String()
	return result, nil
}

func (c *Cluster) getSignatureStatuses([]json.RawMessage) (interface{}, *rpctest.Error) {
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()
	return rpc.SignatureStatusesResult{Value: []*rpc.SignatureStatus{{Slot: 2, ConfirmationStatus: status}}}, nil
}

func (c *Cluster) sendTransaction(params []json.RawMessage) (interface{}, *rpctest.Error) {
	var encoded string
	if err := json.Unmarshal(params[0], &encoded); err != nil {
		return nil, invalidParams(err)
	}
	wire, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, invalidParams(err)
	}
	transaction, err := tx.DeserializeTransaction(wire)
	if err != nil {
		return nil, invalidParams(err)
	}
	if err := transaction.VerifySignatures(); err != nil {
		return nil, simulationFailed(err)
	}
	if transaction.Message.RecentBlockhash != c.Blockhash {
		return nil, simulationFailed(fmt.Errorf("blockhash not found"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failNext != nil {
		failure := c.failNext
		c.failNext = nil
		return nil, failure
	}

	for _, ix := range transaction.Message.Instructions {
		if err := c.execute(transaction.Message, ix); err != nil {
			return nil, simulationFailed(err)
		}
	}
	return transaction.Signature().String(), nil
}

func (c *Cluster) execute(msg tx.Message, ix tx.CompiledInstruction) error {
	if int(ix.ProgramIDIndex) >= len(msg.AccountKeys) || msg.AccountKeys[ix.ProgramIDIndex] != c.ProgramID {
		return fmt.Errorf("unknown program")
	}
	if len(ix.Accounts) < 2 {
		return fmt.Errorf("not enough account keys")
	}
	base, user := int(ix.Accounts[0]), int(ix.Accounts[1])
	signers := int(msg.Header.NumRequiredSignatures)
	if user >= signers {
		return fmt.Errorf("user must sign")
	}
	baseKey := msg.AccountKeys[base]

	if gif.IsStartStuffOffData(ix.Data) {
		if base >= signers {
			return fmt.Errorf("base account must sign")
		}
		if _, ok := c.accounts[baseKey]; ok {
			return fmt.Errorf("account %s already in use", baseKey)
		}
		c.accounts[baseKey] = &gif.BaseAccount{GifList: []gif.ItemStruct{}}
		return nil
	}

	link, err := gif.ParseAddGifData(ix.Data)
	if err != nil {
		return err
	}
	account, ok := c.accounts[baseKey]
	if !ok {
		return fmt.Errorf("AccountNotInitialized")
	}
	account.TotalGifs++
	account.GifList = append(account.GifList, gif.ItemStruct{GifLink: link, UserAddress: msg.AccountKeys[user]})
	return nil
}

func invalidParams(err error) *rpctest.Error {
	return &rpctest.Error{Code: -32602, Message: err.Error()}
}

func simulationFailed(err error) *rpctest.Error {
	return &rpctest.Error{Code: errCodeSimulationFailed, Message: "Transaction simulation failed: " + err.Error()}
}
