// Package chain is an in-process ledger used for guardian drills. It hosts a
// simulated Safe, MultiSendCallOnly, Venus comptrollers and vTokens next to
// contract adapters around the guard and pause module services, and executes
// calls between them with EVM-like revert semantics.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/store"
	"go.uber.org/zap"
)

const maxCallDepth = 64

var (
	ErrNoContract        = errors.New("no contract at address")
	ErrUnknownMethod     = errors.New("unknown method selector")
	ErrCallDepth         = errors.New("max call depth exceeded")
	ErrInsufficientFunds = errors.New("insufficient balance for transfer")
)

// Contract is code hosted by the ledger. Run executes one call. State changes
// made by a failing Run are undone by the ledger through Snapshot/Restore.
type Contract interface {
	Run(cc *CallContext, input []byte) ([]byte, error)
	Snapshot() any
	Restore(snapshot any)
}

// RevertError reports a failed call and the contract that reverted.
type RevertError struct {
	Contract common.Address
	Err      error
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("execution reverted at %s: %v", e.Contract.Hex(), e.Err)
}

func (e *RevertError) Unwrap() error { return e.Err }

// Log is an event emitted during a transaction.
type Log struct {
	TxID      string            `json:"tx_id"`
	Address   common.Address    `json:"address"`
	Name      string            `json:"name"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Receipt is the outcome of a top level transaction.
type Receipt struct {
	TxID       string         `json:"tx_id"`
	From       common.Address `json:"from"`
	To         common.Address `json:"to"`
	Success    bool           `json:"success"`
	ReturnData []byte         `json:"return_data,omitempty"`
	Logs       []Log          `json:"logs"`
	Error      string         `json:"error,omitempty"`
}

type ledgerSnapshot struct {
	contracts map[common.Address]any
	balances  map[common.Address]*big.Int
	logs      int
	store     store.Snapshot
}

// Ledger executes one transaction at a time.
type Ledger struct {
	mu        sync.Mutex
	chainID   *big.Int
	contracts map[common.Address]Contract
	balances  map[common.Address]*big.Int
	nonces    map[common.Address]uint64
	logs      []Log
	store     *store.MemoryStore
	metrics   *metrics.PromIndicators
	logger    *zap.Logger
	now       func() time.Time
}

// NewLedger creates an empty ledger whose guard state lives in st.
func NewLedger(chainID *big.Int, st *store.MemoryStore, indicators *metrics.PromIndicators) *Ledger {
	return &Ledger{
		chainID:   new(big.Int).Set(chainID),
		contracts: make(map[common.Address]Contract),
		balances:  make(map[common.Address]*big.Int),
		nonces:    make(map[common.Address]uint64),
		store:     st,
		metrics:   indicators,
		logger:    logger.Named(logger.ComponentLedger),
		now:       time.Now,
	}
}

// ChainID returns the chain id used in Safe fingerprints.
func (l *Ledger) ChainID() *big.Int {
	return new(big.Int).Set(l.chainID)
}

// Store returns the guard state store.
func (l *Ledger) Store() *store.MemoryStore {
	return l.store
}

// Deploy places c at the CREATE address of deployer's next nonce.
func (l *Ledger) Deploy(deployer common.Address, c Contract) common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()

	addr := crypto.CreateAddress(deployer, l.nonces[deployer])
	l.nonces[deployer]++
	l.contracts[addr] = c
	l.logger.Debug("Contract deployed", zap.String("address", addr.Hex()), zap.String("type", fmt.Sprintf("%T", c)))
	return addr
}

// SetBalance overwrites the native balance of addr.
func (l *Ledger) SetBalance(addr common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[addr] = new(big.Int).Set(amount)
}

// Balance returns the native balance of addr.
func (l *Ledger) Balance(addr common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(addr)
}

// IsContract reports whether code is deployed at addr.
func (l *Ledger) IsContract(addr common.Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.contracts[addr]
	return ok
}

// Logs returns the logs emitted by address, or all logs when address is zero.
func (l *Ledger) Logs(address common.Address) []Log {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Log, 0)
	for _, lg := range l.logs {
		if address == (common.Address{}) || lg.Address == address {
			out = append(out, lg)
		}
	}
	return out
}

// Transact runs a state changing call from from. Every address may send,
// contracts included, the way a forked test node impersonates accounts.
// A failing call leaves no trace except the returned receipt.
func (l *Ledger) Transact(ctx context.Context, from, to common.Address, value *big.Int, input []byte) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	receipt := &Receipt{TxID: uuid.New().String(), From: from, To: to}
	firstLog := len(l.logs)

	cc := &CallContext{ctx: ctx, ledger: l, txID: receipt.TxID, Origin: from, Caller: from, Self: from}
	ret, err := cc.Call(to, value, input)
	method := l.methodName(to, input)
	if err != nil {
		l.metrics.AddLedgerTransaction(method, "reverted")
		l.logger.Info("Transaction reverted",
			zap.String("tx_id", receipt.TxID),
			zap.String("from", from.Hex()),
			zap.String("to", to.Hex()),
			zap.String("method", method),
			zap.Error(err))
		receipt.Error = err.Error()
		receipt.Logs = []Log{}
		return receipt, err
	}

	l.metrics.AddLedgerTransaction(method, "success")
	receipt.Success = true
	receipt.ReturnData = ret
	receipt.Logs = append([]Log{}, l.logs[firstLog:]...)
	l.logger.Info("Transaction executed",
		zap.String("tx_id", receipt.TxID),
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
		zap.String("method", method),
		zap.Int("logs", len(receipt.Logs)))
	return receipt, nil
}

// Call runs a read-only call. Any state change it makes is discarded.
func (l *Ledger) Call(ctx context.Context, from, to common.Address, input []byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.snapshot()
	defer l.restore(snap)

	cc := &CallContext{ctx: ctx, ledger: l, Origin: from, Caller: from, Self: from}
	return cc.Call(to, nil, input)
}

func (l *Ledger) methodName(to common.Address, input []byte) string {
	if len(input) < 4 {
		return "transfer"
	}
	if c, ok := l.contracts[to]; ok {
		if named, ok := c.(interface{ MethodName([]byte) string }); ok {
			return named.MethodName(input[:4])
		}
	}
	return common.Bytes2Hex(input[:4])
}

func (l *Ledger) balanceOf(addr common.Address) *big.Int {
	if b, ok := l.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (l *Ledger) transfer(from, to common.Address, value *big.Int) error {
	if value == nil || value.Sign() == 0 {
		return nil
	}
	if value.Sign() < 0 {
		return fmt.Errorf("negative transfer value")
	}
	fromBalance := l.balanceOf(from)
	if fromBalance.Cmp(value) < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from.Hex(), fromBalance, value)
	}
	l.balances[from] = fromBalance.Sub(fromBalance, value)
	l.balances[to] = l.balanceOf(to).Add(l.balanceOf(to), value)
	return nil
}

func (l *Ledger) snapshot() ledgerSnapshot {
	snap := ledgerSnapshot{
		contracts: make(map[common.Address]any, len(l.contracts)),
		balances:  make(map[common.Address]*big.Int, len(l.balances)),
		logs:      len(l.logs),
	}
	for addr, c := range l.contracts {
		snap.contracts[addr] = c.Snapshot()
	}
	for addr, b := range l.balances {
		snap.balances[addr] = new(big.Int).Set(b)
	}
	if l.store != nil {
		snap.store = l.store.Snapshot()
	}
	return snap
}

func (l *Ledger) restore(snap ledgerSnapshot) {
	for addr, c := range l.contracts {
		c.Restore(snap.contracts[addr])
	}
	l.balances = snap.balances
	l.logs = l.logs[:snap.logs]
	if l.store != nil {
		l.store.Restore(snap.store)
	}
}

// CallContext is the execution frame of one call.
type CallContext struct {
	ctx    context.Context
	ledger *Ledger
	txID   string
	depth  int

	Origin common.Address
	// Caller is msg.sender.
	Caller common.Address
	// Self is the address whose storage and balance the code acts on.
	Self  common.Address
	Value *big.Int
}

// Context returns the request context of the transaction.
func (cc *CallContext) Context() context.Context {
	return cc.ctx
}

// ChainID returns the ledger chain id.
func (cc *CallContext) ChainID() *big.Int {
	return cc.ledger.ChainID()
}

// Call performs a CALL from Self. Changes made by a failing callee are undone
// before the error is returned.
func (cc *CallContext) Call(to common.Address, value *big.Int, input []byte) ([]byte, error) {
	if cc.depth >= maxCallDepth {
		return nil, ErrCallDepth
	}
	l := cc.ledger
	snap := l.snapshot()

	if err := l.transfer(cc.Self, to, value); err != nil {
		l.restore(snap)
		return nil, &RevertError{Contract: to, Err: err}
	}

	c, ok := l.contracts[to]
	if !ok {
		// plain value transfer to an account without code
		if len(input) > 0 {
			l.restore(snap)
			return nil, &RevertError{Contract: to, Err: ErrNoContract}
		}
		return nil, nil
	}

	child := &CallContext{
		ctx:    cc.ctx,
		ledger: l,
		txID:   cc.txID,
		depth:  cc.depth + 1,
		Origin: cc.Origin,
		Caller: cc.Self,
		Self:   to,
		Value:  orZero(value),
	}
	ret, err := c.Run(child, input)
	if err != nil {
		l.restore(snap)
		var revert *RevertError
		if errors.As(err, &revert) {
			return nil, err
		}
		return nil, &RevertError{Contract: to, Err: err}
	}
	return ret, nil
}

// DelegateCall runs the code at target against Self, keeping Caller and Value.
func (cc *CallContext) DelegateCall(target common.Address, input []byte) ([]byte, error) {
	if cc.depth >= maxCallDepth {
		return nil, ErrCallDepth
	}
	l := cc.ledger
	c, ok := l.contracts[target]
	if !ok {
		// delegatecall into an empty account succeeds without effect
		return nil, nil
	}

	snap := l.snapshot()
	child := &CallContext{
		ctx:    cc.ctx,
		ledger: l,
		txID:   cc.txID,
		depth:  cc.depth + 1,
		Origin: cc.Origin,
		Caller: cc.Caller,
		Self:   cc.Self,
		Value:  cc.Value,
	}
	ret, err := c.Run(child, input)
	if err != nil {
		l.restore(snap)
		var revert *RevertError
		if errors.As(err, &revert) {
			return nil, err
		}
		return nil, &RevertError{Contract: target, Err: err}
	}
	return ret, nil
}

// Emit appends a log for Self.
func (cc *CallContext) Emit(name string, fields map[string]string) {
	cc.ledger.logs = append(cc.ledger.logs, Log{
		TxID:      cc.txID,
		Address:   cc.Self,
		Name:      name,
		Fields:    fields,
		Timestamp: cc.ledger.now().UTC(),
	})
}

// HasCode reports whether addr hosts a contract.
func (cc *CallContext) HasCode(addr common.Address) bool {
	_, ok := cc.ledger.contracts[addr]
	return ok
}

// Balance returns the native balance of addr.
func (cc *CallContext) Balance(addr common.Address) *big.Int {
	return cc.ledger.balanceOf(addr)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
