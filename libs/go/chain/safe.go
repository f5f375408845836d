package chain

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

// Safe revert reasons, using the Safe contracts error codes.
var (
	ErrSafeTxReverted       = errors.New("GS013")
	ErrSignaturesTooShort   = errors.New("GS020")
	ErrContractSignature    = errors.New("GS021")
	ErrHashNotApproved      = errors.New("GS025")
	ErrInvalidOwnerProvided = errors.New("GS026")
	ErrOnlyOwnersApprove    = errors.New("GS030")
	ErrOnlySelf             = errors.New("GS031")
	ErrInvalidModule        = errors.New("GS101")
	ErrModuleEnabled        = errors.New("GS102")
	ErrModuleNotEnabled     = errors.New("GS104")
	ErrThresholdTooHigh     = errors.New("GS201")
	ErrThresholdZero        = errors.New("GS202")
	ErrInvalidOwner         = errors.New("GS203")
	ErrDuplicateOwner       = errors.New("GS204")
)

// sentinel address the Safe linked lists start from
var sentinel = common.HexToAddress("0x0000000000000000000000000000000000000001")

const signatureLength = 65

type safeState struct {
	owners    []common.Address
	threshold uint64
	nonce     *big.Int
	guard     common.Address
	modules   map[common.Address]bool
	approved  map[common.Address]map[common.Hash]bool
}

func (s safeState) clone() safeState {
	out := safeState{
		owners:    cloneAddresses(s.owners),
		threshold: s.threshold,
		nonce:     new(big.Int).Set(s.nonce),
		guard:     s.guard,
		modules:   make(map[common.Address]bool, len(s.modules)),
		approved:  make(map[common.Address]map[common.Hash]bool, len(s.approved)),
	}
	for m, ok := range s.modules {
		out.modules[m] = ok
	}
	for owner, hashes := range s.approved {
		inner := make(map[common.Hash]bool, len(hashes))
		for h, ok := range hashes {
			inner[h] = ok
		}
		out.approved[owner] = inner
	}
	return out
}

// SimulatedSafe behaves like a Safe singleton behind a proxy: threshold
// signatures, a single guard hook around execTransaction and a module path
// that bypasses the guard.
type SimulatedSafe struct {
	state safeState
}

// NewSimulatedSafe mirrors Safe.setup.
func NewSimulatedSafe(owners []common.Address, threshold uint64) (*SimulatedSafe, error) {
	if threshold == 0 {
		return nil, ErrThresholdZero
	}
	if threshold > uint64(len(owners)) {
		return nil, ErrThresholdTooHigh
	}
	seen := make(map[common.Address]bool, len(owners))
	for _, owner := range owners {
		if owner == (common.Address{}) || owner == sentinel {
			return nil, ErrInvalidOwner
		}
		if seen[owner] {
			return nil, ErrDuplicateOwner
		}
		seen[owner] = true
	}
	return &SimulatedSafe{state: safeState{
		owners:    cloneAddresses(owners),
		threshold: threshold,
		nonce:     new(big.Int),
		modules:   make(map[common.Address]bool),
		approved:  make(map[common.Address]map[common.Hash]bool),
	}}, nil
}

func (s *SimulatedSafe) Snapshot() any { return s.state.clone() }

func (s *SimulatedSafe) Restore(snapshot any) {
	if st, ok := snapshot.(safeState); ok {
		s.state = st.clone()
	}
}

func (s *SimulatedSafe) MethodName(selector []byte) string {
	return methodName(contracts.SafeABI, selector)
}

func (s *SimulatedSafe) Run(cc *CallContext, input []byte) ([]byte, error) {
	if len(input) == 0 {
		// receive
		return nil, nil
	}
	method, args, err := decodeCall(contracts.SafeABI, input)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "nonce":
		return packOutputs(contracts.SafeABI, method.Name, new(big.Int).Set(s.state.nonce))
	case "getThreshold":
		return packOutputs(contracts.SafeABI, method.Name, new(big.Int).SetUint64(s.state.threshold))
	case "getOwners":
		return packOutputs(contracts.SafeABI, method.Name, cloneAddresses(s.state.owners))
	case "getGuard":
		return packOutputs(contracts.SafeABI, method.Name, s.state.guard)
	case "isModuleEnabled":
		return packOutputs(contracts.SafeABI, method.Name, s.state.modules[args[0].(common.Address)])
	case "approvedHashes":
		approved := new(big.Int)
		if s.state.approved[args[0].(common.Address)][common.Hash(args[1].([32]byte))] {
			approved.SetUint64(1)
		}
		return packOutputs(contracts.SafeABI, method.Name, approved)
	case "getTransactionHash":
		hash, err := safetx.TransactionHash(cc.ChainID(), cc.Self, txFromArgs(args), args[9].(*big.Int))
		if err != nil {
			return nil, err
		}
		return packOutputs(contracts.SafeABI, method.Name, [32]byte(hash))
	case "approveHash":
		return nil, s.approveHash(cc, common.Hash(args[0].([32]byte)))
	case "execTransaction":
		tx := txFromArgs(args)
		tx.Signatures = args[9].([]byte)
		return s.execTransaction(cc, tx)
	case "execTransactionFromModule":
		return s.execTransactionFromModule(cc, args[0].(common.Address), args[1].(*big.Int), args[2].([]byte), args[3].(uint8))
	case "enableModule":
		return nil, s.enableModule(cc, args[0].(common.Address))
	case "setGuard":
		return nil, s.setGuard(cc, args[0].(common.Address))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
}

func txFromArgs(args []any) business.SafeTransaction {
	return business.SafeTransaction{
		To:             args[0].(common.Address),
		Value:          args[1].(*big.Int),
		Data:           args[2].([]byte),
		Operation:      args[3].(uint8),
		SafeTxGas:      args[4].(*big.Int),
		BaseGas:        args[5].(*big.Int),
		GasPrice:       args[6].(*big.Int),
		GasToken:       args[7].(common.Address),
		RefundReceiver: args[8].(common.Address),
	}
}

func (s *SimulatedSafe) isOwner(addr common.Address) bool {
	for _, owner := range s.state.owners {
		if owner == addr {
			return true
		}
	}
	return false
}

func (s *SimulatedSafe) approveHash(cc *CallContext, hash common.Hash) error {
	if !s.isOwner(cc.Caller) {
		return ErrOnlyOwnersApprove
	}
	if s.state.approved[cc.Caller] == nil {
		s.state.approved[cc.Caller] = make(map[common.Hash]bool)
	}
	s.state.approved[cc.Caller][hash] = true
	cc.Emit("ApproveHash", map[string]string{"approvedHash": hash.Hex(), "owner": cc.Caller.Hex()})
	return nil
}

func (s *SimulatedSafe) enableModule(cc *CallContext, module common.Address) error {
	if cc.Caller != cc.Self {
		return ErrOnlySelf
	}
	if module == (common.Address{}) || module == sentinel {
		return ErrInvalidModule
	}
	if s.state.modules[module] {
		return ErrModuleEnabled
	}
	s.state.modules[module] = true
	cc.Emit("EnabledModule", map[string]string{"module": module.Hex()})
	return nil
}

func (s *SimulatedSafe) setGuard(cc *CallContext, guard common.Address) error {
	if cc.Caller != cc.Self {
		return ErrOnlySelf
	}
	s.state.guard = guard
	cc.Emit("ChangedGuard", map[string]string{"guard": guard.Hex()})
	return nil
}

// execTransaction verifies signatures, consults the guard for the current
// nonce, then consumes the nonce and executes.
func (s *SimulatedSafe) execTransaction(cc *CallContext, tx business.SafeTransaction) ([]byte, error) {
	hash, err := safetx.TransactionHash(cc.ChainID(), cc.Self, tx, s.state.nonce)
	if err != nil {
		return nil, err
	}
	if err := s.checkSignatures(cc, hash, tx.Signatures); err != nil {
		return nil, err
	}

	guard := s.state.guard
	if guard != (common.Address{}) {
		check, err := contracts.SafeGuardABI.Pack("checkTransaction",
			tx.To, orZero(tx.Value), tx.Data, tx.Operation, orZero(tx.SafeTxGas), orZero(tx.BaseGas),
			orZero(tx.GasPrice), tx.GasToken, tx.RefundReceiver, tx.Signatures, cc.Caller)
		if err != nil {
			return nil, err
		}
		if _, err := cc.Call(guard, nil, check); err != nil {
			return nil, err
		}
	}

	s.state.nonce = new(big.Int).Add(s.state.nonce, big.NewInt(1))

	success := s.execute(cc, tx.To, tx.Value, tx.Data, tx.Operation) == nil
	if !success && orZero(tx.SafeTxGas).Sign() == 0 && orZero(tx.GasPrice).Sign() == 0 {
		return nil, ErrSafeTxReverted
	}

	if guard != (common.Address{}) {
		after, err := contracts.SafeGuardABI.Pack("checkAfterExecution", [32]byte(hash), success)
		if err != nil {
			return nil, err
		}
		if _, err := cc.Call(guard, nil, after); err != nil {
			return nil, err
		}
	}

	name := constants.EventExecutionSuccess
	if !success {
		name = "ExecutionFailure"
	}
	cc.Emit(name, map[string]string{"txHash": hash.Hex(), "payment": "0"})
	return packOutputs(contracts.SafeABI, "execTransaction", success)
}

func (s *SimulatedSafe) execTransactionFromModule(cc *CallContext, to common.Address, value *big.Int, data []byte, operation uint8) ([]byte, error) {
	module := cc.Caller
	if !s.state.modules[module] {
		return nil, ErrModuleNotEnabled
	}

	success := s.execute(cc, to, value, data, operation) == nil
	if success {
		cc.Emit(constants.EventExecutionFromModule, map[string]string{"module": module.Hex()})
	} else {
		cc.Emit("ExecutionFromModuleFailure", map[string]string{"module": module.Hex()})
	}
	return packOutputs(contracts.SafeABI, "execTransactionFromModule", success)
}

func (s *SimulatedSafe) execute(cc *CallContext, to common.Address, value *big.Int, data []byte, operation uint8) error {
	var err error
	if operation == constants.OperationDelegateCall {
		_, err = cc.DelegateCall(to, data)
	} else {
		_, err = cc.Call(to, value, data)
	}
	return err
}

// checkSignatures accepts approved hashes (v=1), eth_sign (v>30) and plain
// ECDSA signatures (v=27/28). Owners must appear in ascending order.
func (s *SimulatedSafe) checkSignatures(cc *CallContext, hash common.Hash, signatures []byte) error {
	threshold := s.state.threshold
	if uint64(len(signatures)) < threshold*signatureLength {
		return ErrSignaturesTooShort
	}

	var last common.Address
	for i := uint64(0); i < threshold; i++ {
		sig := signatures[i*signatureLength : (i+1)*signatureLength]
		v := sig[64]

		var owner common.Address
		switch {
		case v == 0:
			return ErrContractSignature
		case v == 1:
			owner = common.BytesToAddress(sig[:32])
			if cc.Caller != owner && !s.state.approved[owner][hash] {
				return ErrHashNotApproved
			}
		case v > 30:
			recovered, err := recoverSigner(accounts.TextHash(hash[:]), sig, v-4)
			if err != nil {
				return err
			}
			owner = recovered
		default:
			recovered, err := recoverSigner(hash[:], sig, v)
			if err != nil {
				return err
			}
			owner = recovered
		}

		if bytes.Compare(owner.Bytes(), last.Bytes()) <= 0 || !s.isOwner(owner) {
			return ErrInvalidOwnerProvided
		}
		last = owner
	}
	return nil
}

func recoverSigner(digest, sig []byte, v byte) (common.Address, error) {
	if v < 27 {
		return common.Address{}, ErrInvalidOwnerProvided
	}
	rsv := make([]byte, signatureLength)
	copy(rsv, sig[:64])
	rsv[64] = v - 27
	pub, err := crypto.SigToPub(digest, rsv)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidOwnerProvided, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// ApprovedHashSignature is the v=1 signature of owner for a hash it approved
// on-chain or for a transaction it submits itself.
func ApprovedHashSignature(owner common.Address) []byte {
	sig := make([]byte, signatureLength)
	copy(sig[12:32], owner.Bytes())
	sig[64] = 1
	return sig
}
