package chain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
	"go.uber.org/zap"
)

// DefaultDeployer deploys every drill contract.
var DefaultDeployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// Drill market names seeded by DefaultDrillConfig.
const (
	DrillIsolatedMarket = "drillUSDC"
	DrillLegacyMarket   = "drillLegacyUSDC"
)

// DrillMarketConfig lists one vToken on the isolated or the legacy comptroller.
type DrillMarketConfig struct {
	Name                 string
	Legacy               bool
	CollateralFactor     *big.Int
	LiquidationThreshold *big.Int
}

// DrillConfig seeds a drill ledger.
type DrillConfig struct {
	ChainID       *big.Int
	OwnerKeys     []*ecdsa.PrivateKey
	Threshold     uint64
	Keeper        common.Address
	Executors     []common.Address
	Auditors      []common.Address
	Markets       []DrillMarketConfig
	SafeBalance   *big.Int
	ExecutorsOnly bool
	Publisher     interfaces.EventPublisher
}

// DrillKey derives a deterministic private key from label.
func DrillKey(label string) *ecdsa.PrivateKey {
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte("guardian-drill:" + label)))
	if err != nil {
		panic(err)
	}
	return key
}

// DrillAddress returns the address of DrillKey(label).
func DrillAddress(label string) common.Address {
	return crypto.PubkeyToAddress(DrillKey(label).PublicKey)
}

// DefaultDrillConfig is a 1/1 Safe on the hardhat chain with one executor,
// one auditor, one isolated and one legacy market.
func DefaultDrillConfig() DrillConfig {
	chainID, _ := helpers.GetChainID(helpers.ChainHardhat)
	return DrillConfig{
		ChainID:   big.NewInt(chainID),
		OwnerKeys: []*ecdsa.PrivateKey{DrillKey("owner")},
		Threshold: 1,
		Keeper:    DrillAddress("keeper"),
		Executors: []common.Address{DrillAddress("executor")},
		Auditors:  []common.Address{DrillAddress("auditor")},
		Markets: []DrillMarketConfig{
			{Name: DrillIsolatedMarket, CollateralFactor: mantissa(80), LiquidationThreshold: mantissa(85)},
			{Name: DrillLegacyMarket, Legacy: true, CollateralFactor: mantissa(75)},
		},
		SafeBalance: new(big.Int).Mul(big.NewInt(10), mantissaOne),
	}
}

func mantissa(percent int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(percent), big.NewInt(1e16))
}

// Drill is a seeded ledger: a guarded Safe with the pause module enabled and
// allowed on both comptrollers.
type Drill struct {
	Ledger            *Ledger
	Store             *store.MemoryStore
	Safe              common.Address
	MultiSendCallOnly common.Address
	Guard             common.Address
	PauseModule       common.Address
	Comptroller       common.Address
	LegacyComptroller common.Address
	Keeper            common.Address
	Markets           map[string]common.Address

	owners    []*ecdsa.PrivateKey
	threshold uint64
	reader    *LedgerReader
	logger    *zap.Logger
}

// NewDrill deploys and wires every drill contract.
func NewDrill(ctx context.Context, cfg DrillConfig, indicators *metrics.PromIndicators) (*Drill, error) {
	if cfg.ChainID == nil {
		return nil, fmt.Errorf("chain id is required")
	}
	if helpers.IsZeroAddress(cfg.Keeper) {
		return nil, fmt.Errorf("keeper: %w", services.ErrZeroAddress)
	}

	owners := append([]*ecdsa.PrivateKey(nil), cfg.OwnerKeys...)
	sort.Slice(owners, func(i, j int) bool {
		a := crypto.PubkeyToAddress(owners[i].PublicKey)
		b := crypto.PubkeyToAddress(owners[j].PublicKey)
		return bytes.Compare(a.Bytes(), b.Bytes()) < 0
	})
	ownerAddrs := make([]common.Address, len(owners))
	for i, key := range owners {
		ownerAddrs[i] = crypto.PubkeyToAddress(key.PublicKey)
	}

	safe, err := NewSimulatedSafe(ownerAddrs, cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to set up safe: %w", err)
	}

	st := store.NewMemoryStore()
	l := NewLedger(cfg.ChainID, st, indicators)
	d := &Drill{
		Ledger:    l,
		Store:     st,
		Keeper:    cfg.Keeper,
		Markets:   make(map[string]common.Address),
		owners:    owners,
		threshold: cfg.Threshold,
		reader:    NewLedgerReader(l),
		logger:    logger.Named(logger.ComponentLedger),
	}

	d.Safe = l.Deploy(DefaultDeployer, safe)
	d.MultiSendCallOnly = l.Deploy(DefaultDeployer, &MultiSendCallOnly{})
	if cfg.ExecutorsOnly {
		d.Guard = l.Deploy(DefaultDeployer, NewExecutorsGuardContract(st, indicators))
	} else {
		d.Guard = l.Deploy(DefaultDeployer, NewGuardContract(st, indicators))
	}

	comptroller := NewDrillComptroller()
	comptroller.Allow(d.Safe)
	d.Comptroller = l.Deploy(DefaultDeployer, comptroller)

	legacy := NewDrillLegacyComptroller()
	legacy.Allow(d.Safe)
	d.LegacyComptroller = l.Deploy(DefaultDeployer, legacy)

	for _, m := range cfg.Markets {
		if m.Legacy {
			vToken := l.Deploy(DefaultDeployer, NewDrillVToken(d.LegacyComptroller))
			legacy.ListMarket(vToken, m.CollateralFactor)
			d.Markets[m.Name] = vToken
			continue
		}
		vToken := l.Deploy(DefaultDeployer, NewDrillVToken(d.Comptroller))
		comptroller.ListMarket(vToken, m.CollateralFactor, m.LiquidationThreshold)
		d.Markets[m.Name] = vToken
	}

	module, err := NewPauseModuleContract(services.PauseModuleConfig{
		Keeper:                cfg.Keeper,
		Safe:                  d.Safe,
		MultiSendCallOnly:     d.MultiSendCallOnly,
		LegacyPoolComptroller: d.LegacyComptroller,
	}, st, cfg.Publisher, indicators)
	if err != nil {
		return nil, err
	}
	d.PauseModule = l.Deploy(DefaultDeployer, module)

	if cfg.SafeBalance != nil {
		l.SetBalance(d.Safe, cfg.SafeBalance)
	}

	// the Safe configures itself through impersonated self calls
	selfCall := func(to common.Address, contract *abi.ABI, method string, args ...any) error {
		input, err := contract.Pack(method, args...)
		if err != nil {
			return fmt.Errorf("failed to pack %s: %w", method, err)
		}
		if _, err := l.Transact(ctx, d.Safe, to, nil, input); err != nil {
			return fmt.Errorf("drill setup %s failed: %w", method, err)
		}
		return nil
	}
	if err := selfCall(d.Safe, contracts.SafeABI, "setGuard", d.Guard); err != nil {
		return nil, err
	}
	if err := selfCall(d.Safe, contracts.SafeABI, "enableModule", d.PauseModule); err != nil {
		return nil, err
	}
	if len(cfg.Executors) > 0 {
		if err := selfCall(d.Guard, contracts.SafeGuardABI, "addExecutors", cfg.Executors); err != nil {
			return nil, err
		}
	}
	if len(cfg.Auditors) > 0 && !cfg.ExecutorsOnly {
		if err := selfCall(d.Guard, contracts.SafeGuardABI, "addAuditors", cfg.Auditors); err != nil {
			return nil, err
		}
	}

	d.logger.Info("Drill ledger ready",
		zap.String("safe", d.Safe.Hex()),
		zap.String("guard", d.Guard.Hex()),
		zap.String("pause_module", d.PauseModule.Hex()),
		zap.String("keeper", d.Keeper.Hex()),
		zap.Int("markets", len(d.Markets)))
	return d, nil
}

// Reader returns a locking reader over the drill ledger.
func (d *Drill) Reader() *LedgerReader {
	return d.reader
}

// PauseModuleConfig returns the configuration the pause module was deployed with.
func (d *Drill) PauseModuleConfig() services.PauseModuleConfig {
	return services.PauseModuleConfig{
		Keeper:                d.Keeper,
		Safe:                  d.Safe,
		MultiSendCallOnly:     d.MultiSendCallOnly,
		LegacyPoolComptroller: d.LegacyComptroller,
	}
}

// SignSafeTransaction signs hash with the first threshold owners, in
// ascending owner order.
func (d *Drill) SignSafeTransaction(hash common.Hash) ([]byte, error) {
	sigs := make([]byte, 0, int(d.threshold)*signatureLength)
	for _, key := range d.owners[:d.threshold] {
		sig, err := crypto.Sign(hash[:], key)
		if err != nil {
			return nil, fmt.Errorf("failed to sign safe transaction: %w", err)
		}
		sig[64] += 27
		sigs = append(sigs, sig...)
	}
	return sigs, nil
}

// ExecSafeTransaction signs tx with the Safe owners for the current nonce and
// submits execTransaction from submitter.
func (d *Drill) ExecSafeTransaction(ctx context.Context, submitter common.Address, tx business.SafeTransaction) (*Receipt, error) {
	nonce, err := d.reader.Nonce(ctx, d.Safe)
	if err != nil {
		return nil, err
	}
	hash, err := d.reader.GetTransactionHash(ctx, d.Safe, tx, nonce)
	if err != nil {
		return nil, err
	}
	if len(tx.Signatures) == 0 {
		if tx.Signatures, err = d.SignSafeTransaction(hash); err != nil {
			return nil, err
		}
	}

	input, err := contracts.SafeABI.Pack("execTransaction",
		tx.To, orZero(tx.Value), tx.Data, tx.Operation, orZero(tx.SafeTxGas), orZero(tx.BaseGas),
		orZero(tx.GasPrice), tx.GasToken, tx.RefundReceiver, tx.Signatures)
	if err != nil {
		return nil, fmt.Errorf("failed to pack execTransaction: %w", err)
	}
	return d.Ledger.Transact(ctx, submitter, d.Safe, nil, input)
}

// PauseMarket calls pauseMarket(market) on the pause module from caller.
func (d *Drill) PauseMarket(ctx context.Context, caller, market common.Address) (*Receipt, error) {
	input, err := contracts.PauseModuleABI.Pack("pauseMarket", market)
	if err != nil {
		return nil, fmt.Errorf("failed to pack pauseMarket: %w", err)
	}
	return d.Ledger.Transact(ctx, caller, d.PauseModule, nil, input)
}

// MarketState reads the comptroller record and the paused flags of market.
func (d *Drill) MarketState(ctx context.Context, market common.Address) (*business.MarketState, error) {
	comptroller, err := d.reader.Comptroller(ctx, market)
	if err != nil {
		return nil, err
	}
	kind := venus.ResolveMarketKind(comptroller, d.LegacyComptroller)
	state := &business.MarketState{
		Market:        market,
		Comptroller:   comptroller,
		Kind:          kind.String(),
		PausedActions: make(map[uint8]bool),
	}

	comptrollerABI := contracts.ComptrollerABI
	if kind == venus.MarketKindLegacy {
		comptrollerABI = contracts.LegacyComptrollerABI
	}
	out, err := d.reader.callMethod(ctx, comptrollerABI, comptroller, "markets", market)
	if err != nil {
		return nil, err
	}
	state.Listed = out[0].(bool)
	state.CollateralFactor = out[1].(*big.Int)
	if kind == venus.MarketKindIsolated {
		state.LiquidationThreshold = out[2].(*big.Int)
	}

	for _, action := range venus.PausedActions() {
		paused, err := d.reader.callMethod(ctx, comptrollerABI, comptroller, "actionPaused", market, action)
		if err != nil {
			return nil, err
		}
		state.PausedActions[action] = paused[0].(bool)
	}
	return state, nil
}

// LedgerApprovals routes auditor approvals through the guard contract so
// they are serialized with, and journaled by, the drill ledger.
type LedgerApprovals struct {
	drill *Drill
	reads *services.ApprovalService
}

func NewLedgerApprovals(d *Drill, indicators *metrics.PromIndicators) *LedgerApprovals {
	return &LedgerApprovals{drill: d, reads: services.NewApprovalService(d.Store, indicators)}
}

func (a *LedgerApprovals) Approve(ctx context.Context, caller, account common.Address, nonce *big.Int, fingerprint common.Hash) error {
	if !validNonce(nonce) {
		return a.reads.Approve(ctx, caller, account, nonce, fingerprint)
	}
	input, err := contracts.SafeGuardABI.Pack("addMessageHash", account, nonce, [32]byte(fingerprint))
	if err != nil {
		return fmt.Errorf("failed to pack addMessageHash: %w", err)
	}
	_, err = a.drill.Ledger.Transact(ctx, caller, a.drill.Guard, nil, input)
	return err
}

func (a *LedgerApprovals) ApproveBatch(ctx context.Context, caller, account common.Address, nonces []*big.Int, fingerprints []common.Hash) error {
	for _, nonce := range nonces {
		if !validNonce(nonce) {
			// rejected by the service without touching the store
			return a.reads.ApproveBatch(ctx, caller, account, nonces, fingerprints)
		}
	}
	hashes := make([][32]byte, len(fingerprints))
	for i, h := range fingerprints {
		hashes[i] = h
	}
	input, err := contracts.SafeGuardABI.Pack("addMessageHashes", account, nonces, hashes)
	if err != nil {
		return fmt.Errorf("failed to pack addMessageHashes: %w", err)
	}
	_, err = a.drill.Ledger.Transact(ctx, caller, a.drill.Guard, nil, input)
	return err
}

func (a *LedgerApprovals) Get(ctx context.Context, account common.Address, nonce *big.Int) (common.Hash, bool, error) {
	return a.reads.Get(ctx, account, nonce)
}

func (a *LedgerApprovals) List(ctx context.Context, account common.Address) ([]business.Approval, error) {
	return a.reads.List(ctx, account)
}

var _ interfaces.ApprovalService = (*LedgerApprovals)(nil)

func validNonce(nonce *big.Int) bool {
	return nonce != nil && nonce.Sign() >= 0 && nonce.BitLen() <= 256
}
