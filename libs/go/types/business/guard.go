package business

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
)

// RegistryKind selects the executor or auditor namespace of the guard registry.
type RegistryKind string

const (
	RegistryExecutors RegistryKind = constants.ExecutorsRegistry
	RegistryAuditors  RegistryKind = constants.AuditorsRegistry
)

// Valid reports whether k names a known registry.
func (k RegistryKind) Valid() bool {
	return k == RegistryExecutors || k == RegistryAuditors
}

func (k RegistryKind) String() string {
	return string(k)
}

// AddedEvent returns the observation name recorded when a member is added.
func (k RegistryKind) AddedEvent() string {
	if k == RegistryAuditors {
		return constants.EventAuditorAdded
	}
	return constants.EventExecutorAdded
}

// RemovedEvent returns the observation name recorded when a member is removed.
func (k RegistryKind) RemovedEvent() string {
	if k == RegistryAuditors {
		return constants.EventAuditorRemoved
	}
	return constants.EventExecutorRemoved
}

// SafeTransaction is the parameter tuple a Safe hashes and executes.
// Signatures are carried along for execution but are not part of the fingerprint.
type SafeTransaction struct {
	To             common.Address
	Value          *big.Int
	Data           []byte
	Operation      uint8
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       common.Address
	RefundReceiver common.Address
	Signatures     []byte
}

// Approval is the fingerprint an auditor recorded for one account nonce.
type Approval struct {
	Account     common.Address `json:"account"`
	Nonce       *big.Int       `json:"nonce"`
	Fingerprint common.Hash    `json:"fingerprint"`
	Auditor     common.Address `json:"auditor"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Event is an observation emitted by the guard, the pause module or the drill ledger.
type Event struct {
	ID        int64             `json:"id,omitempty"`
	Name      string            `json:"name"`
	Account   common.Address    `json:"account"`
	Fields    map[string]string `json:"fields,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// GuardDecision describes the outcome of a pre-execution check.
type GuardDecision struct {
	Account     common.Address `json:"account"`
	Submitter   common.Address `json:"submitter"`
	Nonce       *big.Int       `json:"nonce"`
	Fingerprint common.Hash    `json:"fingerprint"`
	Accepted    bool           `json:"accepted"`
	Reason      string         `json:"reason,omitempty"`
}

// GuardChange is one registry or approval log emitted by a deployed SafeGuard.
// Member is set for registry changes; Nonce, Hash and Sender for MessageHashAdded.
type GuardChange struct {
	Name     string
	Account  common.Address
	Member   common.Address
	Nonce    *big.Int
	Hash     common.Hash
	Sender   common.Address
	Block    uint64
	TxHash   common.Hash
	LogIndex uint
}

// Registry returns the registry a membership change applies to.
func (c GuardChange) Registry() (RegistryKind, bool) {
	switch c.Name {
	case constants.EventExecutorAdded, constants.EventExecutorRemoved:
		return RegistryExecutors, true
	case constants.EventAuditorAdded, constants.EventAuditorRemoved:
		return RegistryAuditors, true
	}
	return "", false
}
