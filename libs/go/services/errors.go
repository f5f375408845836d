package services

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

var (
	ErrZeroAddress       = errors.New("zero address")
	ErrAlreadyPresent    = errors.New("member already present")
	ErrNotPresent        = errors.New("member not present")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCallerNotContract = errors.New("caller is not a contract")
	ErrAuditorNotAllowed = errors.New("AuditorNotAllowed")
	ErrEmptyInput        = errors.New("empty input")
	ErrLengthMismatch    = errors.New("input length mismatch")
	ErrNotExecutor       = errors.New("submitter is not an executor")
	ErrInvalidHash       = errors.New("InvalidHash")
	ErrSafeTxFailed      = errors.New("SafeTxFailed")
	ErrInvalidNonce      = errors.New("invalid nonce")
	ErrUnknownRegistry   = errors.New("unknown registry kind")
)

// AlreadyPresentError is returned when adding a member that is already in the set.
type AlreadyPresentError struct {
	Kind   business.RegistryKind
	Member common.Address
}

func (e *AlreadyPresentError) Error() string {
	if e.Kind == business.RegistryAuditors {
		return fmt.Sprintf("AuditorExists(%s)", e.Member.Hex())
	}
	return fmt.Sprintf("ExecutorExists(%s)", e.Member.Hex())
}

func (e *AlreadyPresentError) Unwrap() error { return ErrAlreadyPresent }

// NotPresentError is returned when removing a member that is not in the set.
type NotPresentError struct {
	Kind   business.RegistryKind
	Member common.Address
}

func (e *NotPresentError) Error() string {
	if e.Kind == business.RegistryAuditors {
		return fmt.Sprintf("AuditorDoesNotExist(%s)", e.Member.Hex())
	}
	return fmt.Sprintf("ExecutorDoesNotExist(%s)", e.Member.Hex())
}

func (e *NotPresentError) Unwrap() error { return ErrNotPresent }

// NotExecutorError carries the rejected submitter.
type NotExecutorError struct {
	Submitter common.Address
}

func (e *NotExecutorError) Error() string {
	return fmt.Sprintf("NotExecutor(%s)", e.Submitter.Hex())
}

func (e *NotExecutorError) Unwrap() error { return ErrNotExecutor }
