// Package contracts embeds the ABIs of every contract the guardian talks to:
// the Safe, MultiSendCallOnly, the Venus comptrollers and vTokens, the
// SafeGuard and the monitoring pause module.
package contracts

import (
	"bytes"
	"embed"
	"fmt"
	"path"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi/*.json
var abiFiles embed.FS

// Contract names, matching the files under abi/.
const (
	Safe              = "Safe"
	MultiSendCallOnly = "MultiSendCallOnly"
	Comptroller       = "Comptroller"
	LegacyComptroller = "LegacyComptroller"
	VToken            = "VToken"
	SafeGuard         = "SafeGuard"
	PauseModule       = "PauseModule"
)

var (
	SafeABI              = mustLoad(Safe)
	MultiSendCallOnlyABI = mustLoad(MultiSendCallOnly)
	ComptrollerABI       = mustLoad(Comptroller)
	LegacyComptrollerABI = mustLoad(LegacyComptroller)
	VTokenABI            = mustLoad(VToken)
	SafeGuardABI         = mustLoad(SafeGuard)
	PauseModuleABI       = mustLoad(PauseModule)
)

// Load parses the embedded ABI for the named contract.
func Load(name string) (*abi.ABI, error) {
	raw, err := abiFiles.ReadFile(path.Join("abi", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("unknown contract %q: %w", name, err)
	}
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s abi: %w", name, err)
	}
	return &parsed, nil
}

func mustLoad(name string) *abi.ABI {
	parsed, err := Load(name)
	if err != nil {
		panic(err)
	}
	return parsed
}

// Selector returns the 4-byte method id of a method in the given ABI.
func Selector(contract *abi.ABI, method string) ([4]byte, error) {
	var sel [4]byte
	m, ok := contract.Methods[method]
	if !ok {
		return sel, fmt.Errorf("method %s not found", method)
	}
	copy(sel[:], m.ID)
	return sel, nil
}
