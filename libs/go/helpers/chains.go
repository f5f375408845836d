package helpers

import "fmt"

// Networks the guardian has deployment configuration for.
const (
	ChainHardhat          = "hardhat"
	ChainBscMainnet       = "bscmainnet"
	ChainBscTestnet       = "bsctestnet"
	ChainEthereum         = "ethereum"
	ChainSepolia          = "sepolia"
	ChainOpbnbMainnet     = "opbnbmainnet"
	ChainOpbnbTestnet     = "opbnbtestnet"
	ChainArbitrumOne      = "arbitrumone"
	ChainArbitrumSepolia  = "arbitrumsepolia"
	ChainZksyncMainnet    = "zksyncmainnet"
	ChainZksyncSepolia    = "zksyncsepolia"
	ChainOpMainnet        = "opmainnet"
	ChainOpSepolia        = "opsepolia"
	ChainBaseMainnet      = "basemainnet"
	ChainBaseSepolia      = "basesepolia"
	ChainUnichainMainnet  = "unichainmainnet"
	ChainUnichainSepolia  = "unichainsepolia"
	ChainBerachainBepolia = "berachainbepolia"
)

var chainIDs = map[string]int64{
	ChainHardhat:          31337,
	ChainBscMainnet:       56,
	ChainBscTestnet:       97,
	ChainEthereum:         1,
	ChainSepolia:          11155111,
	ChainOpbnbMainnet:     204,
	ChainOpbnbTestnet:     5611,
	ChainArbitrumOne:      42161,
	ChainArbitrumSepolia:  421614,
	ChainZksyncMainnet:    324,
	ChainZksyncSepolia:    300,
	ChainOpMainnet:        10,
	ChainOpSepolia:        11155420,
	ChainBaseMainnet:      8453,
	ChainBaseSepolia:      84532,
	ChainUnichainMainnet:  130,
	ChainUnichainSepolia:  1301,
	ChainBerachainBepolia: 80069,
}

// GetChainName validates name against the known network list.
func GetChainName(name string) (string, error) {
	if _, ok := chainIDs[name]; !ok {
		return "", fmt.Errorf("unknown chain name %q", name)
	}
	return name, nil
}

// GetChainID returns the EIP-155 chain id of a known network.
func GetChainID(name string) (int64, error) {
	id, ok := chainIDs[name]
	if !ok {
		return 0, fmt.Errorf("unknown chain name %q", name)
	}
	return id, nil
}

// IsZksync reports whether the network uses the zkSync deployment of MultiSendCallOnly.
func IsZksync(name string) bool {
	return name == ChainZksyncMainnet || name == ChainZksyncSepolia
}
