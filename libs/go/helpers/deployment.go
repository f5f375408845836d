package helpers

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

const (
	tenderlyKeeper             = "0x55A9f5374Af30E3045FB491f1da3C2E8a74d168D"
	multiSendCallOnlyCanonical = "0x9641d764fc13c8B624c04430C7356C1C7C8102e2"
	multiSendCallOnlyZksync    = "0x0408EF011960d02349d50286D20531229BCef773"
)

// ErrIncompleteDeployment is returned when keeper, guardian or multisend is missing for a network.
var ErrIncompleteDeployment = errors.New("some of the expected addresses are not configured")

// DeploymentAddresses are the per network addresses the pause module is deployed with.
// Guardian is the Safe that enables the module and installs the guard.
type DeploymentAddresses struct {
	Keeper                string `yaml:"keeper"`
	Guardian              string `yaml:"guardian"`
	MultiSendCallOnly     string `yaml:"multi_send_call_only"`
	LegacyPoolComptroller string `yaml:"legacy_pool_comptroller"`
	Guard                 string `yaml:"guard"`
	PauseModule           string `yaml:"pause_module"`
}

// Deployment is a resolved, validated DeploymentAddresses.
type Deployment struct {
	Chain                 string
	ChainID               int64
	Keeper                common.Address
	Guardian              common.Address
	MultiSendCallOnly     common.Address
	LegacyPoolComptroller common.Address
	Guard                 common.Address
	PauseModule           common.Address
}

var preconfigured = map[string]DeploymentAddresses{
	ChainHardhat:          {},
	ChainBerachainBepolia: {},
	ChainBscTestnet:       canonical("0x70B9120deF94F377fD98AB28CbBCe477a355202A"),
	ChainBscMainnet:       canonical("0x1C2CAc6ec528c20800B2fe734820D87b581eAA6B"),
	ChainSepolia:          canonical("0x94fa6078b6b8a26f0b6edffbe6501b22a10470fb"),
	ChainEthereum:         canonical("0x285960C5B22fD66A736C7136967A3eB15e93CC67"),
	ChainOpbnbTestnet:     canonical("0xb15f6EfEbC276A3b9805df81b5FB3D50C2A62BDf"),
	ChainOpbnbMainnet:     canonical("0xC46796a21a3A9FAB6546aF3434F2eBfFd0604207"),
	ChainArbitrumSepolia:  canonical("0x1426A5Ae009c4443188DA8793751024E358A61C2"),
	ChainArbitrumOne:      canonical("0x14e0E151b33f9802b3e75b621c1457afc44DcAA0"),
	ChainOpSepolia:        canonical("0xd57365EE4E850e881229e2F8Aa405822f289e78d"),
	ChainOpMainnet:        canonical("0x2e94dd14E81999CdBF5deDE31938beD7308354b3"),
	ChainBaseSepolia:      canonical("0xdf3b635d2b535f906BB02abb22AED71346E36a00"),
	ChainBaseMainnet:      canonical("0x1803Cf1D3495b43cC628aa1d8638A981F8CD341C"),
	ChainUnichainSepolia:  canonical("0x9831D3A641E8c7F082EEA75b8249c99be9D09a34"),
	ChainUnichainMainnet:  canonical("0x1803Cf1D3495b43cC628aa1d8638A981F8CD341C"),
	ChainZksyncSepolia:    zksync("0xa2f83de95E9F28eD443132C331B6a9C9B7a9F866"),
	ChainZksyncMainnet:    zksync("0x751Aa759cfBB6CE71A43b48e40e1cCcFC66Ba4aa"),
}

func canonical(guardian string) DeploymentAddresses {
	return DeploymentAddresses{Keeper: tenderlyKeeper, Guardian: guardian, MultiSendCallOnly: multiSendCallOnlyCanonical}
}

func zksync(guardian string) DeploymentAddresses {
	return DeploymentAddresses{Keeper: tenderlyKeeper, Guardian: guardian, MultiSendCallOnly: multiSendCallOnlyZksync}
}

// GetChainAddresses returns a copy of the built-in addresses for a known network.
func GetChainAddresses(chain string) (DeploymentAddresses, error) {
	name, err := GetChainName(chain)
	if err != nil {
		return DeploymentAddresses{}, err
	}
	return preconfigured[name], nil
}

// HasExpectedAddresses reports whether keeper, guardian and multisend are all set.
func (a DeploymentAddresses) HasExpectedAddresses() bool {
	return a.Keeper != "" && a.Guardian != "" && a.MultiSendCallOnly != ""
}

// Merge overlays the non-empty fields of o onto a.
func (a DeploymentAddresses) Merge(o DeploymentAddresses) DeploymentAddresses {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return DeploymentAddresses{
		Keeper:                pick(a.Keeper, o.Keeper),
		Guardian:              pick(a.Guardian, o.Guardian),
		MultiSendCallOnly:     pick(a.MultiSendCallOnly, o.MultiSendCallOnly),
		LegacyPoolComptroller: pick(a.LegacyPoolComptroller, o.LegacyPoolComptroller),
		Guard:                 pick(a.Guard, o.Guard),
		PauseModule:           pick(a.PauseModule, o.PauseModule),
	}
}

// LoadDeploymentFile reads per chain overrides from a YAML file keyed by chain name.
func LoadDeploymentFile(path string) (map[string]DeploymentAddresses, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment config: %w", err)
	}
	var doc struct {
		Chains map[string]DeploymentAddresses `yaml:"chains"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse deployment config: %w", err)
	}
	for name := range doc.Chains {
		if _, err := GetChainName(name); err != nil {
			return nil, fmt.Errorf("deployment config: %w", err)
		}
	}
	return doc.Chains, nil
}

// DeploymentFromEnv reads the address overrides from the environment.
func DeploymentFromEnv() DeploymentAddresses {
	return DeploymentAddresses{
		Keeper:                os.Getenv("KEEPER_ADDRESS"),
		Guardian:              os.Getenv("SAFE_ADDRESS"),
		MultiSendCallOnly:     os.Getenv("MULTISEND_ADDRESS"),
		LegacyPoolComptroller: os.Getenv("LEGACY_COMPTROLLER_ADDRESS"),
		Guard:                 os.Getenv("GUARD_ADDRESS"),
		PauseModule:           os.Getenv("PAUSE_MODULE_ADDRESS"),
	}
}

// ResolveDeployment combines built-in, file (configPath, optional) and env addresses for chain.
// Precedence is env over file over built-in.
func ResolveDeployment(chain, configPath string) (Deployment, error) {
	addrs, err := GetChainAddresses(chain)
	if err != nil {
		return Deployment{}, err
	}
	if configPath != "" {
		overrides, err := LoadDeploymentFile(configPath)
		if err != nil {
			return Deployment{}, err
		}
		addrs = addrs.Merge(overrides[chain])
	}
	addrs = addrs.Merge(DeploymentFromEnv())
	return addrs.Validate(chain)
}

// Validate parses every address and refuses incomplete configurations.
func (a DeploymentAddresses) Validate(chain string) (Deployment, error) {
	if !a.HasExpectedAddresses() {
		return Deployment{}, fmt.Errorf("%s: %w", chain, ErrIncompleteDeployment)
	}
	chainID, err := GetChainID(chain)
	if err != nil {
		return Deployment{}, err
	}

	d := Deployment{Chain: chain, ChainID: chainID}
	fields := []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"keeper", a.Keeper, &d.Keeper},
		{"guardian", a.Guardian, &d.Guardian},
		{"multi_send_call_only", a.MultiSendCallOnly, &d.MultiSendCallOnly},
		{"legacy_pool_comptroller", a.LegacyPoolComptroller, &d.LegacyPoolComptroller},
		{"guard", a.Guard, &d.Guard},
		{"pause_module", a.PauseModule, &d.PauseModule},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		addr, err := ParseAddress(f.value)
		if err != nil {
			return Deployment{}, fmt.Errorf("%s %s: %w", chain, f.name, err)
		}
		*f.dst = addr
	}
	return d, nil
}
