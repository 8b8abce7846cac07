package chains

import (
	"fmt"
	"sort"
)

// Provides offline network data for the chains the explorer submits to.
type OfflineChainRegistry struct {
	ChainIDToData       map[string]*Network
	ChainNameToData     map[string]*Network
	AccountPrefixToData map[string]*Network
}

func NewOfflineChainRegistry() *OfflineChainRegistry {
	chainRegistry := NewEmptyChainRegistry()

	chainRegistry.Add(&Network{
		ChainName:           "nubit-alphatestnet",
		ChainID:             "nubit-alphatestnet-1",
		PrettyName:          "Nubit Alpha Testnet",
		AccountPrefix:       "nubit",
		CoinType:            118,
		RestUrl:             "https://alphatestnet-rest.nubit.org",
		RpcUrl:              "https://alphatestnet-rpc.nubit.org",
		GrpcUrl:             "alphatestnet-grpc.nubit.org:443",
		NativeToken:         "unub",
		NativeTokenDisplay:  "NUB",
		NativeTokenDecimals: 6,
		GasPrices:           GasPrices{Low: 0.01, Average: 0.02, High: 0.1},
	})
	chainRegistry.Add(&Network{
		ChainName:           "celestia",
		ChainID:             "celestia",
		PrettyName:          "Celestia",
		AccountPrefix:       "celestia",
		CoinType:            118,
		RestUrl:             "https://celestia-rest.publicnode.com",
		RpcUrl:              "https://celestia-rpc.publicnode.com",
		GrpcUrl:             "celestia-grpc.publicnode.com:443",
		NativeToken:         "utia",
		NativeTokenDisplay:  "TIA",
		NativeTokenDecimals: 6,
		GasPrices:           GasPrices{Low: 0.01, Average: 0.02, High: 0.1},
	})
	chainRegistry.Add(&Network{
		ChainName:           "celestia-mocha",
		ChainID:             "mocha-4",
		PrettyName:          "Celestia Mocha Testnet",
		AccountPrefix:       "celestia",
		CoinType:            118,
		RestUrl:             "https://celestia-testnet-rest.publicnode.com",
		RpcUrl:              "https://celestia-testnet-rpc.publicnode.com",
		GrpcUrl:             "celestia-testnet-grpc.publicnode.com:443",
		NativeToken:         "utia",
		NativeTokenDisplay:  "TIA",
		NativeTokenDecimals: 6,
		GasPrices:           GasPrices{Low: 0.01, Average: 0.02, High: 0.1},
	})

	return chainRegistry
}

// NewEmptyChainRegistry makes a registry with no networks.
func NewEmptyChainRegistry() *OfflineChainRegistry {
	return &OfflineChainRegistry{
		ChainIDToData:       make(map[string]*Network),
		ChainNameToData:     make(map[string]*Network),
		AccountPrefixToData: make(map[string]*Network),
	}
}

// Add registers a network, replacing any network with the same name or chain ID.
func (cr *OfflineChainRegistry) Add(network *Network) {
	cr.ChainNameToData[network.ChainName] = network
	cr.ChainIDToData[network.ChainID] = network
	cr.AccountPrefixToData[network.AccountPrefix] = network
}

// Lookup finds a network by chain name, falling back to chain ID.
func (cr *OfflineChainRegistry) Lookup(nameOrChainID string) (*Network, error) {
	if network, ok := cr.ChainNameToData[nameOrChainID]; ok {
		return network, nil
	}
	if network, ok := cr.ChainIDToData[nameOrChainID]; ok {
		return network, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, nameOrChainID)
}

// Networks returns all networks, sorted by chain name.
func (cr *OfflineChainRegistry) Networks() []*Network {
	networks := make([]*Network, 0, len(cr.ChainNameToData))
	for _, network := range cr.ChainNameToData {
		networks = append(networks, network)
	}
	sort.Slice(networks, func(i, j int) bool {
		return networks[i].ChainName < networks[j].ChainName
	})
	return networks
}
