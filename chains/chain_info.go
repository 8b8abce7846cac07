package chains

import "fmt"

// ChainInfo is the descriptor a wallet extension accepts when a chain is suggested to it.
type ChainInfo struct {
	ChainID       string       `json:"chainId"`
	ChainName     string       `json:"chainName"`
	Rpc           string       `json:"rpc"`
	Rest          string       `json:"rest"`
	Bip44         Bip44        `json:"bip44"`
	Bech32Config  Bech32Config `json:"bech32Config"`
	Currencies    []Currency   `json:"currencies"`
	FeeCurrencies []Currency   `json:"feeCurrencies"`
	StakeCurrency Currency     `json:"stakeCurrency"`
}

type Bip44 struct {
	CoinType uint32 `json:"coinType"`
}

type Bech32Config struct {
	Bech32PrefixAccAddr  string `json:"bech32PrefixAccAddr"`
	Bech32PrefixAccPub   string `json:"bech32PrefixAccPub"`
	Bech32PrefixValAddr  string `json:"bech32PrefixValAddr"`
	Bech32PrefixValPub   string `json:"bech32PrefixValPub"`
	Bech32PrefixConsAddr string `json:"bech32PrefixConsAddr"`
	Bech32PrefixConsPub  string `json:"bech32PrefixConsPub"`
}

type Currency struct {
	CoinDenom        string        `json:"coinDenom"`
	CoinMinimalDenom string        `json:"coinMinimalDenom"`
	CoinDecimals     int           `json:"coinDecimals"`
	GasPriceStep     *GasPriceStep `json:"gasPriceStep,omitempty"`
}

type GasPriceStep struct {
	Low     float64 `json:"low"`
	Average float64 `json:"average"`
	High    float64 `json:"high"`
}

// ChainInfo derives the wallet descriptor for the network.
func (n *Network) ChainInfo() ChainInfo {
	prefix := n.AccountPrefix
	currency := Currency{
		CoinDenom:        n.NativeTokenDisplay,
		CoinMinimalDenom: n.NativeToken,
		CoinDecimals:     n.NativeTokenDecimals,
	}

	feeCurrency := currency
	feeCurrency.GasPriceStep = &GasPriceStep{
		Low:     n.GasPrices.Low,
		Average: n.GasPrices.Average,
		High:    n.GasPrices.High,
	}

	return ChainInfo{
		ChainID:   n.ChainID,
		ChainName: n.PrettyName,
		Rpc:       n.RpcUrl,
		Rest:      n.RestUrl,
		Bip44:     Bip44{CoinType: n.CoinType},
		Bech32Config: Bech32Config{
			Bech32PrefixAccAddr:  prefix,
			Bech32PrefixAccPub:   prefix + "pub",
			Bech32PrefixValAddr:  prefix + "valoper",
			Bech32PrefixValPub:   prefix + "valoperpub",
			Bech32PrefixConsAddr: prefix + "valcons",
			Bech32PrefixConsPub:  prefix + "valconspub",
		},
		Currencies:    []Currency{currency},
		FeeCurrencies: []Currency{feeCurrency},
		StakeCurrency: currency,
	}
}

// Validate checks the fields every stage of the pipeline relies on.
func (n *Network) Validate() error {
	if n.ChainID == "" {
		return fmt.Errorf("network %q has no chain id", n.ChainName)
	}
	if n.AccountPrefix == "" {
		return fmt.Errorf("network %q has no account prefix", n.ChainName)
	}
	if n.RestUrl == "" && n.GrpcUrl == "" {
		return fmt.Errorf("network %q has neither a rest nor a grpc url", n.ChainName)
	}
	if n.NativeToken == "" {
		return fmt.Errorf("network %q has no native token", n.ChainName)
	}
	return nil
}
