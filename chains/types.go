package chains

// Network describes a chain the pipeline can submit transactions to.
type Network struct {
	ChainName     string `yaml:"chain_name" json:"chain_name"`
	ChainID       string `yaml:"chain_id" json:"chain_id"`
	PrettyName    string `yaml:"pretty_name" json:"pretty_name"`
	AccountPrefix string `yaml:"account_prefix" json:"account_prefix"`
	CoinType      uint32 `yaml:"coin_type" json:"coin_type"`

	RestUrl string `yaml:"rest_url" json:"rest_url"`
	RpcUrl  string `yaml:"rpc_url" json:"rpc_url"`
	GrpcUrl string `yaml:"grpc_url" json:"grpc_url"`

	NativeToken         string `yaml:"native_token" json:"native_token"`
	NativeTokenDisplay  string `yaml:"native_token_display" json:"native_token_display"`
	NativeTokenDecimals int    `yaml:"native_token_decimals" json:"native_token_decimals"`

	GasPrices GasPrices `yaml:"gas_prices" json:"gas_prices"`
}

// GasPrices are the low / average / high steps suggested to a wallet.
type GasPrices struct {
	Low     float64 `yaml:"low" json:"low"`
	Average float64 `yaml:"average" json:"average"`
	High    float64 `yaml:"high" json:"high"`
}
