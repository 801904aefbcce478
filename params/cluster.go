package params

import "errors"

// Define available cluster presets.
const (
	ClusterDevnet      = "devnet"
	ClusterTestnet     = "testnet"
	ClusterMainnetBeta = "mainnet-beta"
	ClusterLocalnet    = "localnet"
)

var clusters = map[string]string{
	ClusterDevnet:      "https://api.devnet.solana.com",
	ClusterTestnet:     "https://api.testnet.solana.com",
	ClusterMainnetBeta: "https://api.mainnet-beta.solana.com",
	ClusterLocalnet:    "http://127.0.0.1:8899",
}

// ClusterURL returns the public RPC endpoint of a cluster preset.
func ClusterURL(name string) (string, error) {
	endpoint, ok := clusters[name]
	if ok {
		return endpoint, nil
	}
	return "", errors.New("cluster could not be found")
}
