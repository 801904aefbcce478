package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/params"
)

const testProgramID = "5c3D9iAM2uGBfnZW9ycJ7t7ybwFSADzGaWuxUuusM9ZV"

func TestDefaultConfigIsValid(t *testing.T) {
	config := params.NewDefaultConfig()
	require.NoError(t, config.Validate())

	endpoint, err := config.Cluster.Endpoint()
	require.NoError(t, err)
	require.Equal(t, "https://api.devnet.solana.com", endpoint)
	require.Equal(t, "https://twitter.com/andrewmhenry22", config.Footer.Link())
}

func TestNewConfigFromJSON(t *testing.T) {
	var testCases = []struct {
		Name      string
		JSON      string
		ShouldErr string
		Check     func(t *testing.T, c *params.Config)
	}{
		{
			Name: "chain backend with base account",
			JSON: `{
				"Store": {"Backend": "chain"},
				"Program": {"ProgramID": "` + testProgramID + `", "BaseAccount": "` + testProgramID + `"},
				"Cluster": {"URL": "http://127.0.0.1:8899", "Commitment": "confirmed", "CallTimeout": 5, "ConfirmTimeout": 5}
			}`,
			Check: func(t *testing.T, c *params.Config) {
				require.Equal(t, params.StoreBackendChain, c.Store.Backend)
				require.Equal(t, params.CommitmentConfirmed, c.Cluster.Commitment)
				endpoint, err := c.Cluster.Endpoint()
				require.NoError(t, err)
				require.Equal(t, "http://127.0.0.1:8899", endpoint)
			},
		},
		{
			Name:      "chain backend without program id",
			JSON:      `{"Store": {"Backend": "chain"}}`,
			ShouldErr: "Program.ProgramID",
		},
		{
			Name:      "chain backend without base account",
			JSON:      `{"Store": {"Backend": "chain"}, "Program": {"ProgramID": "` + testProgramID + `"}}`,
			ShouldErr: "BaseAccount",
		},
		{
			Name:      "unknown backend",
			JSON:      `{"Store": {"Backend": "s3"}}`,
			ShouldErr: "'oneof' tag",
		},
		{
			Name:      "unknown commitment",
			JSON:      `{"Cluster": {"Name": "devnet", "Commitment": "eventually", "CallTimeout": 1, "ConfirmTimeout": 1}}`,
			ShouldErr: "Commitment",
		},
		{
			Name:      "wallet without key file",
			JSON:      `{"Wallet": {"Enabled": true, "ApprovalTimeout": 10}}`,
			ShouldErr: "Wallet.KeyFile",
		},
		{
			Name:      "unknown field",
			JSON:      `{"NoSuchField": true}`,
			ShouldErr: "unknown field",
		},
		{
			Name:      "invalid cluster url",
			JSON:      `{"Cluster": {"URL": "not a url", "Commitment": "processed", "CallTimeout": 1, "ConfirmTimeout": 1}}`,
			ShouldErr: "Cluster.URL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			config, err := params.NewConfigFromJSON(tc.JSON)
			if tc.ShouldErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.ShouldErr)
				return
			}
			require.NoError(t, err)
			tc.Check(t, config)
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"DataDir": "`+dir+`", "Footer": {"Handle": "someone"}}`), 0600))

	config, err := params.LoadConfigFromFile(path)
	require.NoError(t, err)
	require.Equal(t, dir, config.DataDir)
	require.Equal(t, filepath.Join(dir, "arcadia.db"), config.ResolvePath(config.Database.Path))
	require.Equal(t, "/abs/file", config.ResolvePath("/abs/file"))
	require.Equal(t, "https://twitter.com/someone", config.Footer.Link())
}

func TestConfigStringRedactsSecrets(t *testing.T) {
	config := params.NewDefaultConfig()
	config.Database.Password = "hunter2"
	config.HTTP.SessionSecret = "cookie-secret"

	out := config.String()
	require.NotContains(t, out, "hunter2")
	require.NotContains(t, out, "cookie-secret")
	require.Equal(t, "hunter2", config.Database.Password)
}

func TestClusterURL(t *testing.T) {
	endpoint, err := params.ClusterURL(params.ClusterMainnetBeta)
	require.NoError(t, err)
	require.Equal(t, "https://api.mainnet-beta.solana.com", endpoint)

	_, err = params.ClusterURL("moon")
	require.Error(t, err)
}
