package params

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validator "gopkg.in/go-playground/validator.v9"

	"github.com/status-im/arcadia/chain/types"
)

// Store backends.
const (
	StoreBackendChain  = "chain"
	StoreBackendSQLite = "sqlite"
	StoreBackendMemory = "memory"
)

// Commitment levels understood by the cluster.
const (
	CommitmentProcessed = "processed"
	CommitmentConfirmed = "confirmed"
	CommitmentFinalized = "finalized"
)

// ----------
// ClusterConfig
// ----------

// ClusterConfig describes how to reach the cluster hosting the gallery program.
type ClusterConfig struct {
	// Name is one of the known cluster presets. Ignored when URL is set.
	Name string `validate:"omitempty,oneof=devnet testnet mainnet-beta localnet"`

	// URL overrides the preset endpoint.
	URL string

	// Commitment is used both as preflight commitment and confirmation target.
	Commitment string `validate:"required,oneof=processed confirmed finalized"`

	// CallTimeout in seconds for a single RPC call.
	CallTimeout int `validate:"min=1"`

	// ConfirmTimeout in seconds while waiting for a submitted transaction.
	ConfirmTimeout int `validate:"min=1"`

	// RequestsPerSecond caps calls to the endpoint. 0 disables the limit.
	RequestsPerSecond int `validate:"min=0"`

	// CircuitBreaker stops calling an endpoint that keeps failing and probes
	// it again after a while.
	CircuitBreaker bool
}

// Endpoint returns the cluster RPC endpoint.
func (c ClusterConfig) Endpoint() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	return ClusterURL(c.Name)
}

// ----------
// ProgramConfig
// ----------

// ProgramConfig holds the fixed on-chain identifiers of the gallery.
type ProgramConfig struct {
	// ProgramID is the base58 address of the gallery program.
	ProgramID string

	// BaseAccountKeyFile is a JSON keypair file for the account holding the gallery.
	// It is needed to sign the one-time initialization.
	BaseAccountKeyFile string

	// BaseAccount is the base58 address of the gallery account. Used when no
	// key file is available; initialization is then impossible.
	BaseAccount string
}

// ----------
// StoreConfig
// ----------

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend string `validate:"required,oneof=chain sqlite memory"`
}

// ----------
// DatabaseConfig
// ----------

// DatabaseConfig points at the encrypted local database holding trusted
// grants and, for the sqlite backend, the gallery records.
type DatabaseConfig struct {
	// Path of the database file. Relative paths are resolved against DataDir.
	Path string `validate:"required"`

	// Password is hashed into the sqlcipher key.
	Password string
}

// ----------
// WalletConfig
// ----------

// WalletConfig configures the local wallet provider.
type WalletConfig struct {
	// Enabled is false when no wallet is installed; the gallery then shows the
	// missing provider warning.
	Enabled bool

	// KeyFile is the JSON keypair file holding the user's key.
	KeyFile string

	// AutoApprove treats the explicit connect action as the approval.
	AutoApprove bool

	// ApprovalTimeout in seconds to wait for an interactive approval.
	ApprovalTimeout int `validate:"min=1"`
}

// ----------
// HTTPConfig
// ----------

// HTTPConfig configures the HTML view.
type HTTPConfig struct {
	ListenAddr string `validate:"required"`

	// SessionSecret authenticates the session cookie. A random one is
	// generated at startup when empty, which drops sessions on restart.
	SessionSecret string

	// SessionTTL in seconds after which an idle session is forgotten.
	SessionTTL int `validate:"min=1"`
}

// ----------
// LogConfig
// ----------

// LogConfig configures logging.
type LogConfig struct {
	Enabled bool

	// Level is one of debug, info, warn, error.
	Level string `validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`

	// Format is console or json.
	Format string `validate:"omitempty,oneof=console json"`

	// File enables rotated file output when set.
	File string

	// MaxSize of a log file in megabytes.
	MaxSize int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int

	// CompressRotated gzips rotated files.
	CompressRotated bool

	// DisableStderr silences the console output.
	DisableStderr bool
}

// ----------
// MetricsConfig
// ----------

// MetricsConfig toggles the prometheus endpoint on the HTTP view.
type MetricsConfig struct {
	Enabled bool

	// ListenAddr starts a separate metrics server when set and Enabled.
	ListenAddr string
}

// ----------
// FooterConfig
// ----------

// FooterConfig is the author credit shown at the bottom of the page.
type FooterConfig struct {
	Handle string
}

// Link returns the profile link for the handle.
func (c FooterConfig) Link() string {
	if c.Handle == "" {
		return ""
	}
	return "https://twitter.com/" + c.Handle
}

// ----------
// Config
// ----------

// Config is the complete gallery configuration.
type Config struct {
	// DataDir is the base directory for relative paths.
	DataDir string `validate:"required"`

	// Origin identifies this gallery to the wallet. Trusted grants are keyed by it.
	Origin string `validate:"required"`

	Cluster  ClusterConfig
	Program  ProgramConfig
	Store    StoreConfig
	Database DatabaseConfig
	Wallet   WalletConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Metrics  MetricsConfig
	Footer   FooterConfig
}

// NewDefaultConfig returns a configuration usable for a local, offline gallery.
func NewDefaultConfig() *Config {
	return &Config{
		DataDir: ".arcadia",
		Origin:  "arcadia",
		Cluster: ClusterConfig{
			Name:              ClusterDevnet,
			Commitment:        CommitmentProcessed,
			CallTimeout:       30,
			ConfirmTimeout:    60,
			RequestsPerSecond: 10,
			CircuitBreaker:    true,
		},
		Store: StoreConfig{
			Backend: StoreBackendSQLite,
		},
		Database: DatabaseConfig{
			Path: "arcadia.db",
		},
		Wallet: WalletConfig{
			ApprovalTimeout: 120,
		},
		HTTP: HTTPConfig{
			ListenAddr: "127.0.0.1:4173",
			SessionTTL: 3600,
		},
		Log: LogConfig{
			Enabled:    true,
			Level:      "info",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
		},
		Footer: FooterConfig{
			Handle: "andrewmhenry22",
		},
	}
}

// NewConfigFromJSON parses incoming JSON over the defaults and validates it.
func NewConfigFromJSON(configJSON string) (*Config, error) {
	config := NewDefaultConfig()

	if err := loadConfigFromJSON(configJSON, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigFromFile reads a JSON config file over the defaults. The result
// is not validated so that flags can still override values.
func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()
	jsonConfig, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := loadConfigFromJSON(string(jsonConfig), config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

func loadConfigFromJSON(configJSON string, config *Config) error {
	decoder := json.NewDecoder(strings.NewReader(configJSON))
	decoder.DisallowUnknownFields()
	// override default configuration with values by JSON input
	return decoder.Decode(config)
}

// NewValidator returns a validator for config structs.
func NewValidator() *validator.Validate {
	return validator.New()
}

// Validate checks if Config fields have valid values.
//
// A single error for a struct has the following format:
//
//	Key: 'Config.Store.Backend' Error:Field validation for 'Backend' failed on the 'oneof' tag
func (c *Config) Validate() error {
	validate := NewValidator()

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Cluster.URL == "" && c.Cluster.Name == "" {
		return fmt.Errorf("either Cluster.Name or Cluster.URL must be set")
	}
	if c.Cluster.URL != "" {
		if _, err := url.ParseRequestURI(c.Cluster.URL); err != nil {
			return fmt.Errorf("Cluster.URL '%s' is invalid: %v", c.Cluster.URL, err)
		}
	}

	if c.Store.Backend == StoreBackendChain {
		if err := c.Program.validate(); err != nil {
			return err
		}
	}

	if c.Wallet.Enabled && c.Wallet.KeyFile == "" {
		return fmt.Errorf("Wallet is enabled, but Wallet.KeyFile is empty")
	}

	return nil
}

func (c *ProgramConfig) validate() error {
	if _, err := types.PublicKeyFromBase58(c.ProgramID); err != nil {
		return fmt.Errorf("Program.ProgramID '%s' is invalid: %v", c.ProgramID, err)
	}
	if c.BaseAccountKeyFile == "" && c.BaseAccount == "" {
		return fmt.Errorf("one of Program.BaseAccountKeyFile or Program.BaseAccount must be set")
	}
	if c.BaseAccount != "" {
		if _, err := types.PublicKeyFromBase58(c.BaseAccount); err != nil {
			return fmt.Errorf("Program.BaseAccount '%s' is invalid: %v", c.BaseAccount, err)
		}
	}
	return nil
}

// ResolvePath makes a relative path relative to DataDir.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// Seconds converts a config value in seconds into a duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// String dumps config object as nicely indented JSON
func (c *Config) String() string {
	redacted := *c
	if redacted.Database.Password != "" {
		redacted.Database.Password = "***"
	}
	if redacted.HTTP.SessionSecret != "" {
		redacted.HTTP.SessionSecret = "***"
	}
	data, _ := json.MarshalIndent(redacted, "", "    ") // nolint: gas
	return string(data)
}
