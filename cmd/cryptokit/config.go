package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/vaultsandbox/cryptokit"
)

// configEnv names the environment variable holding the TOML config path.
const configEnv = "CRYPTOKIT_CONFIG"

// fileConfig is the TOML configuration file. Unset fields keep their
// defaults.
type fileConfig struct {
	PBEIterations int    `toml:"pbe_iterations"`
	AgreementInfo string `toml:"agreement_info"`
	MACAlgorithm  string `toml:"mac_algorithm"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{
		PBEIterations: cryptokit.DefaultPBEIterations,
		AgreementInfo: cryptokit.DefaultAgreementInfo,
		MACAlgorithm:  cryptokit.KeyHMACSHA1.String(),
	}
}

// loadEnv loads a dotenv file into the process environment. Variables that
// are already set win. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadFileConfig reads the TOML file at path over the defaults. An empty
// path yields the defaults.
func loadFileConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *fileConfig) validate() error {
	if c.PBEIterations <= 0 {
		return fmt.Errorf("pbe_iterations must be positive, got %d", c.PBEIterations)
	}
	if c.AgreementInfo == "" {
		return errors.New("agreement_info must not be empty")
	}
	kind, err := cryptokit.ParseKeyKind(c.MACAlgorithm)
	if err != nil {
		return fmt.Errorf("mac_algorithm: %w", err)
	}
	if !kind.IsMAC() {
		return fmt.Errorf("mac_algorithm: %s is not an HMAC algorithm", kind)
	}
	return nil
}

// options converts a validated config into Kit options.
func (c *fileConfig) options() []cryptokit.Option {
	opts := []cryptokit.Option{
		cryptokit.WithPBEIterations(c.PBEIterations),
		cryptokit.WithAgreementInfo(c.AgreementInfo),
	}
	if kind, err := cryptokit.ParseKeyKind(c.MACAlgorithm); err == nil {
		opts = append(opts, cryptokit.WithMACAlgorithm(kind))
	}
	return opts
}

// encode writes the config as TOML.
func (c *fileConfig) encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// configPath returns the TOML config path from the environment.
func configPath() string {
	return os.Getenv(configEnv)
}
