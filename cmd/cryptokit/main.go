package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vaultsandbox/cryptokit"
)

// Config holds the I/O streams and environment file for a run.
type Config struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	EnvFile string
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		EnvFile: ".env",
	}
}

// exitFunc is replaced in tests.
var exitFunc = os.Exit

// kitFactory is replaced in tests.
var kitFactory = cryptokit.New

const usage = "usage: cryptokit <specs|config|keygen|iv|keypair|agree|encrypt|decrypt|mac|verify|split|combine>"

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return errors.New(usage)
	}

	if err := loadEnv(cfg.EnvFile); err != nil {
		return err
	}
	fc, err := loadFileConfig(configPath())
	if err != nil {
		return err
	}

	switch args[1] {
	case "specs":
		return runSpecs(cfg)
	case "config":
		return fc.encode(cfg.Stdout)
	}

	kit, err := kitFactory(fc.options()...)
	if err != nil {
		return fmt.Errorf("create kit: %w", err)
	}

	switch args[1] {
	case "keygen":
		return runKeygen(kit, cfg)
	case "iv":
		return runIV(kit, cfg)
	case "keypair":
		return runKeyPair(kit, cfg)
	case "agree":
		return runAgree(kit, cfg)
	case "encrypt":
		return runCipher(kit, cfg, true)
	case "decrypt":
		return runCipher(kit, cfg, false)
	case "mac":
		return runMAC(kit, cfg)
	case "verify":
		return runVerify(kit, cfg)
	case "split":
		return runSplit(kit, cfg)
	case "combine":
		return runCombine(kit, cfg)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

// Byte fields travel as standard base64, the encoding/json default.

type KeyRequest struct {
	Kind string `json:"kind"`
	Bits int    `json:"bits"`
}

type KeyOutput struct {
	Kind string `json:"kind"`
	Key  []byte `json:"key"`
}

type IVRequest struct {
	Spec string `json:"spec"`
}

type IVOutput struct {
	IV []byte `json:"iv"`
}

// KeyPairRequest creates a first-party pair from Bits, or, for DH, a
// second-party pair over the group of PeerPublicKey.
type KeyPairRequest struct {
	Algorithm     string `json:"algorithm"`
	Bits          int    `json:"bits,omitempty"`
	PeerPublicKey []byte `json:"peerPublicKey,omitempty"`
}

type KeyPairOutput struct {
	Algorithm  string `json:"algorithm"`
	PublicKey  []byte `json:"publicKey"`
	PrivateKey []byte `json:"privateKey"`
}

type AgreeRequest struct {
	Algorithm  string `json:"algorithm"`
	PublicKey  []byte `json:"publicKey"`
	PrivateKey []byte `json:"privateKey"`
	Kind       string `json:"kind"`
}

// CipherRequest drives encrypt and decrypt. The cipher family decides which
// key fields apply. Block and stream ciphers use Key and IV, RSA uses
// PublicKey or PrivateKey, PBE uses Password and Salt.
type CipherRequest struct {
	Spec       string `json:"spec"`
	Data       []byte `json:"data"`
	Key        []byte `json:"key,omitempty"`
	IV         []byte `json:"iv,omitempty"`
	PublicKey  []byte `json:"publicKey,omitempty"`
	PrivateKey []byte `json:"privateKey,omitempty"`
	Password   string `json:"password,omitempty"`
	Salt       []byte `json:"salt,omitempty"`
}

type DataOutput struct {
	Data []byte `json:"data"`
}

type MACRequest struct {
	Algorithm string `json:"algorithm"`
	Key       []byte `json:"key"`
	Data      []byte `json:"data"`
	MAC       []byte `json:"mac,omitempty"`
}

type MACOutput struct {
	MAC []byte `json:"mac"`
}

type VerifyOutput struct {
	Valid bool `json:"valid"`
}

type SplitRequest struct {
	Kind      string `json:"kind"`
	Key       []byte `json:"key"`
	Shares    int    `json:"shares"`
	Threshold int    `json:"threshold"`
}

type SharesOutput struct {
	Shares [][]byte `json:"shares"`
}

func runSpecs(cfg *Config) error {
	specs := cryptokit.CipherSpecs()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.String())
	}
	return writeJSON(cfg, struct {
		Specs []string `json:"specs"`
	}{Specs: names})
}

func runKeygen(kit *cryptokit.Kit, cfg *Config) error {
	var req KeyRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	kind, err := cryptokit.ParseKeyKind(req.Kind)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}
	bits := req.Bits
	if bits == 0 {
		bits = kind.DefaultSize() * 8
	}

	key, err := kit.Keys.GenerateSymmetricKey(kind, bits)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}
	return writeJSON(cfg, KeyOutput{Kind: key.Kind().String(), Key: key.Bytes()})
}

func runIV(kit *cryptokit.Kit, cfg *Config) error {
	var req IVRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	spec, err := cryptokit.ParseCipherSpec(req.Spec)
	if err != nil {
		return fmt.Errorf("iv: %w", err)
	}
	iv, err := kit.Keys.GenerateIV(spec)
	if err != nil {
		return fmt.Errorf("iv: %w", err)
	}
	return writeJSON(cfg, IVOutput{IV: iv})
}

func runKeyPair(kit *cryptokit.Kit, cfg *Config) error {
	var req KeyPairRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	kp, err := generateKeyPair(kit, req)
	if err != nil {
		return fmt.Errorf("keypair: %w", err)
	}
	return writeJSON(cfg, KeyPairOutput{
		Algorithm:  req.Algorithm,
		PublicKey:  kp.Public.Bytes(),
		PrivateKey: kp.Private.Bytes(),
	})
}

func generateKeyPair(kit *cryptokit.Kit, req KeyPairRequest) (*cryptokit.KeyPair, error) {
	alg := cryptokit.KeyPairAlgorithm(req.Algorithm)
	if len(req.PeerPublicKey) == 0 {
		return kit.Keys.GenerateKeyPair(alg, req.Bits)
	}

	if alg != cryptokit.KeyPairDH {
		return nil, fmt.Errorf("peerPublicKey only applies to %s", cryptokit.KeyPairDH)
	}
	peer, err := cryptokit.NewPublicKey(alg, req.PeerPublicKey)
	if err != nil {
		return nil, err
	}
	params, err := peer.DHParams()
	if err != nil {
		return nil, err
	}
	return kit.Keys.GenerateDHKeyPair(params)
}

func runAgree(kit *cryptokit.Kit, cfg *Config) error {
	var req AgreeRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	alg := cryptokit.KeyPairAlgorithm(req.Algorithm)
	pub, err := cryptokit.NewPublicKey(alg, req.PublicKey)
	if err != nil {
		return fmt.Errorf("agree: %w", err)
	}
	priv, err := cryptokit.NewPrivateKey(alg, req.PrivateKey)
	if err != nil {
		return fmt.Errorf("agree: %w", err)
	}
	kind, err := cryptokit.ParseKeyKind(req.Kind)
	if err != nil {
		return fmt.Errorf("agree: %w", err)
	}

	key, err := kit.Keys.DeriveAgreedKey(pub, priv, kind)
	if err != nil {
		return fmt.Errorf("agree: %w", err)
	}
	return writeJSON(cfg, KeyOutput{Kind: key.Kind().String(), Key: key.Bytes()})
}

func runCipher(kit *cryptokit.Kit, cfg *Config, encrypt bool) error {
	op := "decrypt"
	if encrypt {
		op = "encrypt"
	}

	var req CipherRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}
	spec, err := cryptokit.ParseCipherSpec(req.Spec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	out, err := transform(kit, &req, spec, encrypt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return writeJSON(cfg, DataOutput{Data: out})
}

func transform(kit *cryptokit.Kit, req *CipherRequest, spec cryptokit.CipherSpec, encrypt bool) ([]byte, error) {
	switch spec.Family() {
	case cryptokit.FamilyRSA:
		if encrypt {
			pub, err := cryptokit.NewPublicKey(cryptokit.KeyPairRSA, req.PublicKey)
			if err != nil {
				return nil, err
			}
			return kit.Asymmetric.Encrypt(req.Data, pub, spec)
		}
		priv, err := cryptokit.NewPrivateKey(cryptokit.KeyPairRSA, req.PrivateKey)
		if err != nil {
			return nil, err
		}
		return kit.Asymmetric.Decrypt(req.Data, priv, spec)

	case cryptokit.FamilyPBE:
		if encrypt {
			return kit.Password.Encrypt(req.Data, []byte(req.Password), req.Salt, spec)
		}
		return kit.Password.Decrypt(req.Data, []byte(req.Password), req.Salt, spec)
	}

	key, err := cryptokit.NewKey(spec.KeyKind(), req.Key)
	if err != nil {
		return nil, err
	}
	if encrypt {
		return kit.Symmetric.Encrypt(req.Data, key, spec, req.IV)
	}
	return kit.Symmetric.Decrypt(req.Data, key, spec, req.IV)
}

func macKey(req *MACRequest) (cryptokit.Key, error) {
	kind, err := cryptokit.ParseKeyKind(req.Algorithm)
	if err != nil {
		return cryptokit.Key{}, err
	}
	return cryptokit.NewKey(kind, req.Key)
}

func runMAC(kit *cryptokit.Kit, cfg *Config) error {
	var req MACRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	key, err := macKey(&req)
	if err != nil {
		return fmt.Errorf("mac: %w", err)
	}
	tag, err := kit.MAC.ComputeMAC(req.Data, key)
	if err != nil {
		return fmt.Errorf("mac: %w", err)
	}
	return writeJSON(cfg, MACOutput{MAC: tag})
}

func runVerify(kit *cryptokit.Kit, cfg *Config) error {
	var req MACRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	key, err := macKey(&req)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	ok, err := kit.MAC.Verify(req.MAC, req.Data, key)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return writeJSON(cfg, VerifyOutput{Valid: ok})
}

func runSplit(kit *cryptokit.Kit, cfg *Config) error {
	var req SplitRequest
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	kind, err := cryptokit.ParseKeyKind(req.Kind)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	key, err := cryptokit.NewKey(kind, req.Key)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	shares, err := kit.Keys.SplitKey(key, req.Shares, req.Threshold)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	return writeJSON(cfg, SharesOutput{Shares: shares})
}

func runCombine(kit *cryptokit.Kit, cfg *Config) error {
	var req SharesOutput
	if err := readJSON(cfg, &req); err != nil {
		return err
	}

	key, err := kit.Keys.CombineKey(req.Shares)
	if err != nil {
		return fmt.Errorf("combine: %w", err)
	}
	return writeJSON(cfg, KeyOutput{Kind: key.Kind().String(), Key: key.Bytes()})
}

func readJSON(cfg *Config, v any) error {
	data, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	return nil
}

func writeJSON(cfg *Config, v any) error {
	if err := json.NewEncoder(cfg.Stdout).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	exitFunc(1)
}
