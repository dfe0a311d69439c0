package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/vaultsandbox/cryptokit"
)

type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read error")
}

type errorWriter struct{}

func (e *errorWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write error")
}

// runCommand runs a command with req as its JSON input and decodes the
// output into out.
func runCommand(t *testing.T, command string, req, out any) {
	t.Helper()

	in, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(request) error = %v", err)
	}

	var stdout bytes.Buffer
	cfg := &Config{Stdin: bytes.NewReader(in), Stdout: &stdout}
	if err := run([]string{"cryptokit", command}, cfg); err != nil {
		t.Fatalf("run(%s) error = %v", command, err)
	}
	if out != nil {
		if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
			t.Fatalf("json.Unmarshal(%s output) error = %v", command, err)
		}
	}
}

// runError runs a command expected to fail and returns its error.
func runError(t *testing.T, command, input string) error {
	t.Helper()

	cfg := &Config{Stdin: strings.NewReader(input), Stdout: &bytes.Buffer{}}
	err := run([]string{"cryptokit", command}, cfg)
	if err == nil {
		t.Fatalf("run(%s) should fail for input %s", command, input)
	}
	return err
}

func noConfigFile(t *testing.T) {
	t.Helper()
	t.Setenv(configEnv, "")
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cryptokit.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stdin != os.Stdin {
		t.Error("DefaultConfig().Stdin should be os.Stdin")
	}
	if cfg.Stdout != os.Stdout {
		t.Error("DefaultConfig().Stdout should be os.Stdout")
	}
	if cfg.Stderr != os.Stderr {
		t.Error("DefaultConfig().Stderr should be os.Stderr")
	}
	if cfg.EnvFile != ".env" {
		t.Errorf("DefaultConfig().EnvFile = %q, want .env", cfg.EnvFile)
	}
}

func TestRun_NoArgs(t *testing.T) {
	cfg := &Config{Stdout: &bytes.Buffer{}}
	err := run([]string{"cryptokit"}, cfg)
	if err == nil {
		t.Error("run() should return error with no args")
	}
	if !strings.Contains(err.Error(), "usage") {
		t.Errorf("error should contain 'usage', got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	noConfigFile(t)

	err := runError(t, "unknown-command", "")
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error should contain 'unknown command', got %v", err)
	}
}

func TestRun_KitFactoryError(t *testing.T) {
	noConfigFile(t)

	originalFactory := kitFactory
	defer func() { kitFactory = originalFactory }()

	kitFactory = func(opts ...cryptokit.Option) (*cryptokit.Kit, error) {
		return nil, errors.New("factory error")
	}

	err := runError(t, "keygen", `{"kind":"AES"}`)
	if !strings.Contains(err.Error(), "create kit") {
		t.Errorf("error should contain 'create kit', got %v", err)
	}
}

func TestRun_Specs(t *testing.T) {
	noConfigFile(t)

	var out struct {
		Specs []string `json:"specs"`
	}
	runCommand(t, "specs", nil, &out)

	if len(out.Specs) != len(cryptokit.CipherSpecs()) {
		t.Errorf("specs len = %d, want %d", len(out.Specs), len(cryptokit.CipherSpecs()))
	}
	for _, want := range []string{"AES/CBC/PKCS5Padding", "RC4", "RSA/ECB/PKCS1Padding", "PBEWithSHAAndTwofish-CBC"} {
		found := false
		for _, s := range out.Specs {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Errorf("specs should contain %s", want)
		}
	}
}

func TestRun_ConfigDefaults(t *testing.T) {
	noConfigFile(t)

	var stdout bytes.Buffer
	if err := run([]string{"cryptokit", "config"}, &Config{Stdout: &stdout}); err != nil {
		t.Fatalf("run(config) error = %v", err)
	}

	var got fileConfig
	if _, err := toml.Decode(stdout.String(), &got); err != nil {
		t.Fatalf("toml.Decode() error = %v", err)
	}
	if got != *defaultFileConfig() {
		t.Errorf("config = %+v, want %+v", got, *defaultFileConfig())
	}
}

func TestRun_ConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
pbe_iterations = 2000
mac_algorithm = "HmacSHA256"
`)
	t.Setenv(configEnv, path)

	var stdout bytes.Buffer
	if err := run([]string{"cryptokit", "config"}, &Config{Stdout: &stdout}); err != nil {
		t.Fatalf("run(config) error = %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "pbe_iterations = 2000") {
		t.Errorf("output should contain overridden iterations, got %q", output)
	}
	if !strings.Contains(output, `mac_algorithm = "HmacSHA256"`) {
		t.Errorf("output should contain overridden MAC algorithm, got %q", output)
	}
	if !strings.Contains(output, cryptokit.DefaultAgreementInfo) {
		t.Errorf("output should keep the default agreement info, got %q", output)
	}
}

func TestRun_ConfigFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", "pbe_iterations = ", "decode TOML"},
		{"zero iterations", "pbe_iterations = 0", "pbe_iterations"},
		{"empty agreement info", `agreement_info = ""`, "agreement_info"},
		{"unknown MAC", `mac_algorithm = "HmacMD5"`, "mac_algorithm"},
		{"non-MAC kind", `mac_algorithm = "AES"`, "not an HMAC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(configEnv, writeConfigFile(t, tt.content))

			err := run([]string{"cryptokit", "config"}, &Config{Stdout: &bytes.Buffer{}})
			if err == nil {
				t.Fatal("run() should fail for an invalid config file")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should contain %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRun_ConfigFromEnvFile(t *testing.T) {
	// Registers restoration of the variable before clearing it.
	t.Setenv(configEnv, "")
	os.Unsetenv(configEnv)

	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "cryptokit.toml")
	if err := os.WriteFile(tomlPath, []byte("pbe_iterations = 5000\n"), 0600); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte(configEnv+"="+tomlPath+"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := run([]string{"cryptokit", "config"}, &Config{Stdout: &stdout, EnvFile: envPath}); err != nil {
		t.Fatalf("run(config) error = %v", err)
	}
	if !strings.Contains(stdout.String(), "pbe_iterations = 5000") {
		t.Errorf("config from .env should apply, got %q", stdout.String())
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	if err := loadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("loadEnv() with missing file error = %v, want nil", err)
	}
	if err := loadEnv(""); err != nil {
		t.Errorf("loadEnv(\"\") error = %v, want nil", err)
	}
}

func TestFileConfig_Options(t *testing.T) {
	cfg := defaultFileConfig()
	cfg.MACAlgorithm = "HmacSHA512"

	kit, err := cryptokit.New(cfg.options()...)
	if err != nil {
		t.Fatalf("cryptokit.New() error = %v", err)
	}
	key, err := kit.MAC.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if key.Kind() != cryptokit.KeyHMACSHA512 {
		t.Errorf("MAC key kind = %v, want HmacSHA512", key.Kind())
	}
}

func TestRun_Keygen(t *testing.T) {
	noConfigFile(t)

	tests := []struct {
		req     KeyRequest
		wantLen int
	}{
		{KeyRequest{Kind: "AES"}, 16},
		{KeyRequest{Kind: "aes", Bits: 256}, 32},
		{KeyRequest{Kind: "DES", Bits: 56}, 8},
		{KeyRequest{Kind: "DESede", Bits: 112}, 24},
		{KeyRequest{Kind: "HmacSHA256"}, 32},
	}

	for _, tt := range tests {
		t.Run(tt.req.Kind, func(t *testing.T) {
			var out KeyOutput
			runCommand(t, "keygen", tt.req, &out)

			if len(out.Key) != tt.wantLen {
				t.Errorf("key len = %d, want %d", len(out.Key), tt.wantLen)
			}
		})
	}
}

func TestRun_KeygenErrors(t *testing.T) {
	noConfigFile(t)

	err := runError(t, "keygen", `{"kind":"Blowfish"}`)
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("unknown kind error = %v, want ErrInvalidKeyMaterial", err)
	}

	err = runError(t, "keygen", `{"kind":"AES","bits":100}`)
	if !errors.Is(err, cryptokit.ErrUnsupportedKeySize) {
		t.Errorf("bad size error = %v, want ErrUnsupportedKeySize", err)
	}
}

func TestRun_ReadAndParseErrors(t *testing.T) {
	noConfigFile(t)

	commands := []string{"keygen", "iv", "keypair", "agree", "encrypt", "decrypt", "mac", "verify", "split", "combine"}
	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			cfg := &Config{Stdin: &errorReader{}, Stdout: &bytes.Buffer{}}
			err := run([]string{"cryptokit", command}, cfg)
			if err == nil || !strings.Contains(err.Error(), "read stdin") {
				t.Errorf("error should contain 'read stdin', got %v", err)
			}

			err = runError(t, command, "not json")
			if !strings.Contains(err.Error(), "parse request") {
				t.Errorf("error should contain 'parse request', got %v", err)
			}
		})
	}
}

func TestRun_EncodeError(t *testing.T) {
	noConfigFile(t)

	cfg := &Config{Stdin: strings.NewReader(`{"kind":"AES"}`), Stdout: &errorWriter{}}
	err := run([]string{"cryptokit", "keygen"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "encode output") {
		t.Errorf("error should contain 'encode output', got %v", err)
	}
}

func TestRun_SymmetricRoundTrip(t *testing.T) {
	noConfigFile(t)

	specs := []string{"AES/CBC/PKCS5Padding", "DES/CFB/PKCS5Padding", "3DES/CBC/ISO10126Padding", "AES/ECB/PKCS5Padding", "RC4"}
	for _, name := range specs {
		t.Run(name, func(t *testing.T) {
			spec, err := cryptokit.ParseCipherSpec(name)
			if err != nil {
				t.Fatalf("ParseCipherSpec() error = %v", err)
			}

			var key KeyOutput
			runCommand(t, "keygen", KeyRequest{Kind: spec.KeyKind().String()}, &key)
			var iv IVOutput
			runCommand(t, "iv", IVRequest{Spec: name}, &iv)
			if len(iv.IV) != spec.IVSize() {
				t.Fatalf("iv len = %d, want %d", len(iv.IV), spec.IVSize())
			}

			var ct DataOutput
			runCommand(t, "encrypt", CipherRequest{Spec: name, Key: key.Key, IV: iv.IV, Data: []byte("foo message")}, &ct)
			var pt DataOutput
			runCommand(t, "decrypt", CipherRequest{Spec: name, Key: key.Key, IV: iv.IV, Data: ct.Data}, &pt)

			if string(pt.Data) != "foo message" {
				t.Errorf("decrypted = %q, want %q", pt.Data, "foo message")
			}
		})
	}
}

func TestRun_EncryptErrors(t *testing.T) {
	noConfigFile(t)

	err := runError(t, "encrypt", `{"spec":"AES/GCM/NoPadding","data":"AA=="}`)
	if !errors.Is(err, cryptokit.ErrUnsupportedSpec) {
		t.Errorf("unknown spec error = %v, want ErrUnsupportedSpec", err)
	}

	key := make([]byte, 16)
	req, _ := json.Marshal(CipherRequest{Spec: "AES/CBC/PKCS5Padding", Key: key, Data: []byte("x")})
	err = runError(t, "encrypt", string(req))
	if !errors.Is(err, cryptokit.ErrInvalidIV) {
		t.Errorf("missing IV error = %v, want ErrInvalidIV", err)
	}

	req, _ = json.Marshal(CipherRequest{Spec: "AES/ECB/PKCS5Padding", Key: key[:15], Data: []byte("x")})
	err = runError(t, "decrypt", string(req))
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("short key error = %v, want ErrInvalidKeyMaterial", err)
	}
	if !strings.HasPrefix(err.Error(), "decrypt:") {
		t.Errorf("error should start with 'decrypt:', got %v", err)
	}
}

func TestRun_RSARoundTrip(t *testing.T) {
	noConfigFile(t)

	var kp KeyPairOutput
	runCommand(t, "keypair", KeyPairRequest{Algorithm: "RSA", Bits: 1024}, &kp)
	if kp.Algorithm != "RSA" {
		t.Errorf("algorithm = %q, want RSA", kp.Algorithm)
	}

	var ct DataOutput
	runCommand(t, "encrypt", CipherRequest{Spec: "RSA/ECB/OAEPWithSHA-1AndMGF1Padding", PublicKey: kp.PublicKey, Data: []byte("foo message")}, &ct)
	if len(ct.Data) != 128 {
		t.Errorf("ciphertext len = %d, want 128", len(ct.Data))
	}

	var pt DataOutput
	runCommand(t, "decrypt", CipherRequest{Spec: "RSA/ECB/OAEPWithSHA-1AndMGF1Padding", PrivateKey: kp.PrivateKey, Data: ct.Data}, &pt)
	if string(pt.Data) != "foo message" {
		t.Errorf("decrypted = %q, want %q", pt.Data, "foo message")
	}

	req, _ := json.Marshal(CipherRequest{Spec: "RSA/ECB/PKCS1Padding", PublicKey: []byte("junk"), Data: []byte("x")})
	err := runError(t, "encrypt", string(req))
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("malformed public key error = %v, want ErrInvalidKeyMaterial", err)
	}
}

func TestRun_PasswordRoundTrip(t *testing.T) {
	noConfigFile(t)

	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	req := CipherRequest{Spec: "PBEWithSHAAndTwofish-CBC", Password: "secret", Salt: salt, Data: []byte("foo message")}

	var ct DataOutput
	runCommand(t, "encrypt", req, &ct)

	req.Data = ct.Data
	var pt DataOutput
	runCommand(t, "decrypt", req, &pt)
	if string(pt.Data) != "foo message" {
		t.Errorf("decrypted = %q, want %q", pt.Data, "foo message")
	}
}

func TestRun_AgreeX25519(t *testing.T) {
	noConfigFile(t)

	var alice, bob KeyPairOutput
	runCommand(t, "keypair", KeyPairRequest{Algorithm: "X25519"}, &alice)
	runCommand(t, "keypair", KeyPairRequest{Algorithm: "X25519"}, &bob)

	var k1, k2 KeyOutput
	runCommand(t, "agree", AgreeRequest{Algorithm: "X25519", PublicKey: bob.PublicKey, PrivateKey: alice.PrivateKey, Kind: "AES"}, &k1)
	runCommand(t, "agree", AgreeRequest{Algorithm: "X25519", PublicKey: alice.PublicKey, PrivateKey: bob.PrivateKey, Kind: "AES"}, &k2)

	if !bytes.Equal(k1.Key, k2.Key) {
		t.Error("both parties should derive the same key")
	}
	if len(k1.Key) != 16 {
		t.Errorf("agreed key len = %d, want 16", len(k1.Key))
	}

	req, _ := json.Marshal(AgreeRequest{Algorithm: "X25519", PublicKey: bob.PublicKey, PrivateKey: alice.PrivateKey, Kind: "Blowfish"})
	err := runError(t, "agree", string(req))
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("unknown kind error = %v, want ErrInvalidKeyMaterial", err)
	}
}

func TestRun_AgreeDHSecondParty(t *testing.T) {
	noConfigFile(t)

	var alice, bob KeyPairOutput
	runCommand(t, "keypair", KeyPairRequest{Algorithm: "DiffieHellman", Bits: 1024}, &alice)
	runCommand(t, "keypair", KeyPairRequest{Algorithm: "DiffieHellman", PeerPublicKey: alice.PublicKey}, &bob)

	if bytes.Equal(alice.PublicKey, bob.PublicKey) {
		t.Fatal("second party should get its own key pair")
	}

	var k1, k2 KeyOutput
	runCommand(t, "agree", AgreeRequest{Algorithm: "DiffieHellman", PublicKey: bob.PublicKey, PrivateKey: alice.PrivateKey, Kind: "DESede"}, &k1)
	runCommand(t, "agree", AgreeRequest{Algorithm: "DiffieHellman", PublicKey: alice.PublicKey, PrivateKey: bob.PrivateKey, Kind: "DESede"}, &k2)

	if !bytes.Equal(k1.Key, k2.Key) {
		t.Error("both parties should derive the same key")
	}
	if len(k1.Key) != 24 {
		t.Errorf("agreed key len = %d, want 24", len(k1.Key))
	}
}

func TestRun_KeyPairErrors(t *testing.T) {
	noConfigFile(t)

	err := runError(t, "keypair", `{"algorithm":"RSA","bits":512}`)
	if !errors.Is(err, cryptokit.ErrUnsupportedKeySize) {
		t.Errorf("small RSA error = %v, want ErrUnsupportedKeySize", err)
	}

	err = runError(t, "keypair", `{"algorithm":"DSA"}`)
	if !errors.Is(err, cryptokit.ErrUnsupportedSpec) {
		t.Errorf("unknown algorithm error = %v, want ErrUnsupportedSpec", err)
	}

	err = runError(t, "keypair", `{"algorithm":"DiffieHellman","bits":576}`)
	if !errors.Is(err, cryptokit.ErrUnsupportedKeySize) {
		t.Errorf("DH size error = %v, want ErrUnsupportedKeySize", err)
	}

	err = runError(t, "keypair", `{"algorithm":"X25519","peerPublicKey":"AAAA"}`)
	if !strings.Contains(err.Error(), "peerPublicKey only applies to DiffieHellman") {
		t.Errorf("X25519 peer error = %v", err)
	}

	err = runError(t, "keypair", `{"algorithm":"DiffieHellman","peerPublicKey":"AAAA"}`)
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("malformed peer key error = %v, want ErrInvalidKeyMaterial", err)
	}
}

func TestRun_MACAndVerify(t *testing.T) {
	noConfigFile(t)

	key := bytes.Repeat([]byte{0x0b}, 20)
	req := MACRequest{Algorithm: "HmacSHA1", Key: key, Data: []byte("Hi There")}

	var out MACOutput
	runCommand(t, "mac", req, &out)
	if len(out.MAC) != 20 {
		t.Fatalf("mac len = %d, want 20", len(out.MAC))
	}

	req.MAC = out.MAC
	var verified VerifyOutput
	runCommand(t, "verify", req, &verified)
	if !verified.Valid {
		t.Error("verify should accept the computed MAC")
	}

	req.Data = []byte("Hi there")
	runCommand(t, "verify", req, &verified)
	if verified.Valid {
		t.Error("verify should reject a MAC over different data")
	}

	err := runError(t, "mac", `{"algorithm":"HmacSHA1","key":"AAAA","data":""}`)
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("short key error = %v, want ErrInvalidKeyMaterial", err)
	}
}

func TestRun_SplitCombine(t *testing.T) {
	noConfigFile(t)

	var key KeyOutput
	runCommand(t, "keygen", KeyRequest{Kind: "AES", Bits: 256}, &key)

	var split SharesOutput
	runCommand(t, "split", SplitRequest{Kind: "AES", Key: key.Key, Shares: 3, Threshold: 2}, &split)
	if len(split.Shares) != 3 {
		t.Fatalf("shares len = %d, want 3", len(split.Shares))
	}

	var combined KeyOutput
	runCommand(t, "combine", SharesOutput{Shares: split.Shares[1:]}, &combined)
	if combined.Kind != "AES" {
		t.Errorf("combined kind = %q, want AES", combined.Kind)
	}
	if !bytes.Equal(combined.Key, key.Key) {
		t.Error("combined key should match the original")
	}

	err := runError(t, "split", `{"kind":"AES","key":"AAAAAAAAAAAAAAAAAAAAAA==","shares":2,"threshold":3}`)
	if !strings.Contains(err.Error(), "split") {
		t.Errorf("error should contain 'split', got %v", err)
	}

	err = runError(t, "combine", `{"shares":[]}`)
	if !errors.Is(err, cryptokit.ErrInvalidKeyMaterial) {
		t.Errorf("empty shares error = %v, want ErrInvalidKeyMaterial", err)
	}
}

func TestFatal(t *testing.T) {
	originalExitFunc := exitFunc
	defer func() { exitFunc = originalExitFunc }()

	var exitCode int
	exitFunc = func(code int) {
		exitCode = code
	}

	var buf bytes.Buffer
	fatal(&buf, "error %d: %s", 42, "something went wrong")

	if exitCode != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode)
	}
	if buf.String() != "error 42: something went wrong\n" {
		t.Errorf("output = %q, want %q", buf.String(), "error 42: something went wrong\n")
	}
}
