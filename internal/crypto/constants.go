package crypto

const (
	// AgreementContext is the HKDF info prefix used when expanding an agreed
	// or encapsulated secret into a symmetric key.
	AgreementContext = "cryptokit:agree:v1"

	// AESBlockSize is the AES block size and IV size in bytes.
	AESBlockSize = 16
	// DESBlockSize is the DES and DESede block size and IV size in bytes.
	DESBlockSize = 8
	// TwofishBlockSize is the Twofish block size and IV size in bytes.
	TwofishBlockSize = 16

	// DESKeySize is the size of a DES key in bytes (parity bits included).
	DESKeySize = 8
	// DESedeKeySize is the size of a three-key DESede key in bytes.
	DESedeKeySize = 24

	// RC4MinKeySize is the smallest RC4 key accepted, in bytes.
	RC4MinKeySize = 5
	// RC4MaxKeySize is the largest RC4 key accepted, in bytes.
	RC4MaxKeySize = 256

	// RSAMinBits is the smallest RSA modulus the provider generates or accepts.
	// crypto/rsa refuses to generate smaller keys unless GODEBUG=rsa1024min=0.
	RSAMinBits = 1024
	// RSAMaxBits is the largest RSA modulus the provider generates.
	RSAMaxBits = 8192
	// PKCS1Overhead is the PKCS#1 v1.5 encryption padding overhead in bytes.
	PKCS1Overhead = 11

	// DHMinBits is the smallest Diffie-Hellman prime size in bits.
	DHMinBits = 512
	// DHMaxBits is the largest Diffie-Hellman prime size in bits.
	DHMaxBits = 8192
	// DHMinPrivateBits is the shortest Diffie-Hellman private value length
	// accepted in DHParams.L.
	DHMinPrivateBits = 160

	// X25519KeySize is the size of X25519 public and private keys in bytes.
	X25519KeySize = 32

	// MLKEMPublicKeySize is the size of an ML-KEM-768 public key in bytes.
	MLKEMPublicKeySize = 1184
	// MLKEMSecretKeySize is the size of an ML-KEM-768 secret key in bytes.
	MLKEMSecretKeySize = 2400
	// MLKEMCiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	MLKEMCiphertextSize = 1088
	// MLKEMSharedKeySize is the size of the shared secret from ML-KEM-768 in bytes.
	MLKEMSharedKeySize = 32
	// MLKEMSeedSize is the size of the encapsulation seed in bytes.
	MLKEMSeedSize = 32

	// PBESaltSize is the salt size required by password-based encryption.
	PBESaltSize = 8
	// DefaultPBEIterations is the PBKDF2 iteration count used when none is set.
	DefaultPBEIterations = 1000
)
