// Package cryptokit is a facade over common cryptographic operations:
// symmetric and RSA encryption, password-based encryption, HMAC, and key
// generation and agreement.
//
// Algorithms are chosen with a CipherSpec, a validated (family, mode,
// padding) value such as AESCBCPKCS5 or RSAECBOAEPSHA1. Illegal combinations
// cannot be constructed, and every operation checks key kinds and IV sizes
// before the provider is called.
//
// Basic usage:
//
//	kit, err := cryptokit.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	key, err := kit.Keys.GenerateAESKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	iv, err := kit.Keys.GenerateIV(cryptokit.AESCBCPKCS5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ct, err := kit.Symmetric.Encrypt([]byte("foo message"), key, cryptokit.AESCBCPKCS5, iv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pt, err := kit.Symmetric.Decrypt(ct, key, cryptokit.AESCBCPKCS5, iv)
//
// # Keys and IVs
//
// Keys, IVs, salts and key pairs are generated on demand and held by the
// caller; nothing is cached. IVs must never be reused under the same key in
// CBC, CFB, OFB, CTR or PCBC mode, and they must be stored or sent with the
// ciphertext because decryption is impossible without them.
//
// # Errors
//
// Every error returned by this package implements CryptoKitError and matches
// one of the sentinel errors with errors.Is. Failures are never retried.
// Error messages never contain key material or plaintext.
package cryptokit
