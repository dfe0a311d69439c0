// Package crypto is the reference provider behind cryptokit. It supplies the
// actual transforms, key pair generation, key agreement, key derivation and
// randomness that the public facade orchestrates.
//
// # Algorithm Suite
//
// The provider implements the following algorithms:
//
//   - AES, DES and DESede (3DES) block ciphers in ECB, CBC, CFB, OFB, CTR and
//     PCBC modes with NoPadding, PKCS5Padding, ISO10126Padding or
//     ZeroBytePadding.
//
//   - RC4 stream cipher (legacy interoperability only).
//
//   - Twofish in CBC mode, used by password-based encryption.
//
//   - RSA with PKCS#1 v1.5, OAEP (SHA-1 or SHA-256) or raw (NoPadding)
//     encryption. Keys are encoded as PKIX (public) and PKCS#8 (private) DER.
//
//   - Finite-field Diffie-Hellman and X25519 key agreement.
//
//   - ML-KEM-768 (NIST FIPS 203) key encapsulation.
//
//   - HKDF-SHA-512 (RFC 5869) for expanding agreed secrets, PBKDF2 for
//     password-derived keys, HMAC-SHA-1/256/512 and SHA digests.
//
// # Security Notes
//
// IVs MUST be unique for each encryption with the same key in CBC, CFB, OFB,
// CTR and PCBC modes. The provider never generates an IV on its own; callers
// pass one in.
//
// Padding schemes other than PKCS5Padding cannot detect a wrong key on
// decryption. ZeroBytePadding strips every trailing zero byte, so plaintexts
// ending in 0x00 do not survive a round trip.
//
// RSA NoPadding is textbook RSA. It exists for interoperability and offers no
// semantic security.
//
// # Randomness
//
// All randomness comes from the reader passed to [NewDefault], falling back
// to crypto/rand. Tests may swap the package-wide reader with
// [SetRandReaderForTesting].
package crypto
