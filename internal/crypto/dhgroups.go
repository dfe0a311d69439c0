package crypto

import (
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"
)

// dhGroup is a precomputed safe-prime group with generator 2. privateBits is
// the private value length used for keys generated from a bit count alone.
type dhGroup struct {
	prime       string
	privateBits int
}

// dhGroups maps prime sizes to fixed groups, so key pair generation from a
// bit count never searches for primes. Every prime p satisfies p = 7 mod 8,
// so 2 generates the subgroup of order (p-1)/2.
var dhGroups = map[int]dhGroup{
	// 512-bit safe prime; there is no standard group this small
	512: {
		prime: `
			CDBDECB14F7F4122C2DD759C2F15818521D7E4BC6AB68CE108894A9603007624
			8A2CF7E16B0367C7F86869E8C5138C042670E7CCEAA0BB9FAE65ED471AF3D997`,
		privateBits: 160,
	},
	// RFC 2409 Oakley group 1
	768: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A63A3620FFFFFFFFFFFFFFFF`,
		privateBits: 160,
	},
	// RFC 2409 Oakley group 2
	1024: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF`,
		privateBits: 160,
	},
	// RFC 3526 group 5
	1536: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
			98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
			9ED529077096966D670C354E4ABC9804F1746C08CA237327FFFFFFFFFFFFFFFF`,
		privateBits: 224,
	},
	// RFC 3526 group 14
	2048: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
			98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
			9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
			E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718
			3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF`,
		privateBits: 224,
	},
	// RFC 3526 group 15
	3072: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
			98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
			9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
			E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718
			3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33
			A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
			ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864
			D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2
			08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF`,
		privateBits: 256,
	},
	// RFC 3526 group 16
	4096: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
			98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
			9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
			E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718
			3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33
			A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
			ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864
			D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2
			08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D7
			88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8
			DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2
			233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9
			93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934063199FFFFFFFFFFFFFFFF`,
		privateBits: 304,
	},
	// RFC 3526 group 17
	6144: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
			98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
			9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
			E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718
			3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33
			A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
			ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864
			D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2
			08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D7
			88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8
			DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2
			233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9
			93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C93402849236C3FAB4D27C7026
			C1D4DCB2602646DEC9751E763DBA37BDF8FF9406AD9E530EE5DB382F413001AE
			B06A53ED9027D831179727B0865A8918DA3EDBEBCF9B14ED44CE6CBACED4BB1B
			DB7F1447E6CC254B332051512BD7AF426FB8F401378CD2BF5983CA01C64B92EC
			F032EA15D1721D03F482D7CE6E74FEF6D55E702F46980C82B5A84031900B1C9E
			59E7C97FBEC7E8F323A97A7E36CC88BE0F1D45B7FF585AC54BD407B22B4154AA
			CC8F6D7EBF48E1D814CC5ED20F8037E0A79715EEF29BE32806A1D58BB7C5DA76
			F550AA3D8A1FBFF0EB19CCB1A313D55CDA56C9EC2EF29632387FE8D76E3C0468
			043E8F663F4860EE12BF2D5B0B7474D6E694F91E6DCC4024FFFFFFFFFFFFFFFF`,
		privateBits: 352,
	},
	// RFC 3526 group 18
	8192: {
		prime: `
			FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
			020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
			4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
			EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
			98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
			9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
			E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718
			3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33
			A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
			ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864
			D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2
			08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D7
			88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8
			DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2
			233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9
			93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C93402849236C3FAB4D27C7026
			C1D4DCB2602646DEC9751E763DBA37BDF8FF9406AD9E530EE5DB382F413001AE
			B06A53ED9027D831179727B0865A8918DA3EDBEBCF9B14ED44CE6CBACED4BB1B
			DB7F1447E6CC254B332051512BD7AF426FB8F401378CD2BF5983CA01C64B92EC
			F032EA15D1721D03F482D7CE6E74FEF6D55E702F46980C82B5A84031900B1C9E
			59E7C97FBEC7E8F323A97A7E36CC88BE0F1D45B7FF585AC54BD407B22B4154AA
			CC8F6D7EBF48E1D814CC5ED20F8037E0A79715EEF29BE32806A1D58BB7C5DA76
			F550AA3D8A1FBFF0EB19CCB1A313D55CDA56C9EC2EF29632387FE8D76E3C0468
			043E8F663F4860EE12BF2D5B0B7474D6E694F91E6DBE115974A3926F12FEE5E4
			38777CB6A932DF8CD8BEC4D073B931BA3BC832B68D9DD300741FA7BF8AFC47ED
			2576F6936BA424663AAB639C5AE4F5683423B4742BF1C978238F16CBE39D652D
			E3FDB8BEFC848AD922222E04A4037C0713EB57A81A23F0C73473FC646CEA306B
			4BCBC8862F8385DDFA9D4B7FA2C087E879683303ED5BDD3A062B3CF5B3A278A6
			6D2A13F83F44F82DDF310EE074AB6A364597E899A0255DC164F31CC50846851D
			F9AB48195DED7EA1B1D510BD7EE74D73FAF36BC31ECFA268359046F4EB879F92
			4009438B481C6CD7889A002ED5EE382BC9190DA6FC026E479558E4475677E9AA
			9E3050E2765694DFC81F56E880B96E7160C980DD98EDD3DFFFFFFFFFFFFFFFFF`,
		privateBits: 400,
	},
}

// DHGroupSizes lists the prime sizes DHGroupParams accepts, ascending.
func DHGroupSizes() []int {
	return slices.Sorted(maps.Keys(dhGroups))
}

// DHGroupParams returns the fixed group for a prime of the given size.
func DHGroupParams(bits int) (*DHParams, error) {
	g, ok := dhGroups[bits]
	if !ok {
		return nil, fmt.Errorf("%w: DH %d bits, want one of %v", ErrInvalidKeyPairSize, bits, DHGroupSizes())
	}

	p, ok := new(big.Int).SetString(strings.Join(strings.Fields(g.prime), ""), 16)
	if !ok {
		panic("crypto: malformed DH group prime")
	}
	return &DHParams{P: p, G: big.NewInt(2), L: g.privateBits}, nil
}
