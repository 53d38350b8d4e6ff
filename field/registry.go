package field

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DefaultName is the registry name of the field used for reconstruction.
const DefaultName = "m521"

// primes is a map of registered prime moduli, keyed by their name.
var primes = make(map[string]*big.Int)

// Register makes a prime modulus available under name.
func Register(name string, p *big.Int) {
	if _, ok := primes[name]; ok {
		panic(fmt.Sprintf("field %q already registered", name))
	}
	if p == nil || p.Cmp(one) <= 0 || !p.ProbablyPrime(20) {
		panic(fmt.Sprintf("field %q: modulus is not prime", name))
	}
	primes[name] = new(big.Int).Set(p)
}

// Get returns a copy of the prime registered as name, or nil.
func Get(name string) *big.Int {
	p, ok := primes[name]
	if !ok {
		return nil
	}
	return new(big.Int).Set(p)
}

// Names lists the registered field names.
func Names() []string {
	names := make([]string, 0, len(primes))
	for name := range primes {
		names = append(names, name)
	}
	return names
}

func init() {
	Register(DefaultName, Mersenne521())
	Register("secp256k1", secp256k1.S256().Params().N)
	Register("p256", elliptic.P256().Params().N)
	Register("p521", elliptic.P521().Params().P)
}
