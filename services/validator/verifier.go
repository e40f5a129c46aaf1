package validator

import (
	"crypto/subtle"
	"encoding/binary"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/cespare/xxhash"
	"github.com/jellydator/ttlcache/v3"
)

// Verifier is the signature oracle: it reports whether signature authorizes message under pubKey.
type Verifier interface {
	Verify(pubKey, message, signature []byte) bool
}

// VerifierFunc adapts a plain function to the Verifier interface.
type VerifierFunc func(pubKey, message, signature []byte) bool

func (f VerifierFunc) Verify(pubKey, message, signature []byte) bool {
	return f(pubKey, message, signature)
}

// ECDSAVerifier checks DER encoded secp256k1 signatures over the double sha256 of the message.
// Malformed keys or signatures verify as false.
type ECDSAVerifier struct{}

func (ECDSAVerifier) Verify(pubKey, message, signature []byte) bool {
	if len(pubKey) == 0 || len(signature) == 0 {
		return false
	}

	pub, err := bec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}

	sig, err := bec.ParseDERSignature(signature)
	if err != nil {
		return false
	}

	return sig.Verify(chainhash.DoubleHashB(message), pub)
}

type sigVerdict struct {
	digest chainhash.Hash
	valid  bool
}

// CachingVerifier memoizes verdicts of the wrapped verifier. Entries are keyed by an xxhash of the
// tuple and confirmed against its sha256 so a 64 bit collision can never return a foreign verdict.
type CachingVerifier struct {
	next  Verifier
	cache *ttlcache.Cache[uint64, sigVerdict]
}

func NewCachingVerifier(next Verifier, capacity uint64, ttl time.Duration) *CachingVerifier {
	initPrometheusMetrics()

	return &CachingVerifier{
		next: next,
		cache: ttlcache.New[uint64, sigVerdict](
			ttlcache.WithTTL[uint64, sigVerdict](ttl),
			ttlcache.WithCapacity[uint64, sigVerdict](capacity),
			ttlcache.WithDisableTouchOnHit[uint64, sigVerdict](),
		),
	}
}

func (c *CachingVerifier) Verify(pubKey, message, signature []byte) bool {
	key, digest := verdictKey(pubKey, message, signature)

	if item := c.cache.Get(key); item != nil {
		if verdict := item.Value(); subtle.ConstantTimeCompare(verdict.digest[:], digest[:]) == 1 {
			prometheusValidatorSigCacheHits.Inc()
			return verdict.valid
		}
	}

	prometheusValidatorSigCacheMisses.Inc()

	valid := c.next.Verify(pubKey, message, signature)
	c.cache.Set(key, sigVerdict{digest: digest, valid: valid}, ttlcache.DefaultTTL)

	return valid
}

// Len returns the number of cached verdicts.
func (c *CachingVerifier) Len() int {
	return c.cache.Len()
}

func verdictKey(pubKey, message, signature []byte) (uint64, chainhash.Hash) {
	buf := make([]byte, 0, 12+len(pubKey)+len(message)+len(signature))

	for _, part := range [][]byte{pubKey, message, signature} {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(part))) //nolint:gosec // lengths are bounded by memory
		buf = append(buf, part...)
	}

	h := xxhash.New()
	_, _ = h.Write(buf)

	return h.Sum64(), chainhash.HashH(buf)
}
