package flow

import "github.com/flowfix/flowfix/hash"

// buildKey implements C7: composes the per-layer hashes into the single
// 64-bit canonical flow key, rotating each layer into its own slot. A
// layer that was never populated contributes a hash of 0, i.e. nothing.
func buildKey(rec *Record) uint64 {
	key := rec.Link.Hash
	key = hash.Rotl(key, 16) ^ rec.Network.Hash
	key = hash.Rotl(key, 16) ^ rec.Transport.Hash
	key = hash.Rotl(key, 16) ^ rec.ICMP.Hash
	return key
}
