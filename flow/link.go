package flow

import (
	"github.com/flowfix/flowfix/frame"
	"github.com/flowfix/flowfix/hash"
)

// ethHeaderLen is the fixed 14-byte Ethernet II header: dst(6) + src(6) + ethertype(2).
const ethHeaderLen = 14

// parseLink reads the Ethernet header at offset 0 (C2). It computes
// link.HashSrc from the source MAC alone (kept direction-sensitive for
// §4.8's direction test) and link.Hash as a symmetric function of both
// MACs, so that a reply frame (MACs swapped) hashes identically.
func parseLink(f *frame.Frame, rec *Record) {
	link := &rec.Link

	src, _ := f.Bytes6(6) // offsetof(ethhdr, h_source)
	dst, _ := f.Bytes6(0) // offsetof(ethhdr, h_dest)
	link.MACSrc = src
	link.MACDst = dst

	link.HashSrc = macHash(src)
	hashDst := macHash(dst)

	link.Hash = hash.Finish(link.HashSrc ^ hashDst)

	rec.LayersPath.Append(ETH_LAYER)
	rec.LayersInfo |= LINK
}

// macHash folds a MAC address into an FNV accumulator as three 16-bit halves.
func macHash(mac [6]byte) uint64 {
	h := hash.New()
	h = hash.Half(h, uint16(mac[0])<<8|uint16(mac[1]))
	h = hash.Half(h, uint16(mac[2])<<8|uint16(mac[3]))
	h = hash.Half(h, uint16(mac[4])<<8|uint16(mac[5]))
	return h
}

// readEtherType reads a 16-bit EtherType field at off.
func readEtherType(f *frame.Frame, off int) uint16 {
	v, _ := f.Half(off)
	return v
}
