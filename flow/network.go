package flow

import (
	"encoding/binary"

	"github.com/flowfix/flowfix/frame"
	"github.com/flowfix/flowfix/hash"
)

// netResult carries what parseNetwork learned downstream parsers need:
// the transport protocol to dispatch on, the offset of its header, and
// the canonicalization flags derived from the ordered address comparison.
type netResult struct {
	transProto uint8
	offset     int
	swap       bool // ordered_src >= ordered_dst (spec.md §4.4)
	netEqual   bool // ordered_src == ordered_dst
	ok         bool // false if parsing aborted (fragment or unknown EtherType)
}

// parseNetwork implements C4: IPv4/IPv6 address extraction, fragment
// filtering, and the canonical network hash. Returns ok=false if parsing
// must abort (fragment, or an EtherType this classifier doesn't handle).
func parseNetwork(f *frame.Frame, etherType uint16, off int, rec *Record) (netResult, error) {
	net := &rec.Network
	net.Protocol = etherType

	var hashSrc, hashDst uint64
	var orderedSrc, orderedDst uint64
	var transProto uint8

	switch etherType {
	case ETHERTYPE_IPv4:
		fragField, _ := f.Half(off + 6)
		if fragField&(ipv4FlagMF|ipv4FragOffsetMax) != 0 {
			return netResult{}, ErrFragment
		}

		transProto, _ = f.Byte(off + 9)

		srcWord, _ := f.Word(off + 12)
		dstWord, _ := f.Word(off + 16)
		binary.BigEndian.PutUint32(net.IPSrc[12:16], srcWord)
		binary.BigEndian.PutUint32(net.IPDst[12:16], dstWord)
		hashSrc = hash.Word(hash.New(), srcWord)
		hashDst = hash.Word(hash.New(), dstWord)
		orderedSrc = uint64(srcWord)
		orderedDst = uint64(dstWord)

		verIHL, _ := f.Byte(off)
		off += int(verIHL&0xf) << 2

	case ETHERTYPE_IPv6:
		transProto, _ = f.Byte(off + 6)

		srcAddr, _ := f.Bytes(off+8, 16)
		dstAddr, _ := f.Bytes(off+24, 16)
		copy(net.IPSrc[:], srcAddr)
		copy(net.IPDst[:], dstAddr)
		hashSrc = ipv6Hash(srcAddr)
		hashDst = ipv6Hash(dstAddr)
		orderedSrc = ipv6OrderKey(srcAddr)
		orderedDst = ipv6OrderKey(dstAddr)

		off += 40

	default:
		return netResult{}, ErrUnknownProto
	}

	swap := orderedSrc >= orderedDst
	netEqual := orderedSrc == orderedDst

	hashLo, hashHi := hashSrc, hashDst
	if swap {
		hashLo, hashHi = hashDst, hashSrc
	}
	net.Hash = hash.Finish(hash.Rotl(hashLo, 32) ^ hashHi ^ uint64(etherType) ^ uint64(transProto))
	net.HashSrc = hashSrc

	rec.LayersInfo |= NETWORK
	if etherType == ETHERTYPE_IPv4 {
		rec.LayersPath.Append(IPv4_LAYER)
	} else {
		rec.LayersPath.Append(IPv6_LAYER)
	}

	return netResult{
		transProto: transProto,
		offset:     off,
		swap:       swap,
		netEqual:   netEqual,
		ok:         true,
	}, nil
}

// ipv6Hash folds a 16-byte address into an FNV accumulator as four 32-bit words.
func ipv6Hash(addr []byte) uint64 {
	h := hash.New()
	h = hash.Word(h, binary.BigEndian.Uint32(addr[0:4]))
	h = hash.Word(h, binary.BigEndian.Uint32(addr[4:8]))
	h = hash.Word(h, binary.BigEndian.Uint32(addr[8:12]))
	h = hash.Word(h, binary.BigEndian.Uint32(addr[12:16]))
	return h
}

// ipv6OrderKey derives a deterministic, swap-symmetric comparison key for
// a 16-byte address by XOR-folding its two 64-bit halves. This bounds
// stack usage in the original eBPF classifier; a comparator need only be
// deterministic and symmetric under swap, so it's kept as-is (spec.md §9).
func ipv6OrderKey(addr []byte) uint64 {
	hi := binary.BigEndian.Uint64(addr[0:8])
	lo := binary.BigEndian.Uint64(addr[8:16])
	return hi ^ lo
}
