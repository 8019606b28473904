package flow

import (
	"github.com/flowfix/flowfix/frame"
	"github.com/flowfix/flowfix/hash"
)

// tcpFlagsOffset is the byte offset of the flags field from the start of
// the TCP header (after the 4-bit data-offset nibble).
const tcpFlagsOffset = 13

// parseTransport implements C5: TCP/UDP/SCTP port extraction, the
// self-to-self port-based swap override, and TCP flag timestamps for the
// direction that created the record (ab_* here; ba_* is filled by the
// table engine's merge on a later packet, per §4.8).
func parseTransport(f *frame.Frame, off int, protocol uint8, swap, netEqual bool, tm int64, rec *Record) {
	t := &rec.Transport
	t.Protocol = protocol

	portSrc, _ := f.Half(off)
	portDst, _ := f.Half(off + 2)
	t.PortSrc = portSrc
	t.PortDst = portDst

	if netEqual {
		swap = portSrc > portDst
	}

	hashSrc := hash.Half(hash.New(), portSrc)
	hashDst := hash.Half(hash.New(), portDst)

	switch protocol {
	case IPPROTO_SCTP:
		rec.LayersPath.Append(SCTP_LAYER)
	case IPPROTO_UDP:
		rec.LayersPath.Append(UDP_LAYER)
	case IPPROTO_TCP:
		rec.LayersPath.Append(TCP_LAYER)
		flags, _ := f.Byte(off + tcpFlagsOffset)
		if flags&tcpSYN != 0 {
			t.ABSyn = tm
		}
		if flags&tcpFIN != 0 {
			t.ABFin = tm
		}
		if flags&tcpRST != 0 {
			t.ABRst = tm
		}
	}

	hashLo, hashHi := hashSrc, hashDst
	if swap {
		hashLo, hashHi = hashDst, hashSrc
	}
	t.Hash = hash.Finish(hash.Rotl(hashLo, 16) ^ hashHi)

	rec.LayersInfo |= TRANSPORT
}
