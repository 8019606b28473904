// Parse orchestrates C2 through C7 in one pass over a captured frame.
package flow

import (
	"github.com/flowfix/flowfix/frame"
	"github.com/flowfix/flowfix/hash"
)

// ethProtoOffset is the byte offset of the EtherType field in a plain
// (untagged) Ethernet II header.
const ethProtoOffset = 12

// Parse reads f into a fresh Record and returns it with Key populated.
// tm is the packet's receive timestamp (nanoseconds), used to seed the
// TCP flag timestamps of whichever direction this packet belongs to.
//
// A non-nil error (ErrFragment or ErrUnknownProto) is informational: the
// returned Record is still valid and keyed, just missing the layers that
// couldn't be parsed (spec.md §7). Callers may ignore it.
func Parse(f *frame.Frame, tm int64) (*Record, error) {
	rec := NewRecord()

	parseLink(f, rec)

	etherType := readEtherType(f, ethProtoOffset)
	off := ethHeaderLen

	off, etherType = parseVLANs(f, off, etherType, rec)

	var err error
	switch etherType {
	case ETHERTYPE_ARP:
		// ARP gets its own path tag and a dedicated info bit, mixing its
		// EtherType into the running link hash like any other dispatch.
		rec.Link.Hash = hash.Half(rec.Link.Hash, etherType)
		rec.LayersPath.Append(ARP_LAYER)
		rec.LayersInfo |= ARP

	case ETHERTYPE_IPv4, ETHERTYPE_IPv6:
		var res netResult
		res, err = parseNetwork(f, etherType, off, rec)
		if err == nil {
			switch res.transProto {
			case IPPROTO_TCP, IPPROTO_UDP, IPPROTO_SCTP:
				parseTransport(f, res.offset, res.transProto, res.swap, res.netEqual, tm, rec)
			case IPPROTO_ICMP:
				parseICMPv4(f, res.offset, rec)
			case IPPROTO_ICMPv6:
				parseICMPv6(f, res.offset, rec)
			}
		}

	default:
		err = ErrUnknownProto
	}

	rec.Key = buildKey(rec)
	return rec, err
}
