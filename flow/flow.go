// Package flow implements the layered packet parser and the flow record
// data model: link/VLAN/network/transport/ICMP header extraction, the
// direction-insensitive canonical key, and the per-flow metrics a table
// engine accumulates into. See spec.md §3-§4 (components C2-C7).
package flow

import (
	"sync/atomic"
)

// LayerTag identifies one entry in a Record's LayersPath, in parse order.
// Values are packed 4 bits wide, so 0 is reserved to mean "no layer".
type LayerTag uint8

const (
	_ LayerTag = iota
	ETH_LAYER
	DOT1Q_LAYER
	IPv4_LAYER
	IPv6_LAYER
	ARP_LAYER
	TCP_LAYER
	UDP_LAYER
	SCTP_LAYER
	ICMP4_LAYER
	ICMP6_LAYER
)

// maxLayers bounds LayersPath to N=8 packed 4-bit slots (spec.md §3).
const maxLayers = 8

// LayersPath packs up to maxLayers LayerTag values, newest in the low
// nibble. Appending past the bound is silently discarded.
type LayersPath uint32

// Append records tag as the newest layer, unless the path is already full.
func (p *LayersPath) Append(tag LayerTag) {
	const topShift = (maxLayers - 1) * 4
	if *p&(0xf<<topShift) != 0 {
		return // full: top slot already occupied
	}
	*p = (*p << 4) | LayersPath(tag&0xf)
}

// LayersInfo is a bitset of which layer substructures a Record populated.
// Bits are monotonic: set on first observation, never cleared.
type LayersInfo uint8

const (
	LINK LayersInfo = 1 << iota
	NETWORK
	TRANSPORT
	ICMPInfo
	ARP // dedicated bit; never aliases a LayerTag value
)

// Has reports whether all bits of want are set.
func (li LayersInfo) Has(want LayersInfo) bool {
	return li&want == want
}

// Link is the Ethernet + 802.1Q layer of a flow (C2/C3).
type Link struct {
	MACSrc  [6]byte
	MACDst  [6]byte
	VLANID  uint64 // stacked 12-bit VLAN IDs, newest shifted in at the low bits
	Hash    uint64
	HashSrc uint64 // direction-sensitive; identifies the A->B source MAC
}

// Network is the IPv4/IPv6 layer of a flow (C4).
type Network struct {
	Protocol uint16 // EtherType (ETHERTYPE_IPv4 or ETHERTYPE_IPv6)
	IPSrc    [16]byte
	IPDst    [16]byte
	Hash     uint64
	HashSrc  uint64 // direction-sensitive
}

// Transport is the TCP/UDP/SCTP layer of a flow (C5).
type Transport struct {
	Protocol uint8
	PortSrc  uint16
	PortDst  uint16

	// First-seen timestamps per direction and flag; 0 if never seen.
	// AB refers to the direction of the packet that created the record.
	ABSyn, ABFin, ABRst int64
	BASyn, BAFin, BARst int64

	Hash uint64
}

// ICMP is the ICMPv4/ICMPv6 layer of a flow (C6).
type ICMP struct {
	Kind uint8
	Code uint8
	ID   uint16
	Hash uint64
}

// Metrics are the atomic per-direction packet/byte counters (spec.md §3).
type Metrics struct {
	ABPackets atomic.Int64
	ABBytes   atomic.Int64
	BAPackets atomic.Int64
	BABytes   atomic.Int64
}

// Record is one bidirectional flow, keyed by Key. See spec.md §3.
type Record struct {
	Key        uint64
	LayersPath LayersPath
	LayersInfo LayersInfo

	Link      Link
	Network   Network
	Transport Transport
	ICMP      ICMP

	Metrics Metrics

	Start int64
	Last  atomic.Int64
}

// NewRecord returns an empty Record ready to be filled by Parse.
func NewRecord() *Record {
	return &Record{}
}
