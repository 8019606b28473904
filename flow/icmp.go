package flow

import (
	"github.com/flowfix/flowfix/frame"
	"github.com/flowfix/flowfix/hash"
)

// ICMPv4/ICMPv6 header field offsets from the start of the ICMP header.
const (
	icmpTypeOff = 0
	icmpCodeOff = 1
	icmpEchoID  = 4 // identifier field of an echo request/reply
)

// parseICMPv4 implements C6.a: type/code extraction, and for echo
// request/reply, the identifier is mixed in so that a request and its
// reply collide on the same flow key.
func parseICMPv4(f *frame.Frame, off int, rec *Record) {
	icmp := &rec.ICMP

	kind, _ := f.Byte(off + icmpTypeOff)
	code, _ := f.Byte(off + icmpCodeOff)
	icmp.Kind = kind
	icmp.Code = code

	h := hash.Byte(hash.New(), code)
	if kind == ICMP_ECHO || kind == ICMP_ECHOREPLY {
		h = hash.Byte(h, ICMP_ECHO|ICMP_ECHOREPLY)

		id, _ := f.Half(off + icmpEchoID)
		icmp.ID = id
		h = hash.Byte(h, uint8(id))
	}

	icmp.Hash = hash.Finish(h)
	rec.LayersPath.Append(ICMP4_LAYER)
	rec.LayersInfo |= ICMPInfo
}

// parseICMPv6 implements C6.b, the ICMPv6 analogue of parseICMPv4.
func parseICMPv6(f *frame.Frame, off int, rec *Record) {
	icmp := &rec.ICMP

	kind, _ := f.Byte(off + icmpTypeOff)
	code, _ := f.Byte(off + icmpCodeOff)
	icmp.Kind = kind
	icmp.Code = code

	h := hash.Byte(hash.New(), code)
	if kind == ICMPv6_ECHO_REQUEST || kind == ICMPv6_ECHO_REPLY {
		h = hash.Byte(h, ICMPv6_ECHO_REQUEST|ICMPv6_ECHO_REPLY)

		id, _ := f.Half(off + icmpEchoID)
		icmp.ID = id
		h = hash.Byte(h, uint8(id))
	}

	icmp.Hash = hash.Finish(h)
	rec.LayersPath.Append(ICMP6_LAYER)
	rec.LayersInfo |= ICMPInfo
}
