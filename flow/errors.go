package flow

import "errors"

var (
	// ErrFragment is informational: the IPv4 packet carried MF or a
	// non-zero fragment offset, so network/transport parsing stopped
	// (spec.md §4.4, §7). The record is still usable, just partial.
	ErrFragment = errors.New("fragmented packet, network parsing aborted")

	// ErrUnknownProto is informational: parsing halted because the
	// EtherType or transport protocol isn't one this classifier
	// understands. Downstream hashes remain 0; the key stays well-defined.
	ErrUnknownProto = errors.New("unknown protocol, parsing halted at this layer")
)
