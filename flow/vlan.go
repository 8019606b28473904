package flow

import (
	"github.com/flowfix/flowfix/frame"
	"github.com/flowfix/flowfix/hash"
)

// maxVLANLayers bounds the inline 802.1Q stack walk (spec.md §4.3).
const maxVLANLayers = 5

// vlanTagLen is the 4-byte TCI(2)+EtherType(2) of one inline 802.1Q tag.
const vlanTagLen = 4

// parseVLANs walks up to maxVLANLayers stacked 802.1Q tags starting at
// off (C3), then folds in one more hardware-offloaded tag if the tap
// reported one out-of-band. Returns the offset and EtherType of whatever
// follows the VLAN stack.
//
// The inline tags are mixed into link.Hash via an FNV half-hash of the
// VLAN ID; the hardware-offloaded tag is mixed in via a raw XOR of the
// VLAN ID instead. This asymmetry is a known quirk of the original
// classifier, preserved here for compatibility with existing collectors
// reading link.Hash rather than "fixed".
func parseVLANs(f *frame.Frame, off int, etherType uint16, rec *Record) (int, uint16) {
	link := &rec.Link

	if etherType == ETHERTYPE_8021Q {
		for i := 0; i < maxVLANLayers; i++ {
			tci, _ := f.Half(off)
			inner := readEtherType(f, off+2)
			vlanID := uint64(tci & 0x0fff)

			link.Hash ^= hash.Half(hash.New(), uint16(vlanID))
			link.VLANID = (link.VLANID << 12) | vlanID
			rec.LayersPath.Append(DOT1Q_LAYER)

			off += vlanTagLen
			etherType = inner
			if etherType != ETHERTYPE_8021Q {
				break
			}
		}
	}

	if f.VLANPresent {
		vlanID := uint64(f.VLANTCI & 0x0fff)
		link.Hash ^= vlanID // raw XOR, not FNV-hashed: deliberate asymmetry
		link.VLANID = (link.VLANID << 12) | vlanID
		rec.LayersPath.Append(DOT1Q_LAYER)
	}

	return off, etherType
}
