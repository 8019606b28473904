package flow

import (
	"io"

	"github.com/flowfix/flowfix/binary"
)

var msb = binary.Msb

// WriteTo writes rec as a fixed-width binary record: a denser alternative
// to ToJSON for streaming a table.Engine's drained records to a collector
// over a byte pipe instead of a line-delimited JSON log.
func (rec *Record) WriteTo(w io.Writer) (n int64, err error) {
	write := func(wn int, werr error) {
		n += int64(wn)
		if err == nil {
			err = werr
		}
	}

	write(msb.WriteUint64(w, rec.Key))
	write(msb.WriteUint32(w, uint32(rec.LayersPath)))
	write(msb.WriteUint8(w, uint8(rec.LayersInfo)))

	write(w.Write(rec.Link.MACSrc[:]))
	write(w.Write(rec.Link.MACDst[:]))
	write(msb.WriteUint64(w, rec.Link.VLANID))

	write(msb.WriteUint16(w, rec.Network.Protocol))
	write(w.Write(rec.Network.IPSrc[:]))
	write(w.Write(rec.Network.IPDst[:]))

	write(msb.WriteUint8(w, rec.Transport.Protocol))
	write(msb.WriteUint16(w, rec.Transport.PortSrc))
	write(msb.WriteUint16(w, rec.Transport.PortDst))
	write(msb.WriteUint64(w, uint64(rec.Transport.ABSyn)))
	write(msb.WriteUint64(w, uint64(rec.Transport.ABFin)))
	write(msb.WriteUint64(w, uint64(rec.Transport.ABRst)))
	write(msb.WriteUint64(w, uint64(rec.Transport.BASyn)))
	write(msb.WriteUint64(w, uint64(rec.Transport.BAFin)))
	write(msb.WriteUint64(w, uint64(rec.Transport.BARst)))

	write(msb.WriteUint8(w, rec.ICMP.Kind))
	write(msb.WriteUint8(w, rec.ICMP.Code))
	write(msb.WriteUint16(w, rec.ICMP.ID))

	write(msb.WriteUint64(w, uint64(rec.Metrics.ABPackets.Load())))
	write(msb.WriteUint64(w, uint64(rec.Metrics.ABBytes.Load())))
	write(msb.WriteUint64(w, uint64(rec.Metrics.BAPackets.Load())))
	write(msb.WriteUint64(w, uint64(rec.Metrics.BABytes.Load())))

	write(msb.WriteUint64(w, uint64(rec.Start)))
	write(msb.WriteUint64(w, uint64(rec.Last.Load())))

	return n, err
}
