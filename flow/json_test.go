package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordJSONRoundTrip(t *testing.T) {
	assert := assert.New(t)

	rec := NewRecord()
	rec.Key = 0xdeadbeefcafebabe
	rec.LayersPath = 0x1234
	rec.LayersInfo = ARP
	rec.Link.MACSrc = [6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	rec.Link.MACDst = [6]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	rec.Link.VLANID = 100
	rec.Network.Protocol = 0x0800
	copy(rec.Network.IPSrc[:4], []byte{10, 0, 0, 1})
	copy(rec.Network.IPDst[:4], []byte{10, 0, 0, 2})
	rec.Transport.Protocol = 6
	rec.Transport.PortSrc = 443
	rec.Transport.PortDst = 51000
	rec.Transport.ABSyn = 111
	rec.Transport.ABFin = 222
	rec.Transport.ABRst = 0
	rec.Transport.BASyn = 333
	rec.Transport.BAFin = 0
	rec.Transport.BARst = 444
	rec.ICMP.Kind = 8
	rec.ICMP.Code = 0
	rec.ICMP.ID = 555
	rec.Metrics.ABPackets.Store(10)
	rec.Metrics.ABBytes.Store(1500)
	rec.Metrics.BAPackets.Store(7)
	rec.Metrics.BABytes.Store(900)
	rec.Start = 1_000_000
	rec.Last.Store(2_000_000)

	buf := rec.ToJSON(nil)

	var got Record
	assert.NoError(got.FromJSON(buf))

	assert.Equal(rec.Key, got.Key)
	assert.Equal(rec.LayersPath, got.LayersPath)
	assert.Equal(rec.LayersInfo, got.LayersInfo)
	assert.Equal(rec.Link.MACSrc, got.Link.MACSrc)
	assert.Equal(rec.Link.MACDst, got.Link.MACDst)
	assert.Equal(rec.Link.VLANID, got.Link.VLANID)
	assert.Equal(rec.Network.Protocol, got.Network.Protocol)
	assert.Equal(rec.Network.IPSrc, got.Network.IPSrc)
	assert.Equal(rec.Network.IPDst, got.Network.IPDst)
	assert.Equal(rec.Transport.Protocol, got.Transport.Protocol)
	assert.Equal(rec.Transport.PortSrc, got.Transport.PortSrc)
	assert.Equal(rec.Transport.PortDst, got.Transport.PortDst)
	assert.Equal(rec.Transport.ABSyn, got.Transport.ABSyn)
	assert.Equal(rec.Transport.ABFin, got.Transport.ABFin)
	assert.Equal(rec.Transport.ABRst, got.Transport.ABRst)
	assert.Equal(rec.Transport.BASyn, got.Transport.BASyn)
	assert.Equal(rec.Transport.BAFin, got.Transport.BAFin)
	assert.Equal(rec.Transport.BARst, got.Transport.BARst)
	assert.Equal(rec.ICMP.Kind, got.ICMP.Kind)
	assert.Equal(rec.ICMP.Code, got.ICMP.Code)
	assert.Equal(rec.ICMP.ID, got.ICMP.ID)
	assert.Equal(rec.Metrics.ABPackets.Load(), got.Metrics.ABPackets.Load())
	assert.Equal(rec.Metrics.ABBytes.Load(), got.Metrics.ABBytes.Load())
	assert.Equal(rec.Metrics.BAPackets.Load(), got.Metrics.BAPackets.Load())
	assert.Equal(rec.Metrics.BABytes.Load(), got.Metrics.BABytes.Load())
	assert.Equal(rec.Start, got.Start)
	assert.Equal(rec.Last.Load(), got.Last.Load())
}

func TestRecordFromJSONEmptyObject(t *testing.T) {
	var got Record
	err := got.FromJSON([]byte(`{}`))
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), got.Key)
}
