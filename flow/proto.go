package flow

// EtherType values this classifier dispatches on.
const (
	ETHERTYPE_IPv4  uint16 = 0x0800
	ETHERTYPE_ARP   uint16 = 0x0806
	ETHERTYPE_8021Q uint16 = 0x8100
	ETHERTYPE_IPv6  uint16 = 0x86DD
)

// IP protocol numbers this classifier dispatches on.
const (
	IPPROTO_ICMP   uint8 = 1
	IPPROTO_TCP    uint8 = 6
	IPPROTO_UDP    uint8 = 17
	IPPROTO_SCTP   uint8 = 132
	IPPROTO_ICMPv6 uint8 = 58
)

// ICMPv4 type values.
const (
	ICMP_ECHOREPLY uint8 = 0
	ICMP_ECHO      uint8 = 8
)

// ICMPv6 type values.
const (
	ICMPv6_ECHO_REQUEST uint8 = 128
	ICMPv6_ECHO_REPLY   uint8 = 129
)

// IPv4 fragment field bits (offset 6 from the IPv4 header start).
const (
	ipv4FlagMF        uint16 = 0x2000
	ipv4FragOffsetMax uint16 = 0x1fff
)

// TCP flag bits, at offset 13 from the TCP header start.
const (
	tcpFIN uint8 = 0x01
	tcpSYN uint8 = 0x02
	tcpRST uint8 = 0x04
)
