package types

import (
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/util"
)

// ErrEmptyAddr is returned by [ParseAddr] on empty input.
const ErrEmptyAddr errorutil.Error = "empty address"

// Addr is a request authority: host and optional port.
type Addr struct {
	host    string
	ip      net.IP
	port    uint16
	hasPort bool
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr {
	host = strings.Trim(host, "[]")
	ip := net.ParseIP(host)
	if v := ip.To4(); v != nil {
		ip = v
	}
	return Addr{
		host: host,
		ip:   ip,
	}
}

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port uint16) Addr {
	addr := Host(host)
	addr.port = port
	addr.hasPort = true
	return addr
}

// ParseAddr parses an RFC 3986 "host[:port]" authority into an [Addr].
// IPv6 literals must be enclosed in brackets. Malformed input, a bracketed literal that
// is not an IP address and a port above 65535 fail with [errorutil.ErrParse].
func ParseAddr[T ~string | ~[]byte](s T) (Addr, error) {
	if len(s) == 0 {
		return Addr{}, errtrace.Wrap(ErrEmptyAddr)
	}

	node, err := grammar.ParseHostport(s)
	if err != nil {
		return Addr{}, errtrace.Wrap(errorutil.NewParseError(err))
	}

	host := grammar.MustGetNode(node, "host").String()
	if host[0] == '[' && net.ParseIP(host[1:len(host)-1]) == nil {
		return Addr{}, errtrace.Wrap(errorutil.NewParseError("invalid IP literal %q", host))
	}
	if portNode, ok := node.GetNode("port"); ok {
		port, err := strconv.ParseUint(portNode.String(), 10, 16)
		if err != nil {
			return Addr{}, errtrace.Wrap(errorutil.NewParseError("invalid port %q", portNode.String()))
		}
		return HostPort(host, uint16(port)), nil
	}
	return Host(host), nil
}

// Host returns the hostname portion of the address as provided during construction or parsing.
func (addr Addr) Host() string { return addr.host }

// IP returns the parsed IP representation when the host is an IP literal, otherwise nil.
func (addr Addr) IP() net.IP { return addr.ip }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.hasPort }

// String formats the address as host[:port], adding brackets for IPv6 literals when required.
func (addr Addr) String() string {
	var host string
	if addr.ip == nil {
		host = addr.host
	} else {
		host = addr.ip.String()
	}
	if !addr.hasPort {
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(int(addr.port)))
}

// Equal reports whether the address equals the provided value, accepting Addr and *Addr.
func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	var hostMatch bool
	switch {
	case addr.ip == nil && other.ip == nil:
		hostMatch = util.EqFold(addr.host, other.host)
	case addr.ip != nil && other.ip != nil:
		hostMatch = addr.ip.Equal(other.ip)
	default:
		return false
	}

	return hostMatch && addr.port == other.port && addr.hasPort == other.hasPort
}

// IsValid reports whether the host is an IP address or an RFC 3986 reg-name
// that is also a syntactically valid domain name.
func (addr Addr) IsValid() bool {
	if addr.ip != nil {
		return true
	}
	if !grammar.IsHost(addr.host) {
		return false
	}
	_, ok := dns.IsDomainName(addr.host)
	return ok
}
