//go:build darwin || freebsd || linux

package fdtest

import (
	"net"
	"os"

	"github.com/database64128/netx-go"
	"golang.org/x/sys/unix"
)

// TCPPair returns both ends of an established TCP connection over loopback:
// a connected client socket and the matching accepted server socket. The
// IPv6 loopback address is tried first, falling back to IPv4 on hosts
// without ::1.
func TCPPair() (client, server int, err error) {
	client, server, err = tcpPair(&net.TCPAddr{IP: net.IPv6loopback})
	if err != nil {
		client, server, err = tcpPair(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	}
	return
}

func tcpPair(laddr *net.TCPAddr) (client, server int, err error) {
	lsa, family, err := unixSockaddrFromTCPAddr(laddr)
	if err != nil {
		return -1, -1, err
	}

	lfd, err := newTCPSocket(family)
	if err != nil {
		return -1, -1, err
	}
	defer unix.Close(lfd)

	if err = unix.Bind(lfd, lsa); err != nil {
		return -1, -1, os.NewSyscallError("bind", err)
	}
	if err = unix.Listen(lfd, 1); err != nil {
		return -1, -1, os.NewSyscallError("listen", err)
	}
	bsa, err := unix.Getsockname(lfd)
	if err != nil {
		return -1, -1, os.NewSyscallError("getsockname", err)
	}

	client, err = newTCPSocket(family)
	if err != nil {
		return -1, -1, err
	}

	// The listener's backlog completes the handshake, so connecting on
	// a blocking socket before accepting does not deadlock.
	if err = unix.Connect(client, bsa); err != nil {
		unix.Close(client)
		return -1, -1, os.NewSyscallError("connect", err)
	}
	server, _, err = unix.Accept(lfd)
	if err != nil {
		unix.Close(client)
		return -1, -1, os.NewSyscallError("accept", err)
	}
	if err = setCloseOnExec(server); err != nil {
		unix.Close(client)
		unix.Close(server)
		return -1, -1, err
	}
	return client, server, nil
}

func newTCPSocket(family int) (int, error) {
	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return -1, os.NewSyscallError("socket", err)
	}
	if err = setCloseOnExec(fd); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

// unixSockaddrFromTCPAddr converts a *net.TCPAddr into a unix.Sockaddr and
// the matching address family, resolving scoped-IPv6 zone names through
// netx.ZoneCache.
func unixSockaddrFromTCPAddr(a *net.TCPAddr) (sa unix.Sockaddr, family int, err error) {
	if ip4 := a.IP.To4(); ip4 != nil {
		return &unix.SockaddrInet4{
			Port: a.Port,
			Addr: [4]byte(ip4),
		}, unix.AF_INET, nil
	}
	if ip6 := a.IP.To16(); ip6 != nil {
		return &unix.SockaddrInet6{
			Port:   a.Port,
			ZoneId: uint32(netx.ZoneCache.Index(a.Zone)),
			Addr:   [16]byte(ip6),
		}, unix.AF_INET6, nil
	}
	return nil, unix.AF_UNSPEC, &net.AddrError{Err: "unsupported address family", Addr: a.IP.String()}
}
