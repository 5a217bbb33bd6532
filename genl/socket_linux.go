// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"golang.org/x/sys/unix"

	"github.com/sntns/robin/types/logger"
)

// Dial opens a NETLINK_GENERIC socket bound to a kernel-assigned port
// id and starts the connection's read loop.
func Dial(logf logger.Logf) (*Conn, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_GENERIC)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		unix.Close(fd)
		return nil, &TransportError{Op: "dial", Err: err}
	}
	sa, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return nil, &TransportError{Op: "dial", Err: err}
	}
	nlsa, ok := sa.(*unix.SockaddrNetlink)
	if !ok {
		unix.Close(fd)
		return nil, &TransportError{Op: "dial", Err: unix.EAFNOSUPPORT}
	}
	return NewConn(&sysSocket{fd: fd}, nlsa.Pid, logf), nil
}

type sysSocket struct {
	fd int
}

func (s *sysSocket) Send(b []byte) error {
	// Destination port 0 is the kernel.
	return unix.Sendto(s.fd, b, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK})
}

// Netlink dump datagrams are bounded by the socket buffer; 64k is
// comfortably above what the kernel emits per read (it splits dumps at
// well under 32k).
const recvBufLen = 64 << 10

func (s *sysSocket) Receive() ([]byte, error) {
	b := make([]byte, recvBufLen)
	for {
		n, _, err := unix.Recvfrom(s.fd, b, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		return b[:n:n], nil
	}
}

func (s *sysSocket) Close() error { return unix.Close(s.fd) }
