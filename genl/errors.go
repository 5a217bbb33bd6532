// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrFamilyNotFound is returned by GetFamily when the kernel does not
// know the requested family name, which in practice means the module
// backing it is not loaded.
var ErrFamilyNotFound = errors.New("genl: family not found (kernel module not loaded?)")

// ErrClosed is returned for operations on a closed connection.
var ErrClosed = errors.New("genl: connection closed")

// A KernelError is an explicit NLMSG_ERROR reply from the kernel,
// carrying the raw errno. It unwraps to the syscall.Errno, so
// errors.Is(err, os.ErrPermission) and friends work on it.
type KernelError struct {
	Errno syscall.Errno
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("genl: kernel error: %v (errno %d)", e.Errno.Error(), int(e.Errno))
}

func (e *KernelError) Unwrap() error { return e.Errno }

// A TransportError is a socket-level send or receive failure. The
// connection that produced one is generally unusable afterwards.
type TransportError struct {
	Op  string // "send", "receive", "dial"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("genl: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func kernelErrno(err error) (syscall.Errno, bool) {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Errno, true
	}
	return 0, false
}

// IsPermissionDenied reports whether err is a kernel rejection for
// lack of privilege. Mutating commands require CAP_NET_ADMIN.
func IsPermissionDenied(err error) bool {
	errno, ok := kernelErrno(err)
	return ok && (errno == syscall.EPERM || errno == syscall.EACCES)
}

// IsNoDevice reports whether err is a kernel rejection because the
// named interface does not exist.
func IsNoDevice(err error) bool {
	errno, ok := kernelErrno(err)
	return ok && errno == syscall.ENODEV
}

// IsInvalidArgument reports whether err is a kernel rejection of a
// request attribute or value.
func IsInvalidArgument(err error) bool {
	errno, ok := kernelErrno(err)
	return ok && errno == syscall.EINVAL
}

// IsNotSupported reports whether err is a kernel rejection because the
// running module does not implement the command or attribute.
func IsNotSupported(err error) bool {
	errno, ok := kernelErrno(err)
	return ok && errno == syscall.EOPNOTSUPP
}
