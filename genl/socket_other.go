// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package genl

import (
	"errors"

	"github.com/sntns/robin/types/logger"
)

// Dial is only implemented on Linux; netlink does not exist elsewhere.
func Dial(logf logger.Logf) (*Conn, error) {
	return nil, &TransportError{Op: "dial", Err: errors.New("netlink is not supported on this platform")}
}
