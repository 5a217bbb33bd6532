// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import "fmt"

// MissingAttributeError reports a kernel record that lacks an
// attribute required to build its model type.
type MissingAttributeError struct {
	Attr uint16
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("batadv: missing attribute %d", e.Attr)
}

// InvalidAttributeValueError reports an attribute that is present but
// carries a value the model cannot accept, such as an address payload
// of the wrong length.
type InvalidAttributeValueError struct {
	Attr   uint16
	Reason string
}

func (e *InvalidAttributeValueError) Error() string {
	return fmt.Sprintf("batadv: invalid value for attribute %d: %s", e.Attr, e.Reason)
}

// RecordError wraps a per-record build failure in a dump, identifying
// the record by its position in the kernel's reply.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("batadv: record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
