// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package auth

// Ticket is the outcome of an authentication attempt.
//
// A nil Identity is a valid result meaning "not authenticated". A nil
// Properties means the return state could not be recovered at all.
type Ticket struct {
	Identity   *Identity
	Properties *Properties
}

// Authenticated reports whether the ticket carries an identity.
func (t *Ticket) Authenticated() bool {
	return t != nil && t.Identity != nil
}
