// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amgset

import "errors"

// ErrIndexOutOfRange is returned by positional accessors when the
// requested position exceeds the set's cardinality.
var ErrIndexOutOfRange = errors.New("amgset: index out of range")

// ErrNotFound is returned by Delete and Position when the requested
// element is not a member of the set.
var ErrNotFound = errors.New("amgset: element not found")
