// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import "context"

// Dispatch resolves args against spec, validates the result and calls the
// handler of the resolved command. A command without a handler is a no-op.
// The handler's error is returned unchanged.
func Dispatch(ctx context.Context, spec *Command, args []string) error {
	p, err := Resolve(spec, args)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Spec.Handler == nil {
		return nil
	}
	return p.Spec.Handler(ctx, p.Arguments, p.Options, p)
}
