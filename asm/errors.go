// This file is part of regvm.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import "strings"

const maxErrors = 10

// ErrAsm collects the syntax and label-resolution errors accumulated
// while assembling a program. No partial image is emitted when ErrAsm
// is non-empty.
type ErrAsm []string

func (e ErrAsm) Error() string {
	return strings.Join(e, "\n")
}

// errSyntax is a convenience constructor for a single-error ErrAsm,
// used where assembly must abort immediately (e.g. a missing section
// marker makes further tokenization meaningless).
func errSyntax(msg string) ErrAsm {
	return ErrAsm{msg}
}

// errCollector accumulates errors up to maxErrors before the caller
// should give up collecting further diagnostics.
type errCollector struct {
	errs ErrAsm
}

func (c *errCollector) add(msg string) {
	c.errs = append(c.errs, msg)
}

func (c *errCollector) full() bool { return len(c.errs) >= maxErrors }

func (c *errCollector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
