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

package vm

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ReadInput converts the characters read from r into code points ready
// to pass to the Input Option. It does not append the trailing NUL
// sentinel; Input does that.
func ReadInput(r io.Reader) ([]int, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	s := b.String()
	codepoints := make([]int, 0, len(s))
	for _, r := range s {
		codepoints = append(codepoints, int(r))
	}
	return codepoints, nil
}

// WriteOutput renders the code points accumulated by Run back to text
// on w, substituting a newline for every NUL code point, matching the
// reference implementation's output post-processing.
func WriteOutput(w io.Writer, output []int) error {
	var b strings.Builder
	for _, cp := range output {
		if cp == 0 {
			b.WriteByte('\n')
			continue
		}
		b.WriteRune(rune(cp))
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write output")
}
