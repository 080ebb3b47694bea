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

package vm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/db47h/regvm/asm"
	"github.com/db47h/regvm/vm"
)

// echoUntilNull reads characters from the input port and copies them
// to the output port until it reads a NUL code point.
const echoUntilNull = `
section text:
loop:
	LD r1, inp
	BEQ r1, r0, done
	SW out, r1
	JMP loop
done:
	HLT
`

func TestEchoUntilNull(t *testing.T) {
	img, err := asm.Assemble(t.Name(), strings.NewReader(echoUntilNull))
	require.NoError(t, err)

	codepoints, err := vm.ReadInput(strings.NewReader("hi"))
	require.NoError(t, err)

	inst, err := vm.New(img, vm.Input(codepoints))
	require.NoError(t, err)

	out, err := inst.Run()
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, vm.WriteOutput(&b, out))
	require.Equal(t, "hi", b.String())
}

func TestInputExhaustionStopsCleanly(t *testing.T) {
	src := `
section text:
loop:
	LD r1, inp
	JMP loop
`
	img, err := asm.Assemble(t.Name(), strings.NewReader(src))
	require.NoError(t, err)

	inst, err := vm.New(img, vm.Input(nil), vm.Limit(10000))
	require.NoError(t, err)

	_, err = inst.Run()
	require.NoError(t, err, "input exhaustion must not surface as an error")
}

func TestOutputNullBecomesNewline(t *testing.T) {
	var b strings.Builder
	err := vm.WriteOutput(&b, []int{'a', 0, 'b'})
	require.NoError(t, err)
	require.Equal(t, "a\nb", b.String())
}
