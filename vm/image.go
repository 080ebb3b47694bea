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
	"strings"

	"github.com/db47h/regvm/asm"
	"github.com/db47h/regvm/isa"
)

// Disassemble renders the instruction at pc in the running image using
// the same textual syntax package asm accepts, for use in trace output.
func (i *Instance) Disassemble(pc int) string {
	if pc < 0 || pc >= len(i.dp.memory) {
		return "???"
	}
	var b strings.Builder
	asm.Disassemble(isa.Image(i.dp.memory), pc, &b)
	return b.String()
}

// Memory returns a copy of the simulator's full memory image, code and
// data sections together, for inspection after Run returns.
func (i *Instance) Memory() isa.Image {
	m := make(isa.Image, len(i.dp.memory))
	copy(m, i.dp.memory)
	return m
}
