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

// Package asm assembles the textual assembly language of the register
// machine defined in package isa into a linear isa.Image.
//
// A program has an optional data section followed by a mandatory text
// section:
//
//	section data:
//		msg: "Hi"
//		count: 3
//	section text:
//		LD r1, [r2]
//		SW out, r1
//		HLT
//
// Comments start with ';' and run to the end of the line. String
// literals expand to a comma-separated list of character codes, so
// `msg: "Hi"` is equivalent to `msg: 72, 105`.
//
// Labels are defined by suffixing an identifier with ':' and are used
// unadorned as jump targets or memory operands:
//
//	section text:
//		JMP skip
//		HLT
//	skip:
//		ADD r1, r0, 1
//		HLT
//
// Registers are named r0 through r8; r0 always reads as zero. Operands
// may be a register (r3), a register-indirect reference ([r3]), an
// immediate integer, or a label. LD additionally accepts the source
// "inp" and SW the destination "out", naming the machine's
// memory-mapped input and output ports.
//
// Assembly is a two-pass process: Assemble tokenizes and normalizes
// the source, collects label addresses in a first pass over each
// section, then resolves every label reference to an absolute index
// into the final image (code section first, data section immediately
// after).
package asm
