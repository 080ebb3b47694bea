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

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/db47h/regvm/isa"
)

// Assemble reads a complete source program from r and runs it through
// the six-stage pipeline: normalization, string-literal expansion,
// sectioning/tokenization, first-pass label collection and raw
// instruction emission, label resolution, and final memory layout.
//
// name is used only to annotate errors; pass the source file name when
// r reads from a file.
func Assemble(name string, r io.Reader) (isa.Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read source", name)
	}

	text := expandStringLiterals(normalize(string(raw)))
	dataToks, textToks, err := sectionize(text)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}

	data, dataLabels, dataErrs := firstPassData(dataToks)
	code, codeLabels, err := firstPassText(textToks)
	switch {
	case len(dataErrs) > 0 && err != nil:
		return nil, errors.Wrapf(append(dataErrs, err.Error()), "%s", name)
	case len(dataErrs) > 0:
		return nil, errors.Wrapf(dataErrs, "%s", name)
	case err != nil:
		return nil, errors.Wrapf(err, "%s", name)
	}

	if err := resolveLabels(code, codeLabels, dataLabels, len(code)); err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}

	return layout(code, data), nil
}

// Disassemble writes a single instruction at position pc to w in the
// textual assembly syntax accepted by Assemble, and returns the index
// of the next instruction.
func Disassemble(img isa.Image, pc int, w io.Writer) (next int) {
	instr := img[pc]

	reg := func(n int) string { return "r" + strconv.Itoa(n) }
	flex := func(n int) string {
		switch instr.AddrMode {
		case isa.RegDirect:
			return reg(n)
		case isa.RegIndirect:
			return "[" + reg(n) + "]"
		case isa.Port:
			if instr.Opcode == isa.Ld {
				return "inp"
			}
			return "out"
		default:
			return strconv.Itoa(n)
		}
	}

	switch instr.Opcode {
	case isa.Data:
		io.WriteString(w, "DATA ")
		if len(instr.Args) > 0 {
			io.WriteString(w, strconv.Itoa(instr.Args[0]))
		}
	case isa.Hlt:
		io.WriteString(w, "HLT")
	case isa.Jmp:
		fmt.Fprintf(w, "JMP %d", instr.Args[0])
	case isa.Ld:
		fmt.Fprintf(w, "LD %s, %s", reg(instr.Args[0]), flex(instr.Args[1]))
	case isa.Sw:
		fmt.Fprintf(w, "SW %s, %s", flex(instr.Args[0]), reg(instr.Args[1]))
	case isa.Beq, isa.Bnq, isa.Blt:
		fmt.Fprintf(w, "%s %s, %s, %d", instr.Opcode, reg(instr.Args[0]), reg(instr.Args[1]), instr.Args[2])
	case isa.Add, isa.Sub, isa.Mul, isa.Div, isa.Rem:
		fmt.Fprintf(w, "%s %s, %s, %s", instr.Opcode, reg(instr.Args[0]), reg(instr.Args[1]), flex(instr.Args[2]))
	default:
		io.WriteString(w, string(instr.Opcode))
	}
	return pc + 1
}
