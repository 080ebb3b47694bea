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
	"regexp"
	"strconv"
	"strings"

	"github.com/db47h/regvm/isa"
)

var (
	reRegister = regexp.MustCompile(`^r[0-9]+$`)
	reIndirect = regexp.MustCompile(`^\[r[0-9]+\]$`)
)

// operand is a single pre-resolution argument cell: either a resolved
// integer (register index, immediate or address) or a pending
// reference to a label that Stage 5 will resolve.
type operand struct {
	label string
	value int
}

func intOperand(v int) operand { return operand{value: v} }

// registerOperand parses a "rN" token into its register index.
func registerOperand(tok string) (operand, bool) {
	if !reRegister.MatchString(tok) {
		return operand{}, false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return operand{}, false
	}
	return intOperand(n), true
}

// parseOperand turns a generic operand token into either an immediate
// integer, a register index, or a pending label reference.
func parseOperand(tok string) operand {
	if op, ok := registerOperand(tok); ok {
		return op
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return intOperand(n)
	}
	return operand{label: tok}
}

// detectAddrMode classifies the "flexible" operand of an LD/SW/
// arithmetic instruction and strips any [..] indirection syntax.
func detectAddrMode(tok string) (isa.AddrMode, string) {
	switch {
	case reRegister.MatchString(tok):
		return isa.RegDirect, tok
	case reIndirect.MatchString(tok):
		return isa.RegIndirect, strings.TrimSuffix(strings.TrimPrefix(tok, "["), "]")
	default:
		return isa.Immediate, tok
	}
}

// rawInstr is a first-pass instruction: operands may still be pending
// label references.
type rawInstr struct {
	opcode   isa.Opcode
	operands []operand
	addrMode isa.AddrMode
}

// firstPassData walks the data section tokens, recording label
// addresses (index into the data array) and collecting integer
// literals.
func firstPassData(toks []token) (data []int, labels map[string]int, errs ErrAsm) {
	labels = make(map[string]int)
	for _, t := range toks {
		if t.isLabel {
			labels[t.text] = len(data)
			continue
		}
		n, err := strconv.Atoi(t.text)
		if err != nil {
			errs = append(errs, fmt.Sprintf("data section: malformed literal %q", t.text))
			continue
		}
		data = append(data, n)
	}
	return data, labels, errs
}

// firstPassText walks the text section tokens, recording label
// addresses (index into the code array) and emitting a rawInstr per
// instruction, per the operand table in the ISA specification.
func firstPassText(toks []token) (code []rawInstr, labels map[string]int, err error) {
	labels = make(map[string]int)
	var c errCollector

	need := func(i, n int) bool {
		if i+n > len(toks) {
			c.add(fmt.Sprintf("truncated instruction at token %d: expected %d operand(s)", i, n))
			return false
		}
		return true
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.isLabel {
			labels[t.text] = len(code)
			i++
			continue
		}

		opName := strings.ToUpper(t.text)
		op := isa.Opcode(opName)
		if !op.Valid() || op == isa.Data {
			return nil, nil, errSyntax(fmt.Sprintf("unknown opcode %q", t.text))
		}

		switch op {
		case isa.Hlt:
			code = append(code, rawInstr{opcode: op})
			i++

		case isa.Jmp:
			if !need(i, 1) {
				return nil, nil, c.err()
			}
			code = append(code, rawInstr{opcode: op, operands: []operand{parseOperand(toks[i+1].text)}})
			i += 2

		case isa.Ld:
			if !need(i, 2) {
				return nil, nil, c.err()
			}
			rd, ok := registerOperand(toks[i+1].text)
			if !ok {
				c.add(fmt.Sprintf("LD: %q is not a register", toks[i+1].text))
			}
			src := toks[i+2].text
			var mode isa.AddrMode
			var arg operand
			if src == "inp" {
				mode = isa.Port
				arg = intOperand(0)
			} else {
				var stripped string
				mode, stripped = detectAddrMode(src)
				if mode == isa.RegDirect {
					mode = isa.RegIndirect
				}
				arg = parseOperand(stripped)
			}
			code = append(code, rawInstr{opcode: op, operands: []operand{rd, arg}, addrMode: mode})
			i += 3

		case isa.Sw:
			if !need(i, 2) {
				return nil, nil, c.err()
			}
			dst := toks[i+1].text
			rs, ok := registerOperand(toks[i+2].text)
			if !ok {
				c.add(fmt.Sprintf("SW: %q is not a register", toks[i+2].text))
			}
			var mode isa.AddrMode
			var arg operand
			if dst == "out" {
				mode = isa.Port
				arg = intOperand(0)
			} else {
				var stripped string
				mode, stripped = detectAddrMode(dst)
				if mode == isa.RegDirect {
					mode = isa.RegIndirect
				}
				arg = parseOperand(stripped)
			}
			code = append(code, rawInstr{opcode: op, operands: []operand{arg, rs}, addrMode: mode})
			i += 3

		case isa.Beq, isa.Bnq, isa.Blt:
			if !need(i, 3) {
				return nil, nil, c.err()
			}
			ra := parseOperand(toks[i+1].text)
			rb := parseOperand(toks[i+2].text)
			tgt := parseOperand(toks[i+3].text)
			code = append(code, rawInstr{opcode: op, operands: []operand{ra, rb, tgt}})
			i += 4

		case isa.Add, isa.Sub, isa.Mul, isa.Div, isa.Rem:
			if !need(i, 3) {
				return nil, nil, c.err()
			}
			rd := parseOperand(toks[i+1].text)
			ra := parseOperand(toks[i+2].text)
			mode, stripped := detectAddrMode(toks[i+3].text)
			x := parseOperand(stripped)
			code = append(code, rawInstr{opcode: op, operands: []operand{rd, ra, x}, addrMode: mode})
			i += 4

		default:
			return nil, nil, errSyntax(fmt.Sprintf("unsupported opcode %q", t.text))
		}

		if c.full() {
			break
		}
	}

	if err := c.err(); err != nil {
		return nil, nil, err
	}
	return code, labels, nil
}

// resolveLabels implements stage 5: every pending label reference is
// replaced by its absolute address (code labels resolve to their code
// index, data labels to len(code)+offset).
func resolveLabels(code []rawInstr, codeLabels, dataLabels map[string]int, codeLen int) error {
	var c errCollector
	for ci := range code {
		for oi, op := range code[ci].operands {
			if op.label == "" {
				continue
			}
			if addr, ok := codeLabels[op.label]; ok {
				code[ci].operands[oi] = intOperand(addr)
				continue
			}
			if off, ok := dataLabels[op.label]; ok {
				code[ci].operands[oi] = intOperand(codeLen + off)
				continue
			}
			c.add(fmt.Sprintf("undefined label %q", op.label))
			if c.full() {
				return c.err()
			}
		}
	}
	return c.err()
}

// layout implements stage 6: the final image is the resolved code
// section followed by the data section, each datum wrapped as a DATA
// word.
func layout(code []rawInstr, data []int) isa.Image {
	img := make(isa.Image, 0, len(code)+len(data))
	for _, ri := range code {
		args := make([]int, len(ri.operands))
		for i, op := range ri.operands {
			args[i] = op.value
		}
		img = append(img, isa.Instruction{Opcode: ri.opcode, Args: args, AddrMode: ri.addrMode})
	}
	for _, v := range data {
		img = append(img, isa.NewDataWord(v))
	}
	return img
}
