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

package isa

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// wireRecord is the self-describing, JSON-shaped record persisted for
// each Instruction: opcode name, operand list and, where applicable,
// the addressing mode of the flexible operand.
type wireRecord struct {
	Opcode   string `json:"opcode"`
	Args     []int  `json:"args"`
	AddrMode *int   `json:"addr_type,omitempty"`
}

// Encode renders img in the stable textual form shared between the
// assembler and the simulator: one JSON-shaped record per line,
// enclosed in a list delimiter.
func Encode(img Image) string {
	lines := make([]string, len(img))
	for idx, instr := range img {
		rec := wireRecord{Opcode: string(instr.Opcode), Args: instr.Args}
		if instr.Args == nil {
			rec.Args = []int{}
		}
		if instr.Opcode.HasAddrMode() {
			m := int(instr.AddrMode)
			rec.AddrMode = &m
		}
		b, err := json.Marshal(rec)
		if err != nil {
			// wireRecord only holds primitives; Marshal cannot fail.
			panic(err)
		}
		lines[idx] = string(b)
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Join(lines, ",\n "))
	b.WriteByte(']')
	return b.String()
}

// Decode parses the textual form produced by Encode back into an
// Image, re-tagging each record's opcode field to the enumerated
// Opcode type. It fails on structurally invalid records or on an
// opcode string outside the closed opcode set.
func Decode(data string) (Image, error) {
	var recs []wireRecord
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		return nil, errors.Wrap(err, "malformed image")
	}
	img := make(Image, len(recs))
	for idx, rec := range recs {
		op := Opcode(rec.Opcode)
		if !op.Valid() {
			return nil, errors.Errorf("image record %d: unrecognized opcode %q", idx, rec.Opcode)
		}
		if op.HasAddrMode() && rec.AddrMode == nil {
			return nil, errors.Errorf("image record %d: opcode %s requires addr_type", idx, rec.Opcode)
		}
		if !op.HasAddrMode() && rec.AddrMode != nil {
			return nil, errors.Errorf("image record %d: opcode %s must not carry addr_type", idx, rec.Opcode)
		}
		instr := Instruction{Opcode: op, Args: rec.Args}
		if rec.AddrMode != nil {
			instr.AddrMode = AddrMode(*rec.AddrMode)
		}
		img[idx] = instr
	}
	return img, nil
}
