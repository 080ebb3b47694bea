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
	"fmt"

	"github.com/pkg/errors"

	"github.com/db47h/regvm/isa"
)

// errHalt is returned by decodeAndExecute when the HLT instruction is
// decoded; Run treats it as a clean stop, not a failure.
var errHalt = errors.New("halt")

// ControlUnit fetches and decodes instructions and drives dp one tick
// at a time. It owns the instruction pointer and the tick counter; all
// other mutable state lives in the Datapath.
type ControlUnit struct {
	dp     *Datapath
	ip     int
	opcode isa.Opcode
	tick   int
}

func newControlUnit(dp *Datapath) *ControlUnit {
	return &ControlUnit{dp: dp}
}

func (cu *ControlUnit) bump() { cu.tick++ }

// latchIP either loads the instruction pointer from the decoder-supplied
// argument (a jump/branch target) or advances it by one instruction.
func (cu *ControlUnit) latchIP(src Sel) {
	if src == SelArg {
		cu.ip = cu.dp.argFromDecoder
	} else {
		cu.ip++
	}
}

// decodeAndExecute fetches the instruction at ip, dispatches it to the
// Datapath through the tick schedule for its opcode, and returns
// errHalt once an HLT instruction has been decoded.
func (cu *ControlUnit) decodeAndExecute() error {
	if cu.ip < 0 || cu.ip >= len(cu.dp.memory) {
		return errors.Errorf("instruction pointer %d out of range [0,%d)", cu.ip, len(cu.dp.memory))
	}
	instr := cu.dp.memory[cu.ip]
	cu.opcode = instr.Opcode

	switch cu.opcode {
	case isa.Hlt:
		return errHalt

	case isa.Jmp:
		cu.dp.argFromDecoder = instr.Args[0]
		cu.latchIP(SelArg)
		cu.bump()

	case isa.Ld:
		cu.dp.selectRegWrite(instr.Args[0])
		switch instr.AddrMode {
		case isa.Port:
			cu.dp.setAddr(cu.dp.inputAddr)
		case isa.RegIndirect:
			cu.dp.setAddr(cu.dp.regs[instr.Args[1]])
		default:
			cu.dp.setAddr(instr.Args[1])
		}
		cu.dp.read()
		cu.dp.latchReg(SelMem)
		cu.latchIP(SelInc)
		cu.bump()

	case isa.Sw:
		cu.dp.selectRegRead(instr.Args[1])
		switch instr.AddrMode {
		case isa.Port:
			cu.dp.setAddr(cu.dp.outputAddr)
		case isa.RegIndirect:
			cu.dp.setAddr(cu.dp.regs[instr.Args[0]])
		default:
			cu.dp.setAddr(instr.Args[0])
		}
		cu.bump()
		cu.dp.latchLeftALUArg(SelReg)
		cu.dp.calculate(ALUMov)
		cu.dp.write()
		cu.latchIP(SelInc)
		cu.bump()

	case isa.Beq, isa.Bnq, isa.Blt:
		cu.dp.selectRegRead(instr.Args[0])
		cu.dp.latchLeftALUArg(SelReg)
		cu.bump()
		cu.dp.selectRegRead(instr.Args[1])
		cu.dp.latchRightALUArg(SelReg)
		cu.bump()
		cu.dp.calculate(ALUSub)
		taken := false
		switch cu.opcode {
		case isa.Beq:
			taken = cu.dp.flZero
		case isa.Bnq:
			taken = !cu.dp.flZero
		case isa.Blt:
			taken = cu.dp.flNeg && !cu.dp.flZero
		}
		if taken {
			cu.dp.argFromDecoder = instr.Args[2]
			cu.latchIP(SelArg)
		} else {
			cu.latchIP(SelInc)
		}
		cu.bump()

	case isa.Add, isa.Sub, isa.Mul, isa.Div, isa.Rem:
		cu.dp.selectRegRead(instr.Args[1])
		cu.dp.latchLeftALUArg(SelReg)
		cu.bump()
		switch instr.AddrMode {
		case isa.Immediate:
			cu.dp.argFromDecoder = instr.Args[2]
			cu.dp.latchRightALUArg(SelArg)
		case isa.RegDirect:
			cu.dp.selectRegRead(instr.Args[2])
			cu.dp.latchRightALUArg(SelReg)
		case isa.RegIndirect:
			// not handled by the source toolchain's decoder: rightALUArg
			// keeps whatever it held from the previous arithmetic op.
		}
		cu.bump()
		cu.dp.calculate(arithALUOp(cu.opcode))
		cu.bump()
		cu.dp.selectRegWrite(instr.Args[0])
		cu.dp.latchReg(SelALU)
		cu.latchIP(SelInc)
		cu.bump()

	default:
		return errors.Errorf("unsupported opcode %q at ip=%d", cu.opcode, cu.ip)
	}
	return nil
}

func arithALUOp(op isa.Opcode) ALUOp {
	switch op {
	case isa.Add:
		return ALUAdd
	case isa.Sub:
		return ALUSub
	case isa.Mul:
		return ALUMul
	case isa.Div:
		return ALUDiv
	case isa.Rem:
		return ALURem
	default:
		return ALUMov
	}
}

// State renders a one-line snapshot of the Control Unit and Datapath,
// used for --trace logging and test assertions.
func (cu *ControlUnit) State() string {
	dp := cu.dp
	return fmt.Sprintf(
		"TICK: %d | IP: %d | OPCODE: %s | ADDR: %d | ALU_OUT: %d | "+
			"R1: %d | R2: %d | R3: %d | R4: %d | R5: %d | R6: %d | R7: %d | R8: %d | N: %t | Z: %t",
		cu.tick, cu.ip, cu.opcode, dp.addrReg, dp.aluOut,
		dp.regs[1], dp.regs[2], dp.regs[3], dp.regs[4], dp.regs[5], dp.regs[6], dp.regs[7], dp.regs[8],
		dp.flNeg, dp.flZero,
	)
}
