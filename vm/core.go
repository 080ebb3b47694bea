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
	"github.com/db47h/regvm/internal/rlog"
	"github.com/db47h/regvm/isa"
)

const registerCount = 9

// Datapath owns the register machine's memory, register file, ALU
// latches and I/O ports. Its methods correspond one to one with the
// latch/calculate/read/write operations a Control Unit sequences across
// ticks; Datapath never advances the instruction pointer itself.
type Datapath struct {
	memory     []isa.Instruction
	inputAddr  int
	outputAddr int

	addrReg int

	regs       [registerCount]int
	regToRead  int
	regToWrite int

	flZero bool
	flNeg  bool

	leftALUArg     int
	rightALUArg    int
	aluOut         int
	argFromDecoder int

	input  []int
	output []int
	log    *rlog.Logger
}

// newDatapath lays memory out as code then data, exactly as produced by
// package asm, and reserves the last two cells for the input and output
// ports.
func newDatapath(img isa.Image, memorySize int, input []int, log *rlog.Logger) *Datapath {
	mem := make([]isa.Instruction, memorySize)
	copy(mem, img)
	dp := &Datapath{
		memory:     mem,
		inputAddr:  memorySize - 2,
		outputAddr: memorySize - 1,
		input:      input,
		log:        log,
	}
	return dp
}

func (dp *Datapath) selectRegWrite(n int) { dp.regToWrite = n }
func (dp *Datapath) selectRegRead(n int)  { dp.regToRead = n }

// setAddr assigns addrReg, wrapped modulo memory size. Every write to
// addrReg, whether from the ALU or directly from a decoded operand,
// goes through here so the invariant addrReg ∈ [0, memory_size) always
// holds.
func (dp *Datapath) setAddr(v int) {
	n := len(dp.memory)
	dp.addrReg = ((v % n) + n) % n
}

// latchAddr loads addrReg from the ALU output, wrapped to memory size.
func (dp *Datapath) latchAddr() {
	dp.setAddr(dp.aluOut)
}

// latchReg writes the selected register from either the ALU output or
// the memory word at addrReg, then re-zeroes r0.
func (dp *Datapath) latchReg(src Sel) {
	switch src {
	case SelALU:
		dp.regs[dp.regToWrite] = dp.aluOut
	case SelMem:
		dp.regs[dp.regToWrite] = dp.memory[dp.addrReg].Args[0]
	}
	dp.regs[0] = 0
}

func (dp *Datapath) latchLeftALUArg(src Sel) {
	switch src {
	case SelArg:
		dp.leftALUArg = dp.argFromDecoder
	case SelReg:
		dp.leftALUArg = dp.regs[dp.regToRead]
	case SelAddr:
		dp.leftALUArg = dp.addrReg
	}
}

func (dp *Datapath) latchRightALUArg(src Sel) {
	switch src {
	case SelArg:
		dp.rightALUArg = dp.argFromDecoder
	case SelReg:
		dp.rightALUArg = dp.regs[dp.regToRead]
	case SelAddr:
		dp.rightALUArg = dp.addrReg
	}
}

// calculate runs the ALU and latches the zero/negative flags from its
// result. Division and remainder use floor semantics, matching Python's
// "//" and "%" operators in the reference implementation.
func (dp *Datapath) calculate(op ALUOp) {
	switch op {
	case ALUAdd:
		dp.aluOut = dp.leftALUArg + dp.rightALUArg
	case ALUSub:
		dp.aluOut = dp.leftALUArg - dp.rightALUArg
	case ALUMul:
		dp.aluOut = dp.leftALUArg * dp.rightALUArg
	case ALUDiv:
		dp.aluOut = floorDiv(dp.leftALUArg, dp.rightALUArg)
	case ALURem:
		dp.aluOut = floorMod(dp.leftALUArg, dp.rightALUArg)
	case ALUMov:
		dp.aluOut = dp.leftALUArg
	case ALUCmp:
		dp.aluOut = dp.leftALUArg - dp.rightALUArg
	}
	dp.flNeg = dp.aluOut < 0
	dp.flZero = dp.aluOut == 0
}

// floorDiv is the Go equivalent of Python's "//" floor division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod implements Python's "%" (result takes the sign of the divisor).
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// read fetches the memory word at addrReg. Reading the input port pops
// one character off the input stream and stores it as a DATA word
// before returning it.
func (dp *Datapath) read() isa.Instruction {
	if dp.addrReg == dp.inputAddr {
		ch := dp.input[0]
		dp.input = dp.input[1:]
		dp.memory[dp.inputAddr] = isa.NewDataWord(ch)
		dp.log.IO("in", ch)
	}
	return dp.memory[dp.addrReg]
}

// write stores the ALU output at addrReg. Writing the output port also
// appends the written value to the output stream.
func (dp *Datapath) write() {
	dp.memory[dp.addrReg] = isa.NewDataWord(dp.aluOut)
	if dp.addrReg == dp.outputAddr {
		dp.output = append(dp.output, dp.aluOut)
		dp.log.IO("out", dp.aluOut)
	}
}

// inputEmpty reports whether the next read from the input port would
// underflow the input stream.
func (dp *Datapath) inputEmpty() bool {
	return len(dp.input) == 0
}
