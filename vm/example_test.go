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
	"fmt"
	"strings"

	"github.com/db47h/regvm/asm"
	"github.com/db47h/regvm/vm"
)

// Assemble a program that walks a NUL-terminated string out of the data
// section and writes each code point to the output port, then run it to
// completion.
func ExampleInstance_Run_hello() {
	src := `
section data:
	msg: "Hi", 0
section text:
	LD r1, msg
loop:
	LD r2, [r1]
	BEQ r2, r0, done
	SW out, r2
	ADD r1, r1, 1
	JMP loop
done:
	HLT
`
	img, err := asm.Assemble("hello", strings.NewReader(src))
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}
	inst, err := vm.New(img)
	if err != nil {
		fmt.Println("new error:", err)
		return
	}
	out, err := inst.Run()
	if err != nil {
		fmt.Println("run error:", err)
		return
	}
	var b strings.Builder
	vm.WriteOutput(&b, out)
	fmt.Println(b.String())
	// Output:
	// Hi
}

// Arithmetic programs run purely over registers and immediates; no I/O
// is involved, so the result is read back from the final register file.
func ExampleInstance_Run_arithmetic() {
	src := `
section text:
	ADD r1, r0, 6
	ADD r2, r0, 7
	MUL r3, r1, r2
	SUB r4, r3, 2
	DIV r5, r4, 5
	REM r6, r4, 5
	HLT
`
	img, err := asm.Assemble("arithmetic", strings.NewReader(src))
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}
	inst, err := vm.New(img)
	if err != nil {
		fmt.Println("new error:", err)
		return
	}
	if _, err := inst.Run(); err != nil {
		fmt.Println("run error:", err)
		return
	}
	regs := inst.Registers()
	fmt.Printf("r3=%d r4=%d r5=%d r6=%d\n", regs[3], regs[4], regs[5], regs[6])
	// Output:
	// r3=42 r4=40 r5=8 r6=0
}

// BLT is a strict less-than: when the left operand is not strictly
// smaller, the branch falls through to the next instruction instead of
// jumping.
func ExampleInstance_Run_branchNotTaken() {
	src := `
section text:
	ADD r1, r0, 5
	ADD r2, r0, 5
	BLT r1, r2, skip
	ADD r3, r0, 1
skip:
	HLT
`
	img, err := asm.Assemble("branchNotTaken", strings.NewReader(src))
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}
	inst, err := vm.New(img)
	if err != nil {
		fmt.Println("new error:", err)
		return
	}
	if _, err := inst.Run(); err != nil {
		fmt.Println("run error:", err)
		return
	}
	fmt.Println(inst.Registers()[3])
	// Output:
	// 1
}

// A forward label reference resolves in the second assembler pass; the
// jumped-over instruction never executes.
func ExampleInstance_Run_labelForwardReference() {
	src := `
section text:
	JMP skip
	ADD r1, r0, 99
skip:
	ADD r2, r0, 1
	HLT
`
	img, err := asm.Assemble("labelForwardReference", strings.NewReader(src))
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}
	inst, err := vm.New(img)
	if err != nil {
		fmt.Println("new error:", err)
		return
	}
	if _, err := inst.Run(); err != nil {
		fmt.Println("run error:", err)
		return
	}
	regs := inst.Registers()
	fmt.Printf("r1=%d r2=%d\n", regs[1], regs[2])
	// Output:
	// r1=0 r2=1
}

// An unconditional jump loop with no HLT trips the instruction limit
// instead of running forever.
func ExampleInstance_Run_limitExceeded() {
	src := `
section text:
loop:
	JMP loop
`
	img, err := asm.Assemble("limitExceeded", strings.NewReader(src))
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}
	inst, err := vm.New(img, vm.Limit(8))
	if err != nil {
		fmt.Println("new error:", err)
		return
	}
	_, err = inst.Run()
	fmt.Println("stopped:", err != nil)
	// Output:
	// stopped: true
}
