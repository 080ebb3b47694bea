package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/regvm/asm"
)

// ExampleAssemble assembles a short program that echoes a greeting
// character by character and disassembles the result.
func ExampleAssemble() {
	code := `
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

	img, err := asm.Assemble("hello", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	for pc := 0; pc < len(img); {
		fmt.Printf("%d\t", pc)
		next := asm.Disassemble(img, pc, os.Stdout)
		fmt.Println()
		pc = next
	}

	// Output:
	// 0	LD r1, 7
	// 1	LD r2, [r1]
	// 2	BEQ r2, r0, 6
	// 3	SW out, r2
	// 4	ADD r1, r1, 1
	// 5	JMP 1
	// 6	HLT
	// 7	DATA 72
	// 8	DATA 105
	// 9	DATA 0
}
