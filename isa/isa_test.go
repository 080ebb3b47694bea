package isa_test

import (
	"testing"

	"github.com/db47h/regvm/isa"
)

func TestOpcodeCategory(t *testing.T) {
	cases := []struct {
		op   isa.Opcode
		want isa.Category
	}{
		{isa.Data, isa.CategoryData},
		{isa.Ld, isa.CategoryMemory},
		{isa.Sw, isa.CategoryMemory},
		{isa.Jmp, isa.CategoryBranch},
		{isa.Beq, isa.CategoryBranch},
		{isa.Bnq, isa.CategoryBranch},
		{isa.Blt, isa.CategoryBranch},
		{isa.Add, isa.CategoryArithmetic},
		{isa.Sub, isa.CategoryArithmetic},
		{isa.Mul, isa.CategoryArithmetic},
		{isa.Div, isa.CategoryArithmetic},
		{isa.Rem, isa.CategoryArithmetic},
		{isa.Hlt, isa.CategoryHalt},
	}
	for _, c := range cases {
		got, ok := c.op.Category()
		if !ok {
			t.Errorf("%s: not a known opcode", c.op)
			continue
		}
		if got != c.want {
			t.Errorf("%s.Category() = %s, want %s", c.op, got, c.want)
		}
	}
}

func TestHasAddrMode(t *testing.T) {
	with := []isa.Opcode{isa.Ld, isa.Sw, isa.Add, isa.Sub, isa.Mul, isa.Div, isa.Rem}
	without := []isa.Opcode{isa.Data, isa.Jmp, isa.Beq, isa.Bnq, isa.Blt, isa.Hlt}
	for _, op := range with {
		if !op.HasAddrMode() {
			t.Errorf("%s: expected HasAddrMode() == true", op)
		}
	}
	for _, op := range without {
		if op.HasAddrMode() {
			t.Errorf("%s: expected HasAddrMode() == false", op)
		}
	}
}

func TestUnknownOpcodeInvalid(t *testing.T) {
	if isa.Opcode("NOPE").Valid() {
		t.Error("expected unknown opcode to be invalid")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := isa.Image{
		{Opcode: isa.Ld, Args: []int{1, 2}, AddrMode: isa.RegIndirect},
		{Opcode: isa.Add, Args: []int{1, 1, 5}, AddrMode: isa.Immediate},
		{Opcode: isa.Jmp, Args: []int{0}},
		{Opcode: isa.Hlt, Args: []int{}},
		isa.NewDataWord(72),
	}
	encoded := isa.Encode(img)
	decoded, err := isa.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(img) {
		t.Fatalf("decoded %d instructions, want %d", len(decoded), len(img))
	}
	for i := range img {
		a, b := img[i], decoded[i]
		if a.Opcode != b.Opcode || len(a.Args) != len(b.Args) {
			t.Errorf("record %d: got %+v, want %+v", i, b, a)
			continue
		}
		for j := range a.Args {
			if a.Args[j] != b.Args[j] {
				t.Errorf("record %d arg %d: got %d, want %d", i, j, b.Args[j], a.Args[j])
			}
		}
		if a.Opcode.HasAddrMode() && a.AddrMode != b.AddrMode {
			t.Errorf("record %d: addr_type got %s, want %s", i, b.AddrMode, a.AddrMode)
		}
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, err := isa.Decode(`[{"opcode": "NOPE", "args": []}]`)
	if err == nil {
		t.Fatal("expected error for unknown opcode")
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := isa.Decode(`not json`)
	if err == nil {
		t.Fatal("expected error for malformed image")
	}
}
