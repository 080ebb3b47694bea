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

// Package vm simulates the register machine defined in package isa.
//
// The simulator splits into a Datapath, which owns memory, the register
// file, the ALU and the I/O ports, and a ControlUnit, which fetches and
// decodes instructions and drives the Datapath's latch operations one
// tick at a time. An Instance wires the two together and exposes Run as
// the only entry point that mutates simulator state.
//
// Memory is laid out exactly as produced by package asm: code section
// first, data section immediately after. The last two memory cells are
// memory-mapped I/O ports: memory_size-2 is the input port, memory_size-1
// is the output port. Reading the input port pops one character (as its
// Unicode code point) from the configured input stream; writing the
// output port appends one character to the output stream.
//
// r0 always reads as zero: every register write is immediately followed
// by resetting register 0, matching the Datapath's latch_reg behavior.
package vm
