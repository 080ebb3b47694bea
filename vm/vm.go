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
	"github.com/pkg/errors"

	"github.com/db47h/regvm/internal/rlog"
	"github.com/db47h/regvm/isa"
)

const (
	defaultMemorySize = 250
	defaultLimit      = 400
)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// MemorySize overrides the default memory size (250 cells, matching the
// original reference implementation's simulation defaults). It must
// leave room for the image plus the two I/O port cells.
func MemorySize(n int) Option {
	return func(i *Instance) error {
		if n <= 2 {
			return errors.Errorf("memory size %d too small for I/O ports", n)
		}
		i.memorySize = n
		return nil
	}
}

// Limit overrides the default instruction-count ceiling (400) past
// which Run aborts with an error.
func Limit(n int) Option {
	return func(i *Instance) error {
		if n <= 0 {
			return errors.Errorf("limit must be positive, got %d", n)
		}
		i.limit = n
		return nil
	}
}

// Input sets the simulator's input stream: one code point per
// character, consumed in order as the program reads the input port. A
// trailing NUL sentinel is appended to the supplied characters; a
// program that reads past them first reads that NUL and only then
// observes input-buffer exhaustion.
func Input(codepoints []int) Option {
	return func(i *Instance) error {
		i.input = append(append([]int{}, codepoints...), 0)
		return nil
	}
}

// Trace makes Run log the Control Unit's state at DEBUG level through
// the configured Logger after every instruction. The lines appear only
// if that Logger has debug level enabled.
func Trace(enabled bool) Option {
	return func(i *Instance) error { i.trace = enabled; return nil }
}

// Logger overrides the rlog.Logger used for I/O and trace diagnostics.
func Logger(l *rlog.Logger) Option {
	return func(i *Instance) error { i.log = l; return nil }
}

// Instance is a single simulator run: a Datapath and the Control Unit
// driving it, plus the configuration collected from Options.
type Instance struct {
	memorySize int
	limit      int
	input      []int
	trace      bool
	log        *rlog.Logger

	dp *Datapath
	cu *ControlUnit
}

// New builds a simulator Instance over img and applies opts. The image
// is copied into a freshly allocated memory array sized memorySize
// (default 250); it is an error for the image to be larger than
// memorySize-2.
func New(img isa.Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		memorySize: defaultMemorySize,
		limit:      defaultLimit,
		log:        rlog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if len(img) > i.memorySize-2 {
		return nil, errors.Errorf("image of %d words does not fit in %d-word memory (2 reserved for I/O)", len(img), i.memorySize)
	}
	i.dp = newDatapath(img, i.memorySize, i.input, i.log)
	i.cu = newControlUnit(i.dp)
	return i, nil
}

// State returns a snapshot of the current Control Unit/Datapath state,
// suitable for logging or test assertions.
func (i *Instance) State() string {
	return i.cu.State()
}

// Registers returns a copy of the register file r0..r8.
func (i *Instance) Registers() [9]int {
	return i.dp.regs
}

// Flags returns the current negative and zero flags.
func (i *Instance) Flags() (neg, zero bool) {
	return i.dp.flNeg, i.dp.flZero
}

// IP returns the current instruction pointer.
func (i *Instance) IP() int {
	return i.cu.ip
}

// Ticks returns the number of Control Unit ticks elapsed so far.
func (i *Instance) Ticks() int {
	return i.cu.tick
}
