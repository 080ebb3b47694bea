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

	"github.com/db47h/regvm/isa"
)

// Run executes the loaded image until HLT, input-buffer exhaustion, or
// the instruction-count limit, whichever happens first. It returns the
// accumulated output stream as Unicode code points.
//
// Input-buffer exhaustion is not an error: it ends the run the way a
// closed stdin would, after a WARN log line. Exceeding the instruction
// limit is reported as an error giving the instruction count and the
// limit; an instruction pointer outside memory is reported with its
// value. A panic during execution (e.g. a malformed image indexing past
// an operand list) is recovered into a wrapped error naming the
// instruction pointer and tick count at the point of failure.
func (i *Instance) Run() (output []int, err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered panic @ip=%d tick=%d", i.cu.ip, i.cu.tick)
			default:
				err = errors.Errorf("recovered panic @ip=%d tick=%d: %v", i.cu.ip, i.cu.tick, e)
			}
		}
	}()

	for instrCount := 0; ; instrCount++ {
		if instrCount >= i.limit {
			return i.dp.output, errors.Errorf("limit exceeded: %d instructions executed, limit %d", instrCount, i.limit)
		}
		if i.dp.inputEmpty() {
			// the decoder only touches input on LD from the input port;
			// peeking here lets us stop cleanly instead of panicking on
			// the next read.
			if instrReadsInput(i.dp, i.cu.ip) {
				i.log.Warn("input buffer is empty")
				return i.dp.output, nil
			}
		}
		err := i.cu.decodeAndExecute()
		if i.trace {
			i.log.Debugf("%s", i.cu.State())
		}
		if err == errHalt {
			return i.dp.output, nil
		}
		if err != nil {
			return i.dp.output, err
		}
	}
}

// instrReadsInput reports whether the instruction at ip is an LD from
// the input port, the only opcode that can underflow the input stream.
func instrReadsInput(dp *Datapath, ip int) bool {
	if ip < 0 || ip >= len(dp.memory) {
		return false
	}
	instr := dp.memory[ip]
	return instr.Opcode == isa.Ld && instr.AddrMode == isa.Port
}
