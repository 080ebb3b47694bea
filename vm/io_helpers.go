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

// Output returns a copy of the characters written to the output port
// so far, as Unicode code points in write order.
func (i *Instance) Output() []int {
	out := make([]int, len(i.dp.output))
	copy(out, i.dp.output)
	return out
}

// InputRemaining returns the number of characters left unread in the
// input stream, including the trailing NUL sentinel if still pending.
func (i *Instance) InputRemaining() int {
	return len(i.dp.input)
}
