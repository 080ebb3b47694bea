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

// Command rasm assembles register-machine source into the wire-format
// image consumed by rsim.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/regvm/asm"
	"github.com/db47h/regvm/isa"
	"github.com/db47h/regvm/vm"
)

func main() {
	var out string
	var disasm bool

	rootCmd := &cobra.Command{
		Use:           "rasm <source.asm>",
		Short:         "Assemble register-machine source into an image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			f, err := os.Open(src)
			if err != nil {
				return errors.Wrapf(err, "%s: open source", src)
			}
			defer f.Close()

			img, err := asm.Assemble(src, f)
			if err != nil {
				return err
			}

			if disasm {
				disassembleAll(img, os.Stdout)
			}

			if out == "" {
				out = strings.TrimSuffix(src, ".asm") + ".img"
			}
			if err := vm.SaveImage(out, img); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "assembled %d words to %s\n", len(img), out)
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&out, "out", "o", "", "output image `filename` (default: <source> with .img extension)")
	rootCmd.Flags().BoolVar(&disasm, "disasm", false, "print the disassembled image to stdout before writing it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rasm: %+v\n", err)
		os.Exit(1)
	}
}

func disassembleAll(img isa.Image, w *os.File) {
	for pc := 0; pc < len(img); {
		pc = asm.Disassemble(img, pc, w)
	}
}
