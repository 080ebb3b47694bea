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

// Command rsim simulates an assembled register-machine image, feeding
// it a file of input code points and capturing whatever it writes to
// the output port.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/regvm/internal/rlog"
	"github.com/db47h/regvm/vm"
)

func main() {
	var memorySize int
	var limit int
	var trace bool
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "rsim <code_file> <input_file> <output_file>",
		Short:         "Simulate an assembled register-machine image",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			codeFile, inputFile, outputFile := args[0], args[1], args[2]

			img, err := vm.LoadImage(codeFile)
			if err != nil {
				return err
			}

			in, err := os.Open(inputFile)
			if err != nil {
				return errors.Wrapf(err, "%s: open input", inputFile)
			}
			defer in.Close()
			codepoints, err := vm.ReadInput(in)
			if err != nil {
				return errors.Wrapf(err, "%s: read input", inputFile)
			}

			log := rlog.New(os.Stderr, debug || trace)
			inst, err := vm.New(img,
				vm.MemorySize(memorySize),
				vm.Limit(limit),
				vm.Input(codepoints),
				vm.Trace(trace),
				vm.Logger(log),
			)
			if err != nil {
				return err
			}

			out, err := inst.Run()
			if err != nil {
				return errors.Wrapf(err, "simulation failed (%s)", inst.State())
			}

			outF, err := os.Create(outputFile)
			if err != nil {
				return errors.Wrapf(err, "%s: create output", outputFile)
			}
			defer outF.Close()
			if err := vm.WriteOutput(outF, out); err != nil {
				return errors.Wrapf(err, "%s: write output", outputFile)
			}

			fmt.Fprintf(os.Stderr, "%d ticks, ip=%d\n", inst.Ticks(), inst.IP())
			return nil
		},
	}
	rootCmd.Flags().IntVar(&memorySize, "memory-size", 250, "total memory size in words, including the two I/O ports")
	rootCmd.Flags().IntVar(&limit, "limit", 400, "maximum number of instructions to execute before aborting")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "log a Control Unit state snapshot after every instruction")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rsim: %+v\n", err)
		os.Exit(1)
	}
}
