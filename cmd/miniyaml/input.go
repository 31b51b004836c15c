package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// input is one document read from a file or standard input.
type input struct {
	name string
	data []byte
}

// readInputs reads every argument, treating "-" (or no arguments at all)
// as standard input.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, 0, len(args))

	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("%w: stdin: %w", errReadInput, err)
			}

			inputs = append(inputs, input{name: "<stdin>", data: data})

			continue
		}

		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errReadInput, err)
		}

		inputs = append(inputs, input{name: arg, data: data})
	}

	return inputs, nil
}
