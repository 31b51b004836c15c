package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/miniyaml"
	"go.jacobcolvin.com/miniyaml/diff"
	"go.jacobcolvin.com/miniyaml/scan"
	"go.jacobcolvin.com/miniyaml/schema"
	"go.jacobcolvin.com/miniyaml/version"
)

func newParseCommand() *cobra.Command {
	var (
		format string
		indent int
	)

	cmd := &cobra.Command{
		Use:   "parse [file ...]",
		Short: "Parse documents and print them as JSON or YAML",
		Long: `Parse each document and print its value tree. JSON output is indented
on a terminal and compact otherwise, unless --indent is given. Multiple
documents are printed one after another; YAML documents are separated by
"---".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unknown format %q", format)
			}

			if !cmd.Flags().Changed("indent") && format == formatJSON && !isTerminal(cmd.OutOrStdout()) {
				indent = 0
			}

			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			for i, in := range inputs {
				v, err := miniyaml.ParseBytes(in.data)
				if err != nil {
					return fmt.Errorf("%s: %w", in.name, err)
				}

				var out []byte

				switch format {
				case formatYAML:
					if i > 0 {
						out = []byte("---\n")
					}

					doc, encErr := encodeYAML(v, indent)
					if encErr != nil {
						return fmt.Errorf("%w: %s: %w", errWriteOutput, in.name, encErr)
					}

					out = append(out, doc...)
				default:
					out, err = encodeJSON(v, indent)
					if err != nil {
						return fmt.Errorf("%w: %s: %w", errWriteOutput, in.name, err)
					}
				}

				_, err = w.Write(out)
				if err != nil {
					return fmt.Errorf("%w: %w", errWriteOutput, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format, one of: json, yaml")
	cmd.Flags().IntVar(&indent, "indent", 2, "indentation spaces")

	must(cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp)))

	return cmd
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file ...]",
		Short: "Report documents that use unsupported syntax",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			failed := 0

			for _, in := range inputs {
				_, err := miniyaml.ParseBytes(in.data)
				if err != nil {
					failed++

					slog.Error("unsupported document", slog.String("file", in.name), slog.Any("error", err))
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", in.name, err)

					continue
				}

				slog.Debug("document ok", slog.String("file", in.name))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", in.name)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d failed", errDocuments, failed, len(inputs))
			}

			return nil
		},
	}
}

func newSchemaCommand() *cobra.Command {
	cfg := schema.NewConfig()

	cmd := &cobra.Command{
		Use:   "schema [file ...]",
		Short: "Generate a JSON Schema (Draft 7) from example documents",
		Long: `Generate a JSON Schema describing the given documents. Multiple inputs are
merged: properties are unioned and conflicting types are widened.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, cfg, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	must(cfg.RegisterCompletions(cmd))

	return cmd
}

func runSchema(cmd *cobra.Command, cfg *schema.Config, args []string) error {
	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	data := make([][]byte, 0, len(inputs))
	for _, in := range inputs {
		data = append(data, in.data)
	}

	s, err := gen.Generate(data...)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(s, "", strings.Repeat(" ", cfg.Indent))
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = cmd.OutOrStdout().Write(out)
	} else {
		err = os.WriteFile(cfg.Output, out, 0o644) //nolint:gosec // Output path from CLI flag is expected.
	}

	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return nil
}

func newValidateCommand() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate --schema schema.json [file ...]",
		Short: "Validate documents against a JSON Schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("%w: %w", errReadInput, err)
			}

			s, err := schema.Load(raw)
			if err != nil {
				return err
			}

			compiled, err := schema.Compile(s)
			if err != nil {
				return err
			}

			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			failed := 0

			for _, in := range inputs {
				err := validateInput(compiled, in)
				if err != nil {
					failed++

					slog.Warn("document invalid", slog.String("file", in.name), slog.Any("error", err))
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", in.name, err)

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", in.name)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d failed", errDocuments, failed, len(inputs))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "path to a JSON Schema file")

	must(cmd.MarkFlagRequired("schema"))

	return cmd
}

func validateInput(c *schema.Compiled, in input) error {
	v, err := miniyaml.ParseBytes(in.data)
	if err != nil {
		return err
	}

	return c.Validate(v)
}

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

func newDiffCommand() *cobra.Command {
	var (
		colorMode string
		exitCode  bool
	)

	cmd := &cobra.Command{
		Use:   "diff old new",
		Short: "Show structural differences between two documents",
		Long: `Compare two documents by value. Each line reports an added (+), removed (-)
or changed (~) path. Key order and formatting are ignored. Either argument
may be "-" to read standard input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var colored bool

			switch colorMode {
			case colorAuto:
				colored = isTerminal(cmd.OutOrStdout())
			case colorAlways:
				colored = true
			case colorNever:
			default:
				return fmt.Errorf("unknown color mode %q", colorMode)
			}

			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			values := make([]miniyaml.Value, 0, len(inputs))

			for _, in := range inputs {
				v, err := miniyaml.ParseBytes(in.data)
				if err != nil {
					return fmt.Errorf("%s: %w", in.name, err)
				}

				values = append(values, v)
			}

			changes := diff.Values(values[0], values[1])

			slog.Debug("compared documents",
				slog.String("old", inputs[0].name),
				slog.String("new", inputs[1].name),
				slog.Int("changes", len(changes)),
			)

			err = diff.NewPrinter(colored).Print(cmd.OutOrStdout(), changes)
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			if exitCode && len(changes) > 0 {
				return fmt.Errorf("%w: %d changes", errDiffers, len(changes))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", colorAuto, "colorize output: auto, always or never")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 1 when the documents differ")

	must(cmd.RegisterFlagCompletionFunc("color",
		cobra.FixedCompletions([]string{colorAuto, colorAlways, colorNever}, cobra.ShellCompDirectiveNoFileComp)))

	return cmd
}

func newFieldsCommand() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "fields --field name [file ...]",
		Short: "Print every value of a field, one per line",
		Long: `Print the value of every "name: value" line, at any depth. This is a line
scanner for flat registry files and does not parse the documents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scanInputs(cmd, args, func(text string) []string {
				return scan.ListField(text, field)
			})
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "field name to extract")

	must(cmd.MarkFlagRequired("field"))

	return cmd
}

func newListCommand() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "list --key name [file ...]",
		Short: "Print the items of a top-level list, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return scanInputs(cmd, args, func(text string) []string {
				return scan.List(text, key)
			})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "top-level key holding the list")

	must(cmd.MarkFlagRequired("key"))

	return cmd
}

func scanInputs(cmd *cobra.Command, args []string, fn func(string) []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		values := fn(string(in.data))

		slog.Debug("scanned", slog.String("file", in.name), slog.Int("values", len(values)))

		err := writeLines(cmd.OutOrStdout(), values)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		_, err := fmt.Fprintln(w, l)
		if err != nil {
			return fmt.Errorf("%w: %w", errWriteOutput, err)
		}
	}

	return nil
}

func newVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()

			if !asJSON {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
				if err != nil {
					return fmt.Errorf("%w: %w", errWriteOutput, err)
				}

				return nil
			}

			err := json.NewEncoder(cmd.OutOrStdout()).Encode(info)
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// must panics on errors that can only come from a miswired command.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
