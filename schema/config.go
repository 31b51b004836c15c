package schema

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for schema generation configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Output      string
	Draft       string
	Indent      string
	Title       string
	Description string
	ID          string
	Strict      string
	Required    string
	Defaults    string
}

// Config holds CLI flag values for schema generation configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewGenerator] to create a [Generator].
type Config struct {
	Flags       Flags
	Output      string
	Title       string
	Description string
	ID          string
	Draft       int
	Indent      int
	Strict      bool
	Required    bool
	Defaults    bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:      "output",
		Draft:       "draft",
		Indent:      "indent",
		Title:       "title",
		Description: "description",
		ID:          "id",
		Strict:      "strict",
		Required:    "required",
		Defaults:    "defaults",
	}

	return &Config{Flags: f, Draft: 7, Indent: 2}
}

// RegisterFlags adds schema generation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.IntVar(&c.Draft, c.Flags.Draft, 7,
		"JSON Schema draft version")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
	flags.StringVar(&c.Title, c.Flags.Title, "",
		"schema title field")
	flags.StringVar(&c.Description, c.Flags.Description, "",
		"schema description field")
	flags.StringVar(&c.ID, c.Flags.ID, "",
		"schema $id field")
	flags.BoolVar(&c.Strict, c.Flags.Strict, false,
		"set additionalProperties: false on objects")
	flags.BoolVar(&c.Required, c.Flags.Required, false,
		"mark every key present in all inputs as required")
	flags.BoolVar(&c.Defaults, c.Flags.Defaults, false,
		"record scalar values as property defaults")
}

// RegisterCompletions registers shell completions for schema generation flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Draft,
		cobra.FixedCompletions([]string{"7"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Draft, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Indent, c.Flags.Title, c.Flags.Description, c.Flags.ID} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewGenerator creates a [Generator] using this [Config].
func (c *Config) NewGenerator() (*Generator, error) {
	if c.Draft != 7 {
		return nil, fmt.Errorf("%w: unsupported draft %d", ErrInvalidOption, c.Draft)
	}

	if c.Indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", ErrInvalidOption, c.Indent)
	}

	var opts []Option

	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}

	if c.Description != "" {
		opts = append(opts, WithDescription(c.Description))
	}

	if c.ID != "" {
		opts = append(opts, WithID(c.ID))
	}

	if c.Strict {
		opts = append(opts, WithStrict(true))
	}

	if c.Required {
		opts = append(opts, WithRequired(true))
	}

	if c.Defaults {
		opts = append(opts, WithDefaults(true))
	}

	return NewGenerator(opts...), nil
}
