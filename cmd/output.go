package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/cmdk/internal/formatter"
)

// outputFlag is a pflag.Value restricted to a set of formats, so an invalid
// -o value fails during flag parsing with the list of accepted names.
type outputFlag struct {
	value   formatter.Format
	allowed []formatter.Format
}

var _ pflag.Value = (*outputFlag)(nil)

func newOutputFlag(allowed ...formatter.Format) *outputFlag {
	return &outputFlag{value: allowed[0], allowed: allowed}
}

func (o *outputFlag) Set(s string) error {
	f, err := formatter.ParseFormat(s, o.allowed...)
	if err != nil {
		return err
	}
	o.value = f
	return nil
}

func (o *outputFlag) String() string {
	return string(o.value)
}

func (o *outputFlag) Type() string {
	return "format"
}

// Format returns the selected format.
func (o *outputFlag) Format() formatter.Format {
	return o.value
}

func (o *outputFlag) usage() string {
	names := make([]string, 0, len(o.allowed))
	for _, f := range o.allowed {
		names = append(names, string(f))
	}
	return "output format: " + strings.Join(names, "|")
}
