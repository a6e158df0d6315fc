package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type SummaryOptions struct {
	GlobalOptions

	Output string
}

func DefaultSummaryOptions() *SummaryOptions {
	return &SummaryOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        jsonFormat,
	}
}

func NewCmdSummary() *cobra.Command {
	o := DefaultSummaryOptions()
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Display the condensed infrastructure summary.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *SummaryOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *SummaryOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *SummaryOptions) Run(ctx context.Context, args []string) error {
	body, err := o.fetch(ctx, "/api/v1/summary")
	if err != nil {
		return fmt.Errorf("reading summary: %w", err)
	}
	return printBody(body, o.Output)
}
