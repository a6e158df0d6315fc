package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

var legalReportFormats = []string{"detailed", "summary"}

type ReportOptions struct {
	GlobalOptions

	Output string
	Format string
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        jsonFormat,
		Format:        "detailed",
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an inventory report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
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

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVarP(&o.Format, "format", "f", o.Format, fmt.Sprintf("Report verbosity. One of: (%s).", strings.Join(legalReportFormats, ", ")))
}

func (o *ReportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	if !funk.Contains(legalReportFormats, o.Format) {
		return fmt.Errorf("report format must be one of %s", strings.Join(legalReportFormats, ", "))
	}
	return nil
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	body, err := o.fetch(ctx, "/api/v1/reports/inventory?format="+url.QueryEscape(o.Format))
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	return printBody(body, o.Output)
}
