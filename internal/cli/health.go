package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

type HealthOptions struct {
	GlobalOptions

	Output string
}

func DefaultHealthOptions() *HealthOptions {
	return &HealthOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdHealth() *cobra.Command {
	o := DefaultHealthOptions()
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the health of the backing OpenStack services.",
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

func (o *HealthOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *HealthOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *HealthOptions) Run(ctx context.Context, args []string) error {
	body, err := o.fetch(ctx, "/api/v1/health/services")
	if err != nil {
		return fmt.Errorf("checking service health: %w", err)
	}

	if o.Output != "" {
		return printBody(body, o.Output)
	}

	var report api.ServiceHealthReport
	if err := json.Unmarshal(body, &report); err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}

	names := make([]string, 0, len(report.Services))
	for name := range report.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "SERVICE\tSTATUS\tMESSAGE")
	for _, name := range names {
		health := report.Services[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", health.Service, health.Status, health.Message)
	}
	w.Flush()

	fmt.Printf("overall: %s (%d/%d healthy)\n", report.OverallStatus, report.Summary.HealthyServices, report.Summary.TotalServices)
	return nil
}
