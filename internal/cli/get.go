package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

type GetOptions struct {
	GlobalOptions

	Output string
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
		Args:  cobra.ExactArgs(1),
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

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	return nil
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	_, _, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}

	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	path := "/api/v1/" + plural(kind)
	if id != "" {
		path += "/" + id
	}

	body, err := o.fetch(ctx, path)
	if err != nil {
		if id == "" {
			return fmt.Errorf("listing %s: %w", plural(kind), err)
		}
		return fmt.Errorf("reading %s/%s: %w", kind, id, err)
	}

	if o.Output != "" {
		return printBody(body, o.Output)
	}
	if id != "" {
		return printDetailTable(body)
	}
	return printListTable(body, kind)
}

// tableRow is the reduced view shared by every kind's table output.
type tableRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Hostname string `json:"hypervisor_hostname"`
}

func (r tableRow) displayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Hostname
}

func printListTable(body []byte, kind string) error {
	var reply map[string]json.RawMessage
	if err := json.Unmarshal(body, &reply); err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}

	var rows []tableRow
	if raw, ok := reply[itemsKey(kind)]; ok {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return fmt.Errorf("decoding %s: %w", itemsKey(kind), err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.ID, row.displayName(), row.Status)
	}
	w.Flush()

	if raw, ok := reply["diagnostic"]; ok {
		var diagnostic string
		if err := json.Unmarshal(raw, &diagnostic); err == nil && diagnostic != "" {
			fmt.Fprintf(os.Stderr, "warning: %s\n", diagnostic)
		}
	}
	return nil
}

func printDetailTable(body []byte) error {
	var row tableRow
	if err := json.Unmarshal(body, &row); err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS")
	fmt.Fprintf(w, "%s\t%s\t%s\n", row.ID, row.displayName(), row.Status)
	w.Flush()
	return nil
}
