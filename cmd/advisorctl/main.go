package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clouddiag/openstack-advisor/internal/cli"
)

func main() {
	command := NewAdvisorCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewAdvisorCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisorctl [flags] [options]",
		Short: "advisorctl inspects an OpenStack deployment through the advisor service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdHealth())
	cmd.AddCommand(cli.NewCmdSummary())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
