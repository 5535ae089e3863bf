// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/certtrust/src/api"
	mcpserver "github.com/H0llyW00dzZ/certtrust/src/mcp-server"
)

func (a *app) newServeCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serves the inspect, validate, sign and verify operations as a JSON API under
/api/v1 until interrupted. Listening address and limits come from the server
section of the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if address != "" {
				a.eng.Config().Server.Address = address
			}
			OperationPerformed = true
			if err := api.NewServer(a.eng, a.version).Run(cmd.Context()); err != nil {
				return err
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (default: from configuration)")
	return cmd
}

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			OperationPerformed = true
			if err := mcpserver.Run(cmd.Context(), a.eng, a.version); err != nil {
				return err
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}
}
