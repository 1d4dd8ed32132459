package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/spf13/cobra"
)

// NewRemoveFromCommand creates the remove-from command.
func NewRemoveFromCommand() *cobra.Command {
	var (
		dir string
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "remove-from WORKSPACE_NAME",
		Short: "Remove a function from a workspace",
		Long:  "Permanently remove the function described by function.yml from a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := args[0]

			err := validateWorkspaceName(workspace)
			if err != nil {
				return err
			}

			function, err := functionName(dir)
			if err != nil {
				return err
			}

			warning := fmt.Sprintf("This action will permanently remove the function '%s' from the workspace '%s'.", function, workspace)

			err = confirm(cmd, warning, yes)
			if err != nil {
				return err
			}

			client, err := clientForWorkspace(cmd, workspace)
			if err != nil {
				return err
			}

			result, err := client.Functions().Delete(commandContext(cmd), function, workspace)
			if err != nil {
				return fmt.Errorf("failed to remove function: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			success(cmd, "Function '%s' removed from workspace '%s'", function, workspace)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "function directory containing function.yml")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

// NewUpdateContextCommand creates the update-context command.
func NewUpdateContextCommand() *cobra.Command {
	var (
		dir       string
		data      string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "update-context WORKSPACE_NAME",
		Short: "Update the context data of a function",
		Long:  "Replace the context data the function described by function.yml receives in a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := args[0]

			err := validateWorkspaceName(workspace)
			if err != nil {
				return err
			}

			if data != "" && fromStdin {
				return constants.ErrConflictingBodyInputs
			}

			if fromStdin {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}

				data = strings.TrimRight(string(raw), "\n")
			}

			if data == "" {
				return constants.ErrContextDataRequired
			}

			function, err := functionName(dir)
			if err != nil {
				return err
			}

			client, err := clientForWorkspace(cmd, workspace)
			if err != nil {
				return err
			}

			result, err := client.Functions().UpdateContext(commandContext(cmd), function, workspace, data)
			if err != nil {
				return fmt.Errorf("failed to update context: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			success(cmd, "Context of '%s' updated in workspace '%s'", function, workspace)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "function directory containing function.yml")
	cmd.Flags().StringVar(&data, "data", "", "context data to store")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read context data from stdin")

	return cmd
}
