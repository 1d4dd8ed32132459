package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/fivetwenty-io/faas-client/pkg/faasclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// decodeWorkspace reads the workspace body of a successful result.
func decodeWorkspace(result faas.Result) (*faas.Workspace, error) {
	workspace := &faas.Workspace{}

	success := faas.AsSuccess(result)
	if success == nil || len(success.Raw) == 0 {
		return workspace, nil
	}

	err := success.Decode(workspace)
	if err != nil {
		return nil, err
	}

	return workspace, nil
}

// saveCredentials stores the key pair of a workspace in the credentials file.
func saveCredentials(cmd *cobra.Command, workspace string, creds faas.Credentials) error {
	store, err := loadCredentialsStore()
	if err != nil {
		return err
	}

	store.Set(workspace, creds)

	err = store.Save()
	if err != nil {
		return err
	}

	success(cmd, "Credentials for '%s' saved to %s", workspace, store.Path())

	return nil
}

func printCredentials(cmd *cobra.Command, workspace string, creds faas.Credentials) error {
	type CredentialsInfo struct {
		Workspace string `json:"workspace"  yaml:"workspace"`
		APIKey    string `json:"api_key"    yaml:"api_key"`
		APISecret string `json:"api_secret" yaml:"api_secret"`
	}

	handled, err := renderStructured(cmd.OutOrStdout(), CredentialsInfo{
		Workspace: workspace,
		APIKey:    creds.APIKey,
		APISecret: creds.APISecret,
	})
	if handled {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")
	_ = table.Append("Workspace", workspace)
	_ = table.Append("API Key", creds.APIKey)
	_ = table.Append("API Secret", creds.APISecret)

	return renderTable(table)
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// NewCreateWorkspaceCommand creates the create-workspace command.
func NewCreateWorkspaceCommand() *cobra.Command {
	var (
		email    string
		provider string
		stdout   bool
	)

	cmd := &cobra.Command{
		Use:   "create-workspace WORKSPACE_NAME",
		Short: "Create a workspace",
		Long:  "Create a workspace and save its credentials to the credentials file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			err := validateWorkspaceName(name)
			if err != nil {
				return err
			}

			client, err := createClient(cmd, configuredCredentials())
			if err != nil {
				return err
			}

			result, err := client.Workspaces().Create(commandContext(cmd), &faas.WorkspaceCreateRequest{
				Name:     name,
				Email:    email,
				Provider: provider,
			})
			if err != nil {
				return fmt.Errorf("failed to create workspace: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			workspace, err := decodeWorkspace(result)
			if err != nil {
				return err
			}

			success(cmd, "Workspace '%s' created", name)

			if workspace.Credentials == nil {
				return nil
			}

			if stdout {
				return printCredentials(cmd, name, *workspace.Credentials)
			}

			return saveCredentials(cmd, name, *workspace.Credentials)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address of the workspace owner")
	cmd.Flags().StringVar(&provider, "provider", "", "cloud provider to host the workspace")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the credentials instead of saving them")

	return cmd
}

// NewDestroyWorkspaceCommand creates the destroy-workspace command.
func NewDestroyWorkspaceCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy-workspace WORKSPACE_NAME",
		Short: "Destroy a workspace",
		Long:  "Permanently destroy a workspace and every function deployed to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			err := validateWorkspaceName(name)
			if err != nil {
				return err
			}

			err = confirm(cmd, fmt.Sprintf("This action will permanently remove the workspace '%s' and all its functions.", name), yes)
			if err != nil {
				return err
			}

			client, err := clientForWorkspace(cmd, name)
			if err != nil {
				return err
			}

			result, err := client.Workspaces().Destroy(commandContext(cmd), name)
			if err != nil {
				return fmt.Errorf("failed to destroy workspace: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			store, err := loadCredentialsStore()
			if err != nil {
				return err
			}

			if store.Delete(name) {
				err = store.Save()
				if err != nil {
					return err
				}
			}

			success(cmd, "Workspace '%s' destroyed", name)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

// NewListWorkspaceCommand creates the list-workspace command.
func NewListWorkspaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-workspace WORKSPACE_NAME",
		Short: "List the functions of a workspace",
		Long:  "Display the functions deployed to a workspace and their endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			err := validateWorkspaceName(name)
			if err != nil {
				return err
			}

			client, err := clientForWorkspace(cmd, name)
			if err != nil {
				return err
			}

			result, err := client.Workspaces().Get(commandContext(cmd), name)
			if err != nil {
				return fmt.Errorf("failed to get workspace: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			workspace, err := decodeWorkspace(result)
			if err != nil {
				return err
			}

			if workspace.Name == "" {
				workspace.Name = name
			}

			handled, err := renderStructured(cmd.OutOrStdout(), workspace)
			if handled {
				return err
			}

			if len(workspace.Functions) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No functions deployed to workspace '%s'\n", name)

				return nil
			}

			host := faasclient.NormalizeEndpoint(viper.GetString(KeyAPIHost))

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Function", "Endpoint")

			for _, function := range workspace.Functions {
				endpoint := function.Endpoint
				if endpoint == "" {
					endpoint = host + "/" + name + "/" + function.Name
				}

				_ = table.Append(function.Name, endpoint)
			}

			return renderTable(table)
		},
	}
}

// NewRefreshCredentialsCommand creates the refresh-credentials command.
func NewRefreshCredentialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-credentials WORKSPACE_NAME",
		Short: "Issue new credentials for a workspace",
		Long:  "Ask the platform for a new API key and secret and replace the saved ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			err := validateWorkspaceName(name)
			if err != nil {
				return err
			}

			client, err := clientForWorkspace(cmd, name)
			if err != nil {
				return err
			}

			result, err := client.Workspaces().RefreshCredentials(commandContext(cmd), name)
			if err != nil {
				return fmt.Errorf("failed to refresh credentials: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			workspace, err := decodeWorkspace(result)
			if err != nil {
				return err
			}

			if workspace.Credentials == nil {
				return fmt.Errorf("refresh response for '%s': %w", name, faas.ErrNoCredentials)
			}

			return saveCredentials(cmd, name, *workspace.Credentials)
		},
	}
}
