package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fivetwenty-io/faas-client/internal/manifest"
	"github.com/fivetwenty-io/faas-client/internal/packager"
	"github.com/spf13/cobra"
)

// runTests runs the manifest's test command inside dir. A failure only stops
// the deploy when the manifest asks for it.
func runTests(cmd *cobra.Command, dir string, fn *manifest.Manifest) error {
	if fn.TestCommand == "" {
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Running tests: %s\n", fn.TestCommand)

	// the test command comes from the function's own manifest
	// #nosec G204
	test := exec.CommandContext(commandContext(cmd), "sh", "-c", fn.TestCommand)
	test.Dir = dir
	test.Stdout = cmd.OutOrStdout()
	test.Stderr = cmd.ErrOrStderr()

	err := test.Run()
	if err == nil {
		return nil
	}

	if fn.AbortDeployIfTestsFail {
		return fmt.Errorf("%w: %w", ErrTestsFailed, err)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Tests failed (%v), deploying anyway\n", err)

	return nil
}

// NewDeployToCommand creates the deploy-to command.
func NewDeployToCommand() *cobra.Command {
	var (
		dir         string
		packagePath string
		skipTests   bool
	)

	cmd := &cobra.Command{
		Use:   "deploy-to WORKSPACE_NAME",
		Short: "Deploy a function to a workspace",
		Long:  "Package the function in the current directory (or --dir) and deploy it to a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := args[0]

			err := validateWorkspaceName(workspace)
			if err != nil {
				return err
			}

			fn, err := manifest.Load(dir)
			if err != nil {
				return err
			}

			if !skipTests {
				err = runTests(cmd, dir, fn)
				if err != nil {
					return err
				}
			}

			if packagePath == "" {
				packagePath, err = packager.Build(dir)
				if err != nil {
					return err
				}

				defer os.Remove(packagePath)
			}

			client, err := clientForWorkspace(cmd, workspace)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deploying '%s' to workspace '%s'...\n", fn.Name, workspace)

			result, err := client.Workspaces().Deploy(commandContext(cmd), workspace, packagePath)
			if err != nil {
				return fmt.Errorf("failed to deploy: %w", err)
			}

			err = resultError(result)
			if err != nil {
				return err
			}

			success(cmd, "Function '%s' deployed to workspace '%s'", fn.Name, workspace)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "function directory containing function.yml")
	cmd.Flags().StringVar(&packagePath, "package", "", "deploy an existing zip package instead of building one")
	cmd.Flags().BoolVar(&skipTests, "skip-tests", false, "do not run the manifest's test command")

	return cmd
}
