package commands

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunOutput is the structured form of a function response.
type RunOutput struct {
	StatusCode int               `json:"status_code"        yaml:"status_code"`
	Headers    map[string]string `json:"headers"            yaml:"headers"`
	Body       string            `json:"body"               yaml:"body"`
	Duration   string            `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// parseHeaders turns KEY=VALUE pairs into a header map.
func parseHeaders(values []string) (map[string]string, error) {
	headers := make(map[string]string, len(values))

	for _, value := range values {
		key, val, found := strings.Cut(value, "=")

		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidHeaderFormat, value)
		}

		headers[key] = val
	}

	return headers, nil
}

func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		flat[key] = strings.Join(values, ", ")
	}

	return flat
}

func printRunResponse(cmd *cobra.Command, resp *faas.RunResponse, elapsed time.Duration, showTime bool) error {
	output := RunOutput{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Headers),
		Body:       string(resp.Body),
	}

	if showTime {
		output.Duration = elapsed.String()
	}

	out := cmd.OutOrStdout()

	handled, err := renderStructured(out, output)
	if handled {
		return err
	}

	if viper.GetBool(KeyVerbose) {
		_, _ = fmt.Fprintf(out, "HTTP %d\n", resp.StatusCode)

		keys := make([]string, 0, len(output.Headers))
		for key := range output.Headers {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_, _ = fmt.Fprintf(out, "%s: %s\n", key, output.Headers[key])
		}

		_, _ = fmt.Fprintln(out)
	}

	_, _ = fmt.Fprint(out, output.Body)
	if !strings.HasSuffix(output.Body, "\n") {
		_, _ = fmt.Fprintln(out)
	}

	if showTime {
		_, _ = fmt.Fprintf(out, "Time: %s\n", output.Duration)
	}

	return nil
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var (
		dir       string
		method    string
		body      string
		fromStdin bool
		headers   []string
		query     string
		showTime  bool
	)

	cmd := &cobra.Command{
		Use:   "run WORKSPACE_NAME [FUNCTION_NAME]",
		Short: "Run a function",
		Long:  "Invoke a deployed function and print its response. The function name defaults to the one in function.yml",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := args[0]

			err := validateWorkspaceName(workspace)
			if err != nil {
				return err
			}

			var function string
			if len(args) > 1 {
				function = args[1]
			} else {
				function, err = functionName(dir)
				if err != nil {
					return err
				}
			}

			if body != "" && fromStdin {
				return constants.ErrConflictingBodyInputs
			}

			payload := []byte(body)

			if fromStdin {
				payload, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			requestHeaders, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			client, err := createClient(cmd, faas.Credentials{})
			if err != nil {
				return err
			}

			start := time.Now()

			resp, err := client.Functions().Run(commandContext(cmd), &faas.RunRequest{
				Workspace: workspace,
				Function:  function,
				Method:    method,
				Payload:   payload,
				Headers:   requestHeaders,
				Time:      showTime,
				Query:     query,
			})
			if resp == nil {
				return fmt.Errorf("failed to run function: %w", err)
			}

			printErr := printRunResponse(cmd, resp, time.Since(start), showTime)
			if err != nil {
				return fmt.Errorf("failed to run function: %w", err)
			}

			return printErr
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "function directory containing function.yml")
	cmd.Flags().StringVarP(&method, "method", "m", http.MethodGet, "HTTP method")
	cmd.Flags().StringVarP(&body, "body", "b", "", "request body")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the request body from stdin")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "request header as KEY=VALUE (repeatable)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "query string, e.g. \"?name=joe\"")
	cmd.Flags().BoolVarP(&showTime, "time", "t", false, "report how long the function took")

	return cmd
}
