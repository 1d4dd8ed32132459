package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/internal/credentials"
	"github.com/fivetwenty-io/faas-client/internal/logging"
	"github.com/fivetwenty-io/faas-client/internal/manifest"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/fivetwenty-io/faas-client/pkg/faasclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Configuration keys, shared by viper, the config file and FAAS_* variables.
const (
	KeyAPIHost         = "api_host"
	KeyAPIVersion      = "api_version"
	KeyAPIKey          = "api_key"
	KeyAPISecret       = "api_secret"
	KeyCredentialsFile = "credentials_file"
	KeyOutput          = "output"
	KeyNoColor         = "no_color"
	KeyLogLevel        = "log_level"
	KeyMaxRedirects    = "max_redirects"
	KeyVerbose         = "verbose"
)

// ConfigKeys lists the keys accepted by "config set" and "config unset".
var ConfigKeys = []string{
	KeyAPIHost,
	KeyAPIVersion,
	KeyAPIKey,
	KeyAPISecret,
	KeyCredentialsFile,
	KeyOutput,
	KeyNoColor,
	KeyLogLevel,
	KeyMaxRedirects,
}

// Common static errors used throughout the commands package.
var (
	ErrInvalidWorkspaceName = errors.New("is not a valid workspace name")
	ErrTestsFailed          = errors.New("tests failed, deploy aborted")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
)

// SetDefaults registers the default configuration values.
func SetDefaults() {
	viper.SetDefault(KeyAPIHost, constants.DefaultAPIHost)
	viper.SetDefault(KeyAPIVersion, faas.DefaultAPIVersion)
	viper.SetDefault(KeyOutput, constants.FormatTable)
	viper.SetDefault(KeyLogLevel, constants.DefaultLogLevel)
	viper.SetDefault(KeyMaxRedirects, faas.DefaultMaxRedirects)
}

// ApplyColorSetting disables colors when no_color is set.
func ApplyColorSetting() {
	if viper.GetBool(KeyNoColor) {
		color.NoColor = true
	}
}

// PrintError writes err to w in red. A failed result prints one line per message.
func PrintError(w io.Writer, err error) {
	var failure *faas.Failure
	if errors.As(err, &failure) && len(failure.Messages) > 0 {
		for _, msg := range failure.Messages {
			_, _ = fmt.Fprintln(w, color.RedString(msg))
		}

		return
	}

	_, _ = fmt.Fprintln(w, color.RedString(err.Error()))
}

// resultError turns a failed result into an error. Soft errors of a
// successful response count as failure too.
func resultError(result faas.Result) error {
	if !result.Failed() {
		return nil
	}

	if failure := faas.AsFailure(result); failure != nil {
		return failure
	}

	return &faas.Failure{Messages: result.ErrorMessages(), Code: result.StatusCode()}
}

func validateWorkspaceName(name string) error {
	if name == "" || strings.HasPrefix(name, "-") {
		return fmt.Errorf("'%s' %w", name, ErrInvalidWorkspaceName)
	}

	return nil
}

// newLogger builds the CLI logger. --verbose forces debug level.
func newLogger(cmd *cobra.Command) *logging.Adapter {
	level := viper.GetString(KeyLogLevel)
	if viper.GetBool(KeyVerbose) {
		level = "debug"
	}

	logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), level, logging.FormatConsole)
	if err != nil {
		return logging.NewAdapter(nil)
	}

	return logging.NewAdapter(logger)
}

// createClient builds an API client from the current configuration.
func createClient(cmd *cobra.Command, creds faas.Credentials) (faas.Client, error) {
	client, err := faasclient.New(&faas.Config{
		APIEndpoint:  viper.GetString(KeyAPIHost),
		APIVersion:   viper.GetString(KeyAPIVersion),
		Credentials:  creds,
		MaxRedirects: viper.GetInt(KeyMaxRedirects),
		Debug:        viper.GetBool(KeyVerbose),
		Logger:       newLogger(cmd),
		UserAgent:    constants.DefaultUserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// configuredCredentials returns the key pair set through config, env or flags.
func configuredCredentials() faas.Credentials {
	return faas.Credentials{
		APIKey:    viper.GetString(KeyAPIKey),
		APISecret: viper.GetString(KeyAPISecret),
	}
}

func credentialsPath() (string, error) {
	path := viper.GetString(KeyCredentialsFile)
	if path != "" {
		return path, nil
	}

	path, err := credentials.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to locate credentials file: %w", err)
	}

	return path, nil
}

func loadCredentialsStore() (*credentials.Store, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}

	store, err := credentials.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return store, nil
}

// resolveCredentials looks up the key pair for a workspace: explicit
// configuration first, then the credentials file.
func resolveCredentials(workspace string) (faas.Credentials, error) {
	creds := configuredCredentials()
	if !creds.IsZero() {
		return creds, nil
	}

	store, err := loadCredentialsStore()
	if err != nil {
		return faas.Credentials{}, err
	}

	stored, ok := store.Get(workspace)
	if !ok {
		return faas.Credentials{}, fmt.Errorf("workspace '%s': %w", workspace, faas.ErrNoCredentials)
	}

	return stored, nil
}

// clientForWorkspace resolves the workspace credentials and builds a client.
func clientForWorkspace(cmd *cobra.Command, workspace string) (faas.Client, error) {
	creds, err := resolveCredentials(workspace)
	if err != nil {
		return nil, err
	}

	return createClient(cmd, creds)
}

// functionName reads the function name from the manifest in dir.
func functionName(dir string) (string, error) {
	loaded, err := manifest.Load(dir)
	if err != nil {
		return "", err
	}

	return loaded.Name, nil
}

// confirm asks before a destructive action unless yes is set. Without a
// terminal on stdin there is nobody to ask.
func confirm(cmd *cobra.Command, warning string, yes bool) error {
	if yes {
		return nil
	}

	input := cmd.InOrStdin()
	if file, ok := input.(*os.File); ok && !term.IsTerminal(int(file.Fd())) {
		return constants.ErrConfirmationRequired
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, color.RedString("WARNING: "))
	_, _ = fmt.Fprintln(out, warning)
	_, _ = fmt.Fprint(out, "Are you sure? [y/N] ")

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != constants.Yes {
		return constants.ErrCancelled
	}

	return nil
}

// renderStructured writes v as JSON or YAML. It reports false for the table format.
func renderStructured(w io.Writer, v interface{}) (bool, error) {
	switch format := viper.GetString(KeyOutput); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		err := encoder.Encode(v)
		if err != nil {
			return true, err
		}

		return true, encoder.Close()
	case constants.FormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", ErrUnknownOutputFormat, format)
	}
}

func success(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(format, args...))
}

func maskSecret(secret string) string {
	if secret == "" {
		return constants.NotAvailable
	}

	return constants.MaskedSecret
}
