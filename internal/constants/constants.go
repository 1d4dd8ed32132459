package constants

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and credentials files.
	ConfigFilePerm = 0600
)

// Configuration locations and defaults.
const (
	// ConfigDirName is the directory under $HOME holding CLI state.
	ConfigDirName = ".faas"

	// ConfigFileName is the CLI configuration file inside ConfigDirName.
	ConfigFileName = "config.yml"

	// CredentialsFileName is the per-workspace credentials file inside ConfigDirName.
	CredentialsFileName = "credentials.yml"

	// ManifestFileName is the function manifest read from a function directory.
	ManifestFileName = "function.yml"

	// EnvPrefix is the prefix for configuration environment variables.
	EnvPrefix = "FAAS"

	// DefaultAPIHost is the platform endpoint used when none is configured.
	DefaultAPIHost = "https://api.faastruby.io"

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "faas-client"

	// DefaultLogLevel is the CLI log level when none is configured.
	DefaultLogLevel = "warn"
)

// HTTP header names and values.
const (
	// HeaderAPIKey carries the workspace API key.
	HeaderAPIKey = "API-KEY"

	// HeaderAPISecret carries the workspace API secret.
	HeaderAPISecret = "API-SECRET"

	// HeaderContentType is the content type header.
	HeaderContentType = "Content-Type"

	// HeaderAccept is the accept header.
	HeaderAccept = "Accept"

	// HeaderUserAgent is the user agent header.
	HeaderUserAgent = "User-Agent"

	// HeaderLocation is read from redirect responses.
	HeaderLocation = "Location"

	// HeaderRequestID correlates client logs across redirect hops.
	HeaderRequestID = "X-Request-ID"

	// HeaderBenchmark asks the platform to report invocation timing.
	HeaderBenchmark = "Benchmark"

	// ContentTypeJSON is the JSON media type.
	ContentTypeJSON = "application/json"
)

// Management API paths, relative to the versioned API root.
const (
	// APIPathWorkspaces for workspaces endpoint.
	APIPathWorkspaces = "/workspaces"

	// APIPathCredentials is appended to a workspace path.
	APIPathCredentials = "/credentials"

	// APIPathDeploy is appended to a workspace path.
	APIPathDeploy = "/deploy"

	// APIPathFunctions is appended to a workspace path.
	APIPathFunctions = "/functions"
)

// Deploy upload settings.
const (
	// DeployFormField is the multipart field holding the package.
	DeployFormField = "package"

	// PackageExtension is the extension of built deploy packages.
	PackageExtension = ".zip"
)

// Boolean string constants.
const (
	// Yes is the long confirmation answer.
	Yes = "yes"

	// BooleanTrue string representation.
	BooleanTrue = "true"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
