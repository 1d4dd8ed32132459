// Package faasclient provides the entry point for constructing a client for
// the function hosting API that implements the faas.Client interface.
//
// It normalizes the configuration and wires the HTTP transport on top of the
// interfaces and types defined in the faas package.
//
// Quick start
//
//	cli, err := faasclient.New(&faas.Config{APIEndpoint: "api.faastruby.io"})
//	if err != nil { log.Fatal(err) }
//
//	// Or with the credentials of a workspace:
//	cli, err = faasclient.NewWithCredentials("https://api.faastruby.io", "key", "secret")
//
// The endpoint gets "https://" when no scheme is given, and a trailing slash
// is removed. The Config passed to New is copied and never modified.
package faasclient
