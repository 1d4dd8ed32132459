// Package faas provides types, interfaces, and helpers for working with the
// serverless function hosting API.
//
// # Overview
//
// The faas package defines the configuration, the resource client interfaces
// (WorkspacesClient, FunctionsClient) and the Result type every API call
// returns. A concrete implementation is provided by the faasclient package,
// which wires configuration and the HTTP transport. Most consumers should
// import faasclient to construct a client and then use the interfaces here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/faas-client/pkg/faas"
//	  "github.com/fivetwenty-io/faas-client/pkg/faasclient"
//	)
//
//	func example() {
//	  cli, err := faasclient.New(&faas.Config{
//	    APIEndpoint: "https://api.faastruby.io",
//	    Credentials: faas.Credentials{APIKey: "key", APISecret: "secret"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  result, err := cli.Workspaces().Get(context.Background(), "my-workspace")
//	  if err != nil { log.Fatal(err) }
//	  if result.Failed() {
//	    for _, msg := range result.ErrorMessages() { log.Println(msg) }
//	  }
//	}
//
// # Results
//
// Every operation except Run returns a Result, which is either a *Success or
// a *Failure. The status code to outcome mapping lives in Classify and is the
// only place HTTP status semantics are interpreted:
//
//	401, 402, 404, 409, 422, 408, 500 -> *Failure with formatted messages
//	any other status                   -> *Success, soft errors from body.errors
//
// Run returns the untouched *RunResponse for every status, because function
// output is user-defined.
//
// # Errors
//
// Transport failures are returned as Go errors wrapped with operation context.
// A body that is not valid JSON on a status expected to carry JSON is reported
// as a *ProtocolError; use IsProtocolError to detect it.
package faas
