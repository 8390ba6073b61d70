// Package dwollaclient is the entry point for building a Dwolla API client
// that implements the dwolla.Client interface.
//
// It wires configuration, the HTTP transport, token management and the
// resource clients defined by the dwolla package. Applications build a client
// here and then reach resources through the returned dwolla.Client, for
// example Customers(), Transfers() or WebhookSubscriptions().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
//	  "github.com/fivetwenty-io/dwolla-client/pkg/dwollaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := dwollaclient.NewSandbox(ctx, os.Getenv("DWOLLA_CLIENT_ID"), os.Getenv("DWOLLA_CLIENT_SECRET"))
//	  if err != nil { log.Fatal(err) }
//
//	  location, err := cli.Customers().Create(ctx, &dwolla.CreateCustomerRequest{
//	    FirstName: "Jane",
//	    LastName:  "Merchant",
//	    Email:     "jane@example.com",
//	    Type:      dwolla.CustomerTypeReceiveOnly,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  id, _ := dwolla.ParseID(location)
//	  customer, err := cli.Customers().Get(ctx, id)
//	  if err != nil { log.Fatal(err) }
//	  _ = customer
//	}
//
// # Configuration
//
// For full control pass a dwolla.Config to New. APIEndpoint wins over
// Environment; a TokenStore lets several processes share one token; Logger
// and Debug turn on request logging with credentials masked.
//
// # Helpers
//
// NewWithClientCredentials and NewSandbox wrap New with the matching
// configuration.
package dwollaclient
