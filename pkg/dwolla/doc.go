// Package dwolla provides types, interfaces, and helpers for working with the
// Dwolla v2 payments API.
//
// # Overview
//
// The dwolla package defines the domain types (Customer, FundingSource,
// Transfer, Document, WebhookSubscription, ...) and the interfaces for the
// resource-oriented clients (CustomersClient, TransfersClient, ...). A concrete
// implementation is provided by the dwollaclient package, which wires
// configuration, transport and token management. Most consumers import
// dwollaclient to construct a client and then use the interfaces defined here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
//	  "github.com/fivetwenty-io/dwolla-client/pkg/dwollaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := dwollaclient.New(ctx, &dwolla.Config{
//	    APIEndpoint:  dwollaclient.SandboxURL,
//	    ClientID:     "key",
//	    ClientSecret: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  customers, err := cli.Customers().List(ctx, &dwolla.CustomerListParams{Limit: 25})
//	  if err != nil { log.Fatal(err) }
//	  _ = customers
//	}
//
// # Authentication
//
// Every client owns one token manager. Access tokens are obtained with the
// OAuth2 client_credentials grant on first use, cached until they expire and
// refreshed on demand. Concurrent callers share a single refresh. When the API
// rejects a request with ExpiredAccessToken the client refreshes once and
// repeats the request once. A TokenStore can be configured to load a token
// saved by an earlier process and to save every newly acquired token.
//
// # Errors
//
// Every operation returns either a value or an error, never both:
//
//   - *TransportError: the request could not be sent or the response could not be read or decoded.
//   - *APIError: Dwolla answered with an error envelope (code, message, embedded errors).
//   - *AuthError: a token could not be obtained; it wraps the underlying APIError or TransportError.
//
// Helpers such as IsNotFound, IsValidationError and IsExpiredToken branch on
// common Dwolla error codes, and RequestID extracts the x-request-id of a failed
// call for support tickets.
//
// # Created resources
//
// Dwolla answers most create calls with 201 Created, an empty body and a
// Location header. Create operations therefore return the *url.URL of the new
// resource; use ParseID to extract its identifier.
package dwolla
