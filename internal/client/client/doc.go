// Package client talks to the interestnet HTTP API.
//
// Client is the contract used by the CLI; HTTPClient implements it over
// net/http. After Register or Login the bearer token is kept in memory and
// attached to every authenticated call until Logout.
//
// Transport failures are reported as ErrUnavailable and 401 responses as
// ErrUnauthorized. Any other non-2xx answer becomes an *APIError carrying the
// status code and the server's message. Match them with errors.Is/errors.As.
package client
