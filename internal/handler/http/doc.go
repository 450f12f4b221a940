// Package http implements the REST transport of the marketplace.
//
// It wires the chi router, parses multipart and urlencoded bodies into
// service requests, resolves bearer tokens to accounts and maps service error
// kinds onto HTTP statuses. Tracing, access logging, compression and panic
// recovery run as middleware before requests reach the service layer.
package http
