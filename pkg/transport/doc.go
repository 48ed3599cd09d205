// Package transport serves the petclinic REST API over HTTP. It routes
// requests, decodes and encodes JSON bodies, and carries the cross-cutting
// HTTP middleware (request IDs, logging, panic recovery).
//
// The authorization pipeline is composed outside this package: transport
// only assumes that, by the time a protected handler runs, the access
// decision middleware has already allowed the request.
package transport
