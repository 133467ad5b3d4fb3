// Package client talks to the Couple Diaries backend over gRPC.
//
// GRPCClient attaches the access token to every call, refreshes it once when
// the server reports it expired, and maps gRPC status codes to the sentinel
// errors in errors.go so callers can match them with errors.Is.
package client
