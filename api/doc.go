// File: api/doc.go
// License: Apache-2.0

// Package api defines the contracts shared by the executor core and the code
// scheduled on it: futures, wakers, packet receivers, and the notify bridge.
// The package carries no implementation and depends only on the port types.
package api
