// Package handlers implements the HTTP endpoints of the post-processing
// service.
package handlers
