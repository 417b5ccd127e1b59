// Package storage provides blob storage for uploaded documents.
// It defines a System interface with a filesystem implementation for
// single-node deployments and a remote implementation backed by an
// authenticated HTTP blob API.
package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is malformed or contains invalid characters.
	// This includes empty keys and path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrMissingToken indicates the remote provider has no credential configured.
	ErrMissingToken = errors.New("storage: missing access token")

	// ErrUpstream indicates the remote blob API rejected or failed a request.
	ErrUpstream = errors.New("storage: upstream request failed")
)
