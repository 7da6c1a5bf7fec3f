// Package storage provides object storage backends for uploaded images.
package storage

import (
	"errors"
	"strings"
)

var errEmptyKey = errors.New("storage key is required")

// publicURL joins the public base URL and an object key.
func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
