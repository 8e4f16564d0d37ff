// internal/util/ids.go
// ID generator for request correlation.

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}
