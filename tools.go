//go:build tools

package tools

// Mocks under pkg/*/mocks are generated by mockery (see .mockery.yaml).
// Run: go run github.com/vektra/mockery/v2 (from the module root).
import (
	_ "github.com/vektra/mockery/v2"
)
