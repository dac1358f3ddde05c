//go:build !cgo

package main

import (
	"context"
	"errors"

	"github.com/dusk-indust/asptree/internal/graph"
)

func persistGraph(_ context.Context, _ string, _ *graph.Graph) error {
	return errors.New("-db requires a cgo build")
}
