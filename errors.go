package geoquad

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index"
)

var (
	// ErrNotFound is returned when a point ID is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrEmptyInput is returned when the tree is built from zero points.
	// Not recoverable: an empty set has no well-defined bounding box.
	ErrEmptyInput = errors.New("at least one point is required")
)

// ErrInvalidPoint indicates an input point with NaN or infinite
// coordinates. Invalid points are rejected at construction, never
// silently dropped.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidPoint struct {
	ID    uint32
	Point geo.Point
	cause error
}

func (e *ErrInvalidPoint) Error() string {
	return fmt.Sprintf("invalid point %d: non-finite coordinates %s", e.ID, e.Point)
}

func (e *ErrInvalidPoint) Unwrap() error { return e.cause }

// ErrInvalidGeometry indicates a malformed query shape specification.
// The core does not attempt to repair invalid shapes.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidGeometry struct {
	Reason string
	cause  error
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

func (e *ErrInvalidGeometry) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, index.ErrEmptyInput) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}

	var ip *index.ErrInvalidPoint
	if errors.As(err, &ip) {
		return &ErrInvalidPoint{ID: ip.ID, Point: ip.Point, cause: err}
	}

	var ig *geometry.ErrInvalidGeometry
	if errors.As(err, &ig) {
		return &ErrInvalidGeometry{Reason: ig.Reason, cause: err}
	}

	return err
}
