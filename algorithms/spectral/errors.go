package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned for sizes, hops or windows that cannot be used
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch is returned for spectrograms with rows of differing or zero length
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrImagResidue is returned when strict synthesis finds a frame that is not
	// conjugate symmetric enough to be real
	ErrImagResidue = errors.New("imaginary residue exceeds bound")
)

// ParameterError names the offending parameter and the constraint it broke
type ParameterError struct {
	Param      string
	Value      any
	Constraint string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Constraint)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// ShapeError reports the first spectrogram row whose length is wrong
type ShapeError struct {
	Row      int
	Length   int
	Expected int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: row %d has %d bins, expected %d", e.Row, e.Length, e.Expected)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func invalidParam(param string, value any, constraint string) error {
	return &ParameterError{Param: param, Value: value, Constraint: constraint}
}

type residueError struct {
	frame   int
	residue float64
	bound   float64
}

func (e *residueError) Error() string {
	return fmt.Sprintf("frame %d: imaginary residue %g exceeds bound %g", e.frame, e.residue, e.bound)
}

func (e *residueError) Unwrap() error {
	return ErrImagResidue
}
