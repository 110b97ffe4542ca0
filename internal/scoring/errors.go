package scoring

import "errors"

var (
	// ErrUnsupportedMethod is returned when a method name does not match
	// any known scoring method.
	ErrUnsupportedMethod = errors.New("unsupported scoring method")

	// ErrUnknownMode is returned for a gene-set mode outside UP/DN/BOTH.
	ErrUnknownMode = errors.New("unknown gene set mode")

	// ErrUnknownNormalization is returned for a normalization mode outside
	// standard/theoretical.
	ErrUnknownNormalization = errors.New("unknown normalization method")

	// ErrDegenerateDispersion is returned when a method divides by a
	// population dispersion that is zero, instead of letting infinities
	// propagate.
	ErrDegenerateDispersion = errors.New("degenerate dispersion: zero spread in expression column")

	// ErrBothModeEmptySide is returned when a BOTH-mode gene set is missing
	// its up or down gene list.
	ErrBothModeEmptySide = errors.New("BOTH mode gene set requires non-empty up and down gene lists")

	// ErrMissingRankColumns is returned when ranked scoring is requested on
	// a table built without rank columns.
	ErrMissingRankColumns = errors.New("table has no rank columns")
)
