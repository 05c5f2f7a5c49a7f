package snr

import "errors"

// Domain errors raised by recomputation. None are fatal: the front end keeps
// the prior outputs on screen and surfaces the message.
var (
	// ErrMerged indicates the requested age is beyond the merger time, when
	// the remnant has dissolved into the ISM.
	ErrMerged = errors.New("snr: remnant has merged with the ISM at the requested age")

	// ErrParameterBounds indicates an input outside its physical range.
	ErrParameterBounds = errors.New("snr: parameter out of valid bounds")

	// ErrLossStart indicates a fractional-energy-loss start time outside the
	// ST/PDS window.
	ErrLossStart = errors.New("snr: fractional-loss start time outside the ST/PDS window")
)

// InputError wraps a domain error with the offending parameter.
type InputError struct {
	Param   string
	Value   float64
	Wrapped error
}

func (e *InputError) Error() string {
	return e.Wrapped.Error() + ": " + e.Param
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
