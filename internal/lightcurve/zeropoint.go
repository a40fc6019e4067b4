package lightcurve

// ConfigurationError reports a run-level configuration failure. It is
// fatal to the conversion and is raised before any row is processed,
// unlike per-row data-quality drops which are routine.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Reason
}

// ErrNoZeroPoint is returned when neither the header keyword nor a
// caller override can supply a zero point.
var ErrNoZeroPoint = &ConfigurationError{Reason: "no zero point available"}

// ResolveZeroPoint produces the single zero-point magnitude for a run.
//
// The header keyword, when present, wins unconditionally over the caller
// override. That priority is long-standing behavior and downstream
// outputs depend on it, so it is kept even though an explicit override
// might be expected to win. With the keyword absent the override is
// used; with neither, resolution fails with ErrNoZeroPoint.
func ResolveZeroPoint(hdr Header, keyword string, override *float64) (float64, error) {
	if hdr != nil {
		if zp, ok := hdr.Lookup(keyword); ok {
			return zp, nil
		}
	}
	if override != nil {
		return *override, nil
	}
	return 0, ErrNoZeroPoint
}
