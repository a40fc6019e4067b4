package lightcurve

// rowValid decides whether a row survives into the output. All three
// raw inputs must be present and finite, and both derived photometric
// quantities must have come out defined and finite. A single failing
// condition drops the whole row; there is no partial-row output. The
// predicate is position-independent and has no side effects.
func rowValid(flux, fluxErr, t Value, d derived) bool {
	return flux.Valid() &&
		fluxErr.Valid() &&
		t.Valid() &&
		d.mag.Valid() &&
		d.magErr.Valid()
}
