package lightcurve

import "math"

// BTJDOffset converts the mission-relative time column (BTJD) to a
// barycentric Julian date in the same time standard.
const BTJDOffset = 2457000.0

// pogson converts relative flux uncertainty into magnitudes
// (first-order propagation, 2.5/ln 10 ≈ 1.0857).
const pogson = 2.5 / math.Ln10

// derived holds the three per-row derived quantities. A masked field
// means the derivation was undefined for that row.
type derived struct {
	mag    Value
	magErr Value
	bjd    Value
}

// deriveRow computes magnitude, magnitude error, and shifted time for
// one row. The three are computed independently so the validity
// predicate can inspect all of them; undefined results come back masked
// rather than panicking or going through ±Inf arithmetic.
func deriveRow(zeroPoint float64, flux, fluxErr, t Value, offset float64) derived {
	d := derived{
		mag:    MaskedCell(),
		magErr: MaskedCell(),
		bjd:    MaskedCell(),
	}

	// Magnitude needs a positive, finite, unmasked flux.
	if flux.Valid() && flux.Float > 0 {
		d.mag = Num(zeroPoint - 2.5*math.Log10(flux.Float))

		// The error term shares the flux conditions and additionally
		// needs a usable flux uncertainty.
		if fluxErr.Valid() {
			d.magErr = Num(pogson * (fluxErr.Float / flux.Float))
		}
	}

	if t.Valid() {
		d.bjd = Num(t.Float + offset)
	}

	return d
}
