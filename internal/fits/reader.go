package fits

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"lcexport/internal/lightcurve"
)

// File is an open FITS container.
type File struct {
	path string
	r    *os.File
	fits *fitsio.File
}

// Open opens the FITS file at path for reading.
func Open(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	f, err := fitsio.Open(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("parse FITS container %s: %w", path, err)
	}

	return &File{path: path, r: r, fits: f}, nil
}

// Close releases the container and the underlying file.
func (f *File) Close() error {
	if err := f.fits.Close(); err != nil {
		f.r.Close()
		return err
	}
	return f.r.Close()
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// NumHDUs returns the number of HDUs in the container.
func (f *File) NumHDUs() int {
	return len(f.fits.HDUs())
}

// Header is a keyword lookup over one HDU's header cards. It implements
// lightcurve.Header.
type Header struct {
	hdr *fitsio.Header
}

// PrimaryHeader returns the header of HDU 0, where calibration keywords
// such as TESSMAG live.
func (f *File) PrimaryHeader() *Header {
	return &Header{hdr: f.fits.HDU(0).Header()}
}

// Lookup returns the numeric value of a header keyword, reporting
// whether the keyword is present with a scalar numeric value.
func (h *Header) Lookup(keyword string) (float64, bool) {
	card := h.hdr.Get(keyword)
	if card == nil {
		return 0, false
	}
	return coerceFloat(card.Value)
}

var _ lightcurve.Header = (*Header)(nil)

// Card is one header card of an HDU.
type Card struct {
	Name    string
	Value   interface{}
	Comment string
}

// HeaderCards returns the cards of the i-th HDU in file order.
func (f *File) HeaderCards(i int) ([]Card, error) {
	if i < 0 || i >= f.NumHDUs() {
		return nil, fmt.Errorf("invalid HDU index %d, file has %d HDU(s)", i, f.NumHDUs())
	}
	hdr := f.fits.HDU(i).Header()
	cards := make([]Card, 0, len(hdr.Keys()))
	for _, key := range hdr.Keys() {
		c := hdr.Get(key)
		if c == nil {
			continue
		}
		cards = append(cards, Card{Name: c.Name, Value: c.Value, Comment: c.Comment})
	}
	return cards, nil
}

// HDUName returns the name and type of the i-th HDU for reporting.
func (f *File) HDUName(i int) string {
	hdu := f.fits.HDU(i)
	if name := hdu.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%v", hdu.Type())
}

// coerceFloat converts the scalar numeric types fitsio hands back into
// float64. Strings, booleans, and anything non-scalar do not coerce.
func coerceFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
