package fits

import (
	"fmt"

	"github.com/astrogo/fitsio"

	"lcexport/internal/lightcurve"
)

// LightCurveTable reads the binary table stored in the i-th HDU
// (HDU 1 for TESS light-curve products) into a columnar table. Column
// order follows the file. Cells that are not scalar numbers come back
// masked so every column keeps the full row count.
func (f *File) LightCurveTable(i int) (*lightcurve.Table, error) {
	if f.NumHDUs() <= i {
		return nil, fmt.Errorf("%s has no HDU %d, found %d HDU(s)", f.path, i, f.NumHDUs())
	}

	hdu := f.fits.HDU(i)
	tbl, ok := hdu.(*fitsio.Table)
	if !ok {
		return nil, fmt.Errorf("HDU %d of %s is %v, not a table HDU", i, f.path, hdu.Type())
	}

	nrows := int(tbl.NumRows())
	names := make([]string, 0, tbl.NumCols())
	cells := make(map[string][]lightcurve.Value, tbl.NumCols())
	for _, col := range tbl.Cols() {
		names = append(names, col.Name)
		cells[col.Name] = make([]lightcurve.Value, 0, nrows)
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, fmt.Errorf("read table rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		record := make(map[string]interface{}, len(names))
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		for _, name := range names {
			if v, ok := coerceFloat(record[name]); ok {
				cells[name] = append(cells[name], lightcurve.Num(v))
			} else {
				cells[name] = append(cells[name], lightcurve.MaskedCell())
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table rows: %w", err)
	}

	out := lightcurve.NewTable()
	for _, name := range names {
		if err := out.AddColumn(name, cells[name]); err != nil {
			return nil, fmt.Errorf("assemble table: %w", err)
		}
	}
	return out, nil
}
