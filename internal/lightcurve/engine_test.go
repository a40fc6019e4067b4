package lightcurve

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, time, flux, fluxErr []Value) *Table {
	t.Helper()
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("TIME", time))
	require.NoError(t, tbl.AddColumn("SAP_FLUX", flux))
	require.NoError(t, tbl.AddColumn("SAP_FLUX_ERR", fluxErr))
	return tbl
}

func TestEngineConvertReferenceFile(t *testing.T) {
	tbl := newTestTable(t,
		[]Value{Num(1000.0), Num(1001.0), Num(1002.0)},
		[]Value{Num(100.0), Num(-5.0), Num(50.0)},
		[]Value{Num(1.0), Num(0.2), Num(math.NaN())},
	)

	engine := NewEngine(DefaultParams(), nil)
	result, err := engine.Convert(context.Background(), HeaderMap{"TESSMAG": 10.0}, tbl, nil)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.ZeroPoint)
	assert.Equal(t, 2, result.Dropped)
	require.Len(t, result.Records, 1)

	assert.Equal(t, []string{
		"TIME", "SAP_FLUX", "SAP_FLUX_ERR",
		"Source_AMag_T1", "Source_AMag_Error_T1", "BJD_TDB",
	}, result.Columns)

	rec := result.Records[0]
	require.Len(t, rec, 6)
	assert.Equal(t, 1000.0, rec[0].Float)
	assert.Equal(t, 100.0, rec[1].Float)
	assert.Equal(t, 1.0, rec[2].Float)
	assert.InDelta(t, 5.0, rec[3].Float, 1e-12)
	assert.InDelta(t, 0.010857362047, rec[4].Float, 1e-9)
	assert.Equal(t, 2458000.0, rec[5].Float)
}

func TestEngineConvertZeroPointHandling(t *testing.T) {
	tbl := newTestTable(t,
		[]Value{Num(1000.0)},
		[]Value{Num(100.0)},
		[]Value{Num(1.0)},
	)
	engine := NewEngine(DefaultParams(), nil)
	override := 5.0

	t.Run("header keyword wins over override", func(t *testing.T) {
		result, err := engine.Convert(context.Background(), HeaderMap{"TESSMAG": 10.0}, tbl, &override)
		require.NoError(t, err)
		assert.Equal(t, 10.0, result.ZeroPoint)
	})

	t.Run("override used when keyword absent", func(t *testing.T) {
		result, err := engine.Convert(context.Background(), HeaderMap{}, tbl, &override)
		require.NoError(t, err)
		assert.Equal(t, 5.0, result.ZeroPoint)
		assert.InDelta(t, 0.0, result.Records[0][3].Float, 1e-12)
	})

	t.Run("no zero point aborts before any row work", func(t *testing.T) {
		result, err := engine.Convert(context.Background(), HeaderMap{}, tbl, nil)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNoZeroPoint)
	})
}

func TestEngineConvertMissingColumns(t *testing.T) {
	engine := NewEngine(DefaultParams(), nil)
	hdr := HeaderMap{"TESSMAG": 10.0}

	tests := []struct {
		name    string
		build   func(t *testing.T) *Table
		missing string
	}{
		{
			name: "no flux column",
			build: func(t *testing.T) *Table {
				tbl := NewTable()
				require.NoError(t, tbl.AddColumn("TIME", []Value{Num(1)}))
				require.NoError(t, tbl.AddColumn("SAP_FLUX_ERR", []Value{Num(1)}))
				return tbl
			},
			missing: "SAP_FLUX",
		},
		{
			name: "no flux error column",
			build: func(t *testing.T) *Table {
				tbl := NewTable()
				require.NoError(t, tbl.AddColumn("TIME", []Value{Num(1)}))
				require.NoError(t, tbl.AddColumn("SAP_FLUX", []Value{Num(1)}))
				return tbl
			},
			missing: "SAP_FLUX_ERR",
		},
		{
			name: "no time column",
			build: func(t *testing.T) *Table {
				tbl := NewTable()
				require.NoError(t, tbl.AddColumn("SAP_FLUX", []Value{Num(1)}))
				require.NoError(t, tbl.AddColumn("SAP_FLUX_ERR", []Value{Num(1)}))
				return tbl
			},
			missing: "TIME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Convert(context.Background(), hdr, tt.build(t), nil)
			require.Error(t, err)

			var colErr *MissingColumnError
			require.ErrorAs(t, err, &colErr)
			assert.Equal(t, tt.missing, colErr.Column)
		})
	}
}

func TestEngineConvertOrderAndPassthrough(t *testing.T) {
	// Even rows valid, odd rows poisoned, plus an extra passthrough
	// column that must survive verbatim in its original position.
	const n = 50
	timeVals := make([]Value, n)
	fluxVals := make([]Value, n)
	errVals := make([]Value, n)
	quality := make([]Value, n)
	for i := 0; i < n; i++ {
		timeVals[i] = Num(float64(1000 + i))
		errVals[i] = Num(0.5)
		quality[i] = Num(float64(i * i))
		if i%2 == 0 {
			fluxVals[i] = Num(float64(10 + i))
		} else {
			fluxVals[i] = MaskedCell()
		}
	}

	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("TIME", timeVals))
	require.NoError(t, tbl.AddColumn("SAP_FLUX", fluxVals))
	require.NoError(t, tbl.AddColumn("QUALITY", quality))
	require.NoError(t, tbl.AddColumn("SAP_FLUX_ERR", errVals))

	engine := NewEngine(DefaultParams(), nil)
	result, err := engine.Convert(context.Background(), HeaderMap{"TESSMAG": 10.0}, tbl, nil)
	require.NoError(t, err)

	assert.Equal(t, n/2, result.Dropped)
	require.Len(t, result.Records, n/2)
	assert.Equal(t, []string{
		"TIME", "SAP_FLUX", "QUALITY", "SAP_FLUX_ERR",
		"Source_AMag_T1", "Source_AMag_Error_T1", "BJD_TDB",
	}, result.Columns)

	for k, rec := range result.Records {
		i := 2 * k // surviving rows are the even ones, in input order
		assert.Equal(t, float64(1000+i), rec[0].Float)
		assert.Equal(t, float64(i*i), rec[2].Float, "passthrough cell")
		assert.Equal(t, float64(1000+i)+BTJDOffset, rec[6].Float)
	}
}

func TestEngineConvertIdempotent(t *testing.T) {
	tbl := newTestTable(t,
		[]Value{Num(1000), Num(1001), Num(1002), Num(1003)},
		[]Value{Num(250), Num(0), Num(13.5), Num(1e6)},
		[]Value{Num(2), Num(1), Num(0.05), Num(300)},
	)
	engine := NewEngine(DefaultParams(), nil)
	hdr := HeaderMap{"TESSMAG": 8.25}

	first, err := engine.Convert(context.Background(), hdr, tbl, nil)
	require.NoError(t, err)
	second, err := engine.Convert(context.Background(), hdr, tbl, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngineConvertParallelMatchesSerial(t *testing.T) {
	const n = 10000
	timeVals := make([]Value, n)
	fluxVals := make([]Value, n)
	errVals := make([]Value, n)
	for i := 0; i < n; i++ {
		timeVals[i] = Num(float64(i) / 48.0)
		errVals[i] = Num(1 + float64(i%7))
		switch {
		case i%97 == 0:
			fluxVals[i] = MaskedCell()
		case i%53 == 0:
			fluxVals[i] = Num(math.NaN())
		default:
			fluxVals[i] = Num(1000 + float64(i%311))
		}
	}
	tbl := newTestTable(t, timeVals, fluxVals, errVals)
	hdr := HeaderMap{"TESSMAG": 11.3}

	serial := NewEngine(DefaultParams(), nil)
	parallel := NewEngine(DefaultParams(), nil)
	parallel.SetConcurrency(8)

	want, err := serial.Convert(context.Background(), hdr, tbl, nil)
	require.NoError(t, err)
	got, err := parallel.Convert(context.Background(), hdr, tbl, nil)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestEngineConvertEmptyTable(t *testing.T) {
	tbl := newTestTable(t, nil, nil, nil)
	engine := NewEngine(DefaultParams(), nil)

	result, err := engine.Convert(context.Background(), HeaderMap{"TESSMAG": 10.0}, tbl, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.Dropped)
}
