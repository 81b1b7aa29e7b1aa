package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullColumns is a GISTEMP-style header: Year, twelve months, and the
// seasonal aggregate columns the reshaper ignores.
var fullColumns = []string{
	"Year", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "J-D", "D-N",
}

func TestReshape(t *testing.T) {
	t.Run("emits one observation per non-missing cell", func(t *testing.T) {
		table := RawTable{
			Region:  RegionGlobal,
			Columns: fullColumns,
			Rows: []RawRow{
				{Year: 1950, Anomalies: map[Month]float64{"Jan": -0.30, "Feb": -0.19, "Dec": -0.22}},
				{Year: 1951, Anomalies: map[Month]float64{"Jan": -0.07}},
			},
		}

		obs, err := Reshape(table)
		require.NoError(t, err)
		require.Len(t, obs, 4)

		assert.Equal(t, Observation{Region: RegionGlobal, Year: 1950, Month: "Jan", Anomaly: -0.30}, obs[0])
		assert.Equal(t, Observation{Region: RegionGlobal, Year: 1950, Month: "Feb", Anomaly: -0.19}, obs[1])
		assert.Equal(t, Observation{Region: RegionGlobal, Year: 1950, Month: "Dec", Anomaly: -0.22}, obs[2])
		assert.Equal(t, Observation{Region: RegionGlobal, Year: 1951, Month: "Jan", Anomaly: -0.07}, obs[3])
	})

	t.Run("cardinality equals count of non-missing cells", func(t *testing.T) {
		rows := make([]RawRow, 0, 10)
		nonMissing := 0
		for year := 1900; year < 1910; year++ {
			anomalies := map[Month]float64{}
			for i, m := range Months {
				// Leave a different month missing each year.
				if i == year%12 {
					continue
				}
				anomalies[m] = float64(i) / 100
				nonMissing++
			}
			rows = append(rows, RawRow{Year: year, Anomalies: anomalies})
		}

		obs, err := Reshape(RawTable{Region: RegionSouthern, Columns: fullColumns, Rows: rows})
		require.NoError(t, err)
		assert.Len(t, obs, nonMissing)
	})

	t.Run("region tag carried on every observation", func(t *testing.T) {
		table := RawTable{
			Region:  RegionNorthern,
			Columns: fullColumns,
			Rows:    []RawRow{{Year: 2000, Anomalies: map[Month]float64{"Jun": 0.4, "Jul": 0.5}}},
		}

		obs, err := Reshape(table)
		require.NoError(t, err)
		for _, o := range obs {
			assert.Equal(t, RegionNorthern, o.Region)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		obs, err := Reshape(RawTable{Region: RegionGlobal, Columns: fullColumns})
		require.NoError(t, err)
		assert.Empty(t, obs)
	})
}

func TestReshape_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name            string
		columns         []string
		expectedMissing []string
	}{
		{
			name:            "year column absent",
			columns:         []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			expectedMissing: []string{"Year"},
		},
		{
			name:            "month column absent",
			columns:         []string{"Year", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov"},
			expectedMissing: []string{"Dec"},
		},
		{
			name:            "no header at all",
			columns:         nil,
			expectedMissing: []string{"Year", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := RawTable{
				Region:  RegionSouthern,
				Columns: tt.columns,
				Rows:    []RawRow{{Year: 1990, Anomalies: map[Month]float64{"Jan": 0.1}}},
			}

			obs, err := Reshape(table)
			require.Error(t, err)
			assert.Nil(t, obs, "no partial output on schema mismatch")

			var mismatch *SchemaMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, RegionSouthern, mismatch.Region)
			assert.Equal(t, tt.expectedMissing, mismatch.Missing)
		})
	}
}
