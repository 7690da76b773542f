package stooq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Open,High,Low,Close,Volume
2024-01-02,4745.20,4754.33,4722.67,4742.83,3743050000
2024-01-03,4725.07,4729.29,4699.71,4704.81,3950760000
2024-01-04,4697.42,4726.78,4687.53,4688.68,3715480000
`

func TestParseDailyCSV(t *testing.T) {
	points, err := parseDailyCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01-02", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, 4742.83, points[0].Close)
	assert.Equal(t, 4688.68, points[2].Close)
}

func TestParseDailyCSVSkipsMalformedRows(t *testing.T) {
	csv := "Date,Open,High,Low,Close,Volume\nnot-a-date,1,2,3,4,5\n2024-01-02,1,2,3,bad,5\n2024-01-03,1,2,3,4.5,5\n"
	points, err := parseDailyCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 4.5, points[0].Close)
}

func TestParseDailyCSVHeaderOnly(t *testing.T) {
	points, err := parseDailyCSV(strings.NewReader("Date,Open,High,Low,Close,Volume\n"))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "^spx", normalizeSymbol("^GSPC"))
	assert.Equal(t, "^ndq", normalizeSymbol("^IXIC"))
	assert.Equal(t, "aapl", normalizeSymbol(" AAPL "))
}
