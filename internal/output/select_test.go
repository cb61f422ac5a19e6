package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	res := buildTestProjection(t)

	v, err := Select(res, "$.name")
	require.NoError(t, err)
	assert.Equal(t, "Fixture", v)

	v, err = Select(res, "$.properties[0].summary.sold")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Select(res, "$.investments[*].id")
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"cash", "brokerage"}, v)
}

func TestSelectErrors(t *testing.T) {
	res := buildTestProjection(t)
	_, err := Select(res, "$.[")
	assert.Error(t, err)
}

func TestSelectFormatter(t *testing.T) {
	res := buildTestProjection(t)
	out, err := SelectFormatter("$.properties[0].summary.saleCalendarYear").Format(res)
	require.NoError(t, err)

	var year int
	require.NoError(t, json.Unmarshal(out, &year))
	assert.Equal(t, 2028, year)
}
