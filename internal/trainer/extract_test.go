package trainer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	planJson, err := ExtractJSONObject(`{"tips":["drink water"]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"tips":["drink water"]}`, planJson)

	// model reply wrapped in prose
	planJson, err = ExtractJSONObject("Sure! Here is your plan:\n\n" +
		`{"weeklyPlan":[{"day":"Monday"}],"tips":[]}` +
		"\n\nLet me know if you want changes.")
	require.NoError(t, err)
	assert.Equal(t, `{"weeklyPlan":[{"day":"Monday"}],"tips":[]}`, planJson)

	// markdown fenced
	planJson, err = ExtractJSONObject("```json\n{\"a\":1}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, planJson)

	// only the first top-level object is taken
	planJson, err = ExtractJSONObject(`{"first":1} and then {"second":2}`)
	require.NoError(t, err)
	assert.Equal(t, `{"first":1}`, planJson)
}

func TestExtractJSONObject_NestedAndStrings(t *testing.T) {
	nested := `{"dailyPlan":{"meals":[{"name":"Oats {steel-cut}","ingredients":["a \"quoted\" one"]}]},"tips":[]}`
	planJson, err := ExtractJSONObject("intro " + nested + " outro")
	require.NoError(t, err)
	assert.Equal(t, nested, planJson)
	assert.True(t, json.Valid([]byte(planJson)))

	// closing brace inside a string must not end the scan
	withBraceInString := `{"note":"use } sparingly","n":1}`
	planJson, err = ExtractJSONObject(withBraceInString)
	require.NoError(t, err)
	assert.Equal(t, withBraceInString, planJson)
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	_, err := ExtractJSONObject("")
	assert.ErrorIs(t, err, ErrNoJSONObject)

	_, err = ExtractJSONObject("no json here, just words")
	assert.ErrorIs(t, err, ErrNoJSONObject)

	// opened but never closed
	_, err = ExtractJSONObject(`{"weeklyPlan": [`)
	assert.ErrorIs(t, err, ErrNoJSONObject)
}
