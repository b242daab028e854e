// Package testutil provides shared test doubles and assertions for dispatcher tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertCalls asserts that the module saw exactly the given calls, in order.
func AssertCalls(t *testing.T, expected []Call, module *RecordingModule, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected, module.Calls(), msgAndArgs...)
}

// AssertOutcomeIDs asserts the report's outcomes cover the given mount ids, in order.
func AssertOutcomeIDs(t *testing.T, expected []string, report *entities.Report, msgAndArgs ...interface{}) {
	t.Helper()
	require.NotNil(t, report)

	ids := make([]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		ids = append(ids, o.Mount.ID)
	}
	assert.Equal(t, expected, ids, msgAndArgs...)
}
