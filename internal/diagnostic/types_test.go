package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.Empty())
	require.NoError(t, d.Err())

	w := d.AddWarning(CodeUnknownSkippedType, `skipped type "Dat" does not resolve`, "prettify.yaml", "Dat")
	w.Suggestions = []string{"Date", "Data"}

	assert.False(t, d.Empty())
	require.NoError(t, d.Err(), "warnings are not errors")
	assert.Equal(t,
		`prettify.yaml: [unknown-skipped-type] skipped type "Dat" does not resolve (did you mean Date, Data?)`,
		d.Warnings[0].String())

	d.AddError(CodeLoadWarning, "broken", "", "")
	require.Error(t, d.Err())
	assert.Equal(t, "[load-warning] broken", d.Err().Error())

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddWarning(CodeDuplicateSkipped, "dup", "", "Date")
	b.AddError(CodeLoadWarning, "bad", "", "")

	a.Merge(b)

	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
