package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubstitute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		from  string
		to    string
	}{
		{name: "trailing slash", input: ":s/One/Two/", from: "One", to: "Two"},
		{name: "no trailing slash", input: ":s/One/Two", from: "One", to: "Two"},
		{name: "global flag ignored", input: ":s/One/Two/g", from: "One", to: "Two"},
		{name: "whole buffer range", input: ":%s/red/green/", from: "red", to: "green"},
		{name: "missing colon", input: "s/a/b/", from: "a", to: "b"},
		{name: "empty replacement", input: ":s/x//", from: "x", to: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.input)

			require.NoError(t, res.Err)
			require.NotNil(t, res.Substitution)
			assert.Equal(t, tt.from, res.Substitution.From)
			assert.Equal(t, tt.to, res.Substitution.To)
			assert.Equal(t, `Replaced all occurrences of "`+tt.from+`" with "`+tt.to+`"`, res.Message)
		})
	}
}

func TestParseInvalidSubstitute(t *testing.T) {
	res := Parse(":s/Two")

	assert.ErrorIs(t, res.Err, ErrInvalidSubstitute)
	assert.Nil(t, res.Substitution)
	assert.Equal(t, "Invalid substitute command format", res.Message)
}

func TestParseEmptyPattern(t *testing.T) {
	res := Parse(":s//x/")

	assert.ErrorIs(t, res.Err, ErrEmptyPattern)
	assert.Nil(t, res.Substitution)
	assert.Equal(t, "Empty search pattern", res.Message)
}

func TestParseUnknownCommand(t *testing.T) {
	for _, input := range []string{":wq", ":", "", ":sub/a/b", ":S/a/b/"} {
		res := Parse(input)

		assert.ErrorIs(t, res.Err, ErrUnknownCommand, "input %q", input)
		assert.Nil(t, res.Substitution)
		assert.Equal(t, "Unknown command: "+input, res.Message)
	}
}

func TestParseSlashInPatternIsSplit(t *testing.T) {
	res := Parse(":s/a/b/c/")

	require.NoError(t, res.Err)
	assert.Equal(t, "a", res.Substitution.From)
	assert.Equal(t, "b", res.Substitution.To)
}
