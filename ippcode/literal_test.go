package ippcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInteger(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5", true},
		{"+5", true},
		{"-5", true},
		{"0042", true},
		{"", false},
		{"+", false},
		{"-", false},
		{"5x", false},
		{"0x1F", false},
		{"1 2", false},
		{"--5", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsValidInteger(tc.in), "IsValidInteger(%q)", tc.in)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"x", true},
		{"counter1", true},
		{"_tmp", true},
		{"-", true},
		{"$var&%*!?", true},
		{"über", true},
		{"a-b_c", true},
		{"", false},
		{"1abc", false},
		{"a b", false},
		{"a.b", false},
		{"a@b", false},
		{"a#b", false},
		{"a/b", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsValidIdentifier(tc.in), "IsValidIdentifier(%q)", tc.in)
	}
}

func TestIsValidString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"hello", true},
		{`a\065b`, true},
		{`\000`, true},
		{`\0650`, true},
		{`x\032y\010`, true},
		{`<&>"'`, true},
		{`a\65b`, false},
		{`\`, false},
		{`abc\`, false},
		{`\1`, false},
		{`\12`, false},
		{`\n`, false},
		{`\\065`, false},
		{`\065\x`, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsValidString(tc.in), "IsValidString(%q)", tc.in)
	}
}

func TestBoolAndNilLiterals(t *testing.T) {
	assert.True(t, IsValidBool("true"))
	assert.True(t, IsValidBool("false"))
	assert.False(t, IsValidBool("True"))
	assert.False(t, IsValidBool(""))
	assert.True(t, IsValidNil("nil"))
	assert.False(t, IsValidNil("NIL"))
	assert.False(t, IsValidNil(""))
}

func TestValidateLiteral(t *testing.T) {
	require.NoError(t, ValidateLiteral(KindInt, "-12"))
	require.NoError(t, ValidateLiteral(KindString, ""))

	err := ValidateLiteral(KindInt, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLexical))

	err = ValidateLiteral(KindBool, "yes")
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "yes", e.Token)
}

func TestValidateLiteralIdempotent(t *testing.T) {
	accepted := map[Kind][]string{
		KindInt:    {"0", "+7", "-99"},
		KindBool:   {"true", "false"},
		KindString: {"", `a\035b`, "x<y"},
		KindNil:    {"nil"},
	}
	for kind, lits := range accepted {
		for _, lit := range lits {
			require.NoError(t, ValidateLiteral(kind, lit))
			require.NoError(t, ValidateLiteral(kind, lit), "second validation of %s@%s", kind, lit)
		}
	}
}
