package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDisallowedCharacterClass(t *testing.T) {
	for _, c := range []string{"<", ">", "{", "}", "(", ")", "[", "]", ";", `"`, "'", "$", ".", "#"} {
		assert.True(t, IsDisallowed("abc"+c+"def"), "char %q", c)
	}
}

func TestIsDisallowedScriptTags(t *testing.T) {
	assert.True(t, IsDisallowed("<script>alert</script>"))
	assert.True(t, IsDisallowed("x</script>"))
}

func TestIsDisallowedAllowsPlainText(t *testing.T) {
	cases := []string{
		"",
		"YOUR API KEY",
		"Full Cardio",
		"user_123-abc",
		"Circuit Training: 20/40 @ home!",
		"Ñandú è über",
	}
	for _, s := range cases {
		assert.False(t, IsDisallowed(s), "input %q", s)
	}
}

func TestFieldErrorMatchesSentinel(t *testing.T) {
	err := Field("tenant name", "acme.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDisallowed))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "tenant name", verr.Field)
	assert.NotContains(t, err.Error(), "acme.com")
}

func TestFieldsReturnsFirstFailure(t *testing.T) {
	err := Fields("api key", "ok", "company", "bad;", "user id", "also$bad")
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "company", verr.Field)

	assert.NoError(t, Fields("api key", "ok", "company", "fine"))
}

func TestValueChecksSlicesAndSkipsScalars(t *testing.T) {
	assert.NoError(t, Value("age", 30))
	assert.NoError(t, Value("flag", true))
	assert.NoError(t, Value("exercises", []string{"Squats", "Jumping Jack"}))
	assert.Error(t, Value("exercises", []string{"Squats", "Lunges()"}))
	assert.Error(t, Value("mixed", []any{"ok", "<b>"}))
}

func TestValueChecksByKind(t *testing.T) {
	type label string
	s := "fine"
	assert.NoError(t, Value("ratio", 1.5))
	assert.NoError(t, Value("ptr", &s))
	assert.NoError(t, Value("nil", nil))
	assert.NoError(t, Value("grid", [2][]string{{"a"}, {"b"}}))

	assert.ErrorIs(t, Value("label", label("a'b")), ErrDisallowed)
	assert.ErrorIs(t, Value("nested", []any{[]any{"x;"}}), ErrDisallowed)
	assert.ErrorIs(t, Value("map", map[string]any{"x": "ok"}), ErrDisallowed)
	assert.ErrorIs(t, Value("func", func() {}), ErrDisallowed)
	assert.ErrorIs(t, Value("chan", make(chan int)), ErrDisallowed)
	assert.ErrorIs(t, Value("nan", math.NaN()), ErrDisallowed)
	assert.ErrorIs(t, Value("inf", math.Inf(-1)), ErrDisallowed)
}
