package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proclimb/minisystem/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last+tag@sub.example.co.jp",
		"a_b%c@example.org",
	}
	for _, email := range valid {
		t.Run("accepts "+email, func(t *testing.T) {
			assert.True(t, validator.ValidEmail("email", email).Check())
		})
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user@example.c",
		"user@@example.com",
		"user@exa mple.com",
		"user@example..com",
		"ユーザー@example.com",
	}
	for _, email := range invalid {
		t.Run("rejects "+email, func(t *testing.T) {
			rule := validator.ValidEmail("email", email)
			assert.False(t, rule.Check())
			assert.Equal(t, validator.KindMalformed, rule.Error.Kind)
		})
	}
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MaxNum("document1", int64(2<<20), 2<<20).Check())
	assert.False(t, validator.MaxNum("document1", int64(2<<20+1), 2<<20).Check())
}

func TestInList(t *testing.T) {
	t.Parallel()

	allowed := []string{"image/png", "image/jpeg"}
	assert.True(t, validator.InList("document1", "image/png", allowed).Check())

	rule := validator.InList("document1", "image/gif", allowed)
	assert.False(t, rule.Check())
	assert.Equal(t, allowed, rule.Error.TranslationValues["allowed"])
}
