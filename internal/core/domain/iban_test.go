package domain_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIBAN_Shape(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		iban, err := domain.GenerateIBAN()
		require.NoError(t, err)

		assert.Len(t, iban, 20)
		assert.True(t, strings.HasPrefix(iban, domain.IBANPrefix))
		assert.True(t, domain.IsValidIBAN(iban), "generated %q should be valid", iban)
		seen[iban] = struct{}{}
	}
	// 10^18 possibilities; 200 draws colliding would point at a broken generator.
	assert.Greater(t, len(seen), 190)
}

func TestIsValidIBAN(t *testing.T) {
	assert.True(t, domain.IsValidIBAN("LT000000000000000000"))
	assert.True(t, domain.IsValidIBAN("DE123456789012345678"))
	assert.False(t, domain.IsValidIBAN("lt000000000000000000"))
	assert.False(t, domain.IsValidIBAN("LT00000000000000000"))
	assert.False(t, domain.IsValidIBAN("LT0000000000000000000"))
	assert.False(t, domain.IsValidIBAN("LT00000000000000000X"))
	assert.False(t, domain.IsValidIBAN(""))
}
