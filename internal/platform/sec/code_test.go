// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/platform/sec"
)

func TestGenerateConfirmationCode(t *testing.T) {
	code, err := sec.GenerateConfirmationCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)

	// No visually ambiguous characters.
	for _, forbidden := range []string{"0", "O", "1", "I", "L"} {
		assert.NotContains(t, code, forbidden)
	}
}

func TestGenerateConfirmationCode_InvalidLength(t *testing.T) {
	_, err := sec.GenerateConfirmationCode(0)
	assert.Error(t, err)

	_, err = sec.GenerateConfirmationCode(-3)
	assert.Error(t, err)
}

func TestCodeHash_RoundTrip(t *testing.T) {
	hash, err := sec.HashCode("WXYZ2345")
	require.NoError(t, err)
	require.NotEqual(t, "WXYZ2345", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, sec.CheckCodeHash("WXYZ2345", hash))
	assert.False(t, sec.CheckCodeHash("WXYZ2346", hash))
	assert.False(t, sec.CheckCodeHash("", hash))
}
