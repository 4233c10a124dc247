package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "contacts/pkg/domain-errors"
)

func TestParseID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseContactID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParseContactID("0")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts positive integer", func(t *testing.T) {
		got, err := ParseContactID("1751234567890123456")
		require.NoError(t, err)
		assert.Equal(t, ContactID(1751234567890123456), got)
	})
}

func TestParseID_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "1; DROP TABLE contacts;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "12\x0034", true},
		{"Oversized input", strings.Repeat("9", 40), true},
		{"Overflow", "9223372036854775808", true},
		{"Negative", "-5", true},
		{"Sign prefix", "+5", true},
		{"Whitespace", " 42 ", true},
		{"Hex", "0x2a", true},

		{"Leading zeros", "0042", false},
		{"Max int64", "9223372036854775807", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTenantOf(t *testing.T) {
	assert.Equal(t, TenantID(7), TenantOf(UserID(7)))
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "17"} {
		t.Run("input "+input, func(t *testing.T) {
			_, errUser := ParseUserID(input)
			_, errTenant := ParseTenantID(input)
			_, errContact := ParseContactID(input)
			_, errName := ParseContactNameID(input)
			_, errDate := ParseContactDateID(input)
			_, errEntry := ParseAuditEntryID(input)

			want := errUser == nil
			assert.Equal(t, want, errTenant == nil)
			assert.Equal(t, want, errContact == nil)
			assert.Equal(t, want, errName == nil)
			assert.Equal(t, want, errDate == nil)
			assert.Equal(t, want, errEntry == nil)
		})
	}
}
