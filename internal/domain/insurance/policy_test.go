package insurance

import (
	"testing"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTermsURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "adds https scheme", input: "example.com/terms", want: "https://example.com/terms"},
		{name: "keeps http scheme", input: "http://example.com", want: "http://example.com"},
		{name: "keeps https scheme", input: "https://insure.example.org/t?v=2", want: "https://insure.example.org/t?v=2"},
		{name: "trims whitespace", input: "  example.com  ", want: "https://example.com"},
		{name: "uppercase scheme is lowered", input: "HTTPS://Example.com/terms", want: "https://Example.com/terms"},
		{name: "mixed case http scheme", input: "Http://example.com", want: "http://example.com"},
		{name: "rejects spaces", input: "not a url", wantErr: true},
		{name: "rejects missing host", input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTermsURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("blank means no url", func(t *testing.T) {
		got, err := NormalizeTermsURL("  ")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPolicy_Validate(t *testing.T) {
	t.Run("requires provider, name and type in order", func(t *testing.T) {
		err := NewPolicy("", "", "").Validate()
		require.Error(t, err)
		assert.Equal(t, "providerId is required", err.Error())

		err = NewPolicy("prov", "Crop Cover", "").Validate()
		require.Error(t, err)
		assert.Equal(t, "policy_type is required", err.Error())
	})

	t.Run("normalizes terms url", func(t *testing.T) {
		p := NewPolicy("prov", "Crop Cover", "agri")
		raw := "example.com/terms"
		p.TermsURL = &raw
		require.NoError(t, p.Validate())
		assert.Equal(t, "https://example.com/terms", *p.TermsURL)
	})

	t.Run("rejects invalid terms url", func(t *testing.T) {
		p := NewPolicy("prov", "Crop Cover", "agri")
		raw := "not a url"
		p.TermsURL = &raw
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, "terms_url must be a valid URL", err.Error())
	})
}
