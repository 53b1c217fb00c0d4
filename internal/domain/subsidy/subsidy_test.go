package subsidy

import (
	"encoding/json"
	"testing"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncentiveDetails(t *testing.T) {
	t.Run("decodes known and extra fields", func(t *testing.T) {
		d, err := ParseIncentiveDetails(`{"type":"grant","amount":250000.50,"currency":"INR","cap_percent":30}`)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "grant", d.Type)
		assert.Equal(t, "INR", d.Currency)
		require.NotNil(t, d.Amount)
		assert.Equal(t, "250000.5", d.Amount.String())
		assert.Equal(t, map[string]any{"cap_percent": float64(30)}, d.Extra)
	})

	t.Run("accepts quoted amount", func(t *testing.T) {
		d, err := ParseIncentiveDetails(`{"type":"loan","amount":"1000"}`)
		require.NoError(t, err)
		assert.Equal(t, "1000", d.Amount.String())
	})

	t.Run("unwraps double-encoded payload", func(t *testing.T) {
		d, err := ParseIncentiveDetails(`"{\"type\":\"tax_credit\"}"`)
		require.NoError(t, err)
		assert.Equal(t, "tax_credit", d.Type)
	})

	t.Run("blank means none", func(t *testing.T) {
		d, err := ParseIncentiveDetails("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		for _, raw := range []string{`{"type":`, `[1,2]`, `42`, `{"amount":"lots"}`} {
			_, err := ParseIncentiveDetails(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestIncentiveDetails_MarshalJSON(t *testing.T) {
	d, err := ParseIncentiveDetails(`{"type":"grant","amount":10,"currency":"USD","tier":"A"}`)
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(out, &flat))
	assert.Equal(t, "grant", flat["type"])
	assert.Equal(t, "USD", flat["currency"])
	assert.Equal(t, "10", flat["amount"])
	assert.Equal(t, "A", flat["tier"])
}

func TestSubsidy_View(t *testing.T) {
	t.Run("decodes payload", func(t *testing.T) {
		s := NewSubsidy("Solar Push", "IN")
		raw := `{"type":"grant","amount":5,"currency":"INR"}`
		s.IncentiveDetails = &raw

		v, err := s.View()
		require.NoError(t, err)
		assert.Equal(t, s.ID, v.ID)
		require.NotNil(t, v.IncentiveDetails)
		assert.Equal(t, "grant", v.IncentiveDetails.Type)
	})

	t.Run("reports malformed payload", func(t *testing.T) {
		s := NewSubsidy("Broken", "IN")
		raw := `{not json`
		s.IncentiveDetails = &raw

		_, err := s.View()
		require.Error(t, err)
		assert.Equal(t, shared.CodeMalformedData, shared.CodeOf(err))
		assert.Contains(t, err.Error(), s.ID)
	})

	t.Run("no payload", func(t *testing.T) {
		v, err := NewSubsidy("Plain", "US").View()
		require.NoError(t, err)
		assert.Nil(t, v.IncentiveDetails)
	})
}

func TestEncodeIncentiveDetails(t *testing.T) {
	stored, err := EncodeIncentiveDetails(json.RawMessage(`{"type":"grant"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"grant"}`, *stored)

	stored, err = EncodeIncentiveDetails(json.RawMessage(`"{\"type\":\"loan\"}"`))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"loan"}`, *stored)

	stored, err = EncodeIncentiveDetails(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = EncodeIncentiveDetails(json.RawMessage(`[1]`))
	assert.Error(t, err)
}

func TestSubsidy_Validate(t *testing.T) {
	err := NewSubsidy("", "IN").Validate()
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())

	s := NewSubsidy("Ok", "IN")
	bad := "oops"
	s.IncentiveDetails = &bad
	err = s.Validate()
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}
