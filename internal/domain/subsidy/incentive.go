package subsidy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotObject = errors.New("incentive details must be a JSON object")

// IncentiveDetails is the decoded incentive payload. Keys other than type,
// amount and currency are preserved in Extra and flattened back on encode.
type IncentiveDetails struct {
	Type     string
	Amount   *decimal.Decimal
	Currency string
	Extra    map[string]any
}

// UnmarshalJSON decodes a flat JSON object into the known fields and Extra.
func (d *IncentiveDetails) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errNotObject
	}
	out := IncentiveDetails{Extra: map[string]any{}}
	for key, raw := range fields {
		switch key {
		case "type":
			if err := json.Unmarshal(raw, &out.Type); err != nil {
				return fmt.Errorf("type: %w", err)
			}
		case "currency":
			if err := json.Unmarshal(raw, &out.Currency); err != nil {
				return fmt.Errorf("currency: %w", err)
			}
		case "amount":
			if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				continue
			}
			var amount decimal.Decimal
			if err := amount.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			out.Amount = &amount
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			out.Extra[key] = v
		}
	}
	*d = out
	return nil
}

// MarshalJSON encodes the details as a single flat object.
func (d IncentiveDetails) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Extra)+3)
	for k, v := range d.Extra {
		flat[k] = v
	}
	flat["type"] = d.Type
	flat["currency"] = d.Currency
	if d.Amount != nil {
		flat["amount"] = d.Amount
	} else {
		flat["amount"] = nil
	}
	return json.Marshal(flat)
}

// ParseIncentiveDetails decodes a stored incentive payload. Blank input
// means no details. A payload that was serialized twice (a JSON string
// holding an object) is unwrapped once.
func ParseIncentiveDetails(raw string) (*IncentiveDetails, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, err
		}
		trimmed = strings.TrimSpace(inner)
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, errNotObject
	}
	var details IncentiveDetails
	if err := json.Unmarshal([]byte(trimmed), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// EncodeIncentiveDetails turns a request payload (either an object or a
// string holding one) into the stored serialized form.
func EncodeIncentiveDetails(payload json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var stored string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &stored); err != nil {
			return nil, err
		}
	} else {
		stored = string(trimmed)
	}
	if strings.TrimSpace(stored) == "" {
		return nil, nil
	}
	if _, err := ParseIncentiveDetails(stored); err != nil {
		return nil, err
	}
	return &stored, nil
}
