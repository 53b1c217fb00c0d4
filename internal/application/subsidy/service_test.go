package subsidy

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/subsidy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*subsidy.Subsidy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subsidy.Subsidy), args.Error(1)
}

func (m *mockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]subsidy.Subsidy, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subsidy.Subsidy), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, entity *subsidy.Subsidy) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockRepository) Update(ctx context.Context, id string, changes shared.Changes) error {
	return m.Called(ctx, id, changes).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type countingMetrics struct {
	malformed atomic.Int64
}

func (c *countingMetrics) RecordMalformedSubsidy(context.Context) {
	c.malformed.Add(1)
}

func withDetails(name, details string) subsidy.Subsidy {
	s := subsidy.NewSubsidy(name, "India")
	if details != "" {
		s.IncentiveDetails = &details
	}
	return *s
}

func TestService_List(t *testing.T) {
	repo := new(mockRepository)
	metrics := &countingMetrics{}
	stored := []subsidy.Subsidy{
		withDetails("Solar", `{"type":"grant","amount":"250000.50","currency":"INR","tier":2}`),
		withDetails("Broken", `{not json`),
		withDetails("Plain", ""),
	}
	repo.On("FindAll", mock.Anything, mock.Anything).Return(stored, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)

	page, err := NewService(repo, metrics).List(context.Background(), shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Skipped)
	assert.Equal(t, int64(1), metrics.malformed.Load())

	details := page.Items[0].IncentiveDetails
	require.NotNil(t, details)
	assert.Equal(t, "grant", details.Type)
	assert.Equal(t, "250000.5", details.Amount.String())
	assert.Equal(t, float64(2), details.Extra["tier"])
	assert.Nil(t, page.Items[1].IncentiveDetails)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed payload", func(t *testing.T) {
		repo := new(mockRepository)
		broken := withDetails("Broken", `[1,2]`)
		repo.On("FindByID", mock.Anything, broken.ID).Return(&broken, nil)

		_, err := NewService(repo, nil).Get(ctx, broken.ID)

		require.Error(t, err)
		assert.Equal(t, shared.CodeMalformedData, shared.CodeOf(err))
	})

	t.Run("double-encoded payload", func(t *testing.T) {
		repo := new(mockRepository)
		s := withDetails("Wind", `"{\"type\":\"loan\",\"currency\":\"USD\"}"`)
		repo.On("FindByID", mock.Anything, s.ID).Return(&s, nil)

		view, err := NewService(repo, nil).Get(ctx, s.ID)

		require.NoError(t, err)
		assert.Equal(t, "loan", view.IncentiveDetails.Type)
		assert.Nil(t, view.IncentiveDetails.Amount)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("object payload is stored serialized", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*subsidy.Subsidy")).Return(nil)

		view, err := NewService(repo, nil).Create(ctx, CreateSubsidyRequest{
			Name:             "Solar",
			Country:          "India",
			IncentiveDetails: json.RawMessage(`{"type":"grant","amount":1000}`),
		})

		require.NoError(t, err)
		assert.Equal(t, "1000", view.IncentiveDetails.Amount.String())
		created := repo.Calls[0].Arguments.Get(1).(*subsidy.Subsidy)
		assert.JSONEq(t, `{"type":"grant","amount":1000}`, *created.IncentiveDetails)
	})

	t.Run("non-object payload is rejected", func(t *testing.T) {
		repo := new(mockRepository)

		_, err := NewService(repo, nil).Create(ctx, CreateSubsidyRequest{
			Name:             "Solar",
			Country:          "India",
			IncentiveDetails: json.RawMessage(`"just text"`),
		})

		require.Error(t, err)
		assert.Equal(t, "incentiveDetails must be a JSON object", err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing country", func(t *testing.T) {
		_, err := NewService(new(mockRepository), nil).Create(ctx, CreateSubsidyRequest{Name: "Solar"})
		assert.Equal(t, "country is required", err.Error())
	})
}

func TestUpdateSubsidyRequest(t *testing.T) {
	t.Run("null payload leaves the column alone", func(t *testing.T) {
		var req UpdateSubsidyRequest
		require.NoError(t, json.Unmarshal([]byte(`{"description":"x","incentiveDetails":null}`), &req))

		changes, err := req.Changes()

		require.NoError(t, err)
		assert.Equal(t, []string{"description"}, changes.Columns())
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := UpdateSubsidyRequest{IncentiveDetails: json.RawMessage(`{oops`)}.Changes()
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("status out of range", func(t *testing.T) {
		bad := subsidy.Status("paused")
		_, err := UpdateSubsidyRequest{Status: &bad}.Changes()
		assert.Contains(t, err.Error(), "status must be one of")
	})
}
