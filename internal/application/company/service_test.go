package company

import (
	"context"
	"errors"
	"testing"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/company"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRepo is a testify mock satisfying shared.Repository[T]
type mockRepo[T any] struct {
	mock.Mock
}

func (m *mockRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockRepo[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockRepo[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo[T]) Create(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockRepo[T]) Update(ctx context.Context, id string, changes shared.Changes) error {
	return m.Called(ctx, id, changes).Error(0)
}

func (m *mockRepo[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fixture struct {
	profiles   *mockRepo[company.Profile]
	contacts   *mockRepo[company.Contacts]
	financials *mockRepo[company.Financials]
	operations *mockRepo[company.Operations]
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		profiles:   new(mockRepo[company.Profile]),
		contacts:   new(mockRepo[company.Contacts]),
		financials: new(mockRepo[company.Financials]),
		operations: new(mockRepo[company.Operations]),
	}
	f.svc = NewService(f.profiles, f.contacts, f.financials, f.operations)
	return f
}

func byCompany(id string) any {
	return mock.MatchedBy(func(filter shared.Filter) bool { return filter.Filters["companyId"] == id })
}

func TestCompleteCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles every part", func(t *testing.T) {
		f := newFixture()
		profile := company.NewProfile("u1", "Acme")
		f.profiles.On("FindByID", mock.Anything, profile.ID).Return(profile, nil)
		f.contacts.On("FindAll", mock.Anything, byCompany(profile.ID)).Return([]company.Contacts{*company.NewContacts(profile.ID)}, nil)
		f.financials.On("FindAll", mock.Anything, byCompany(profile.ID)).Return([]company.Financials{}, nil)
		f.operations.On("FindAll", mock.Anything, byCompany(profile.ID)).Return([]company.Operations{*company.NewOperations(profile.ID)}, nil)

		complete, err := f.svc.CompleteCompany(ctx, profile.ID)

		require.NoError(t, err)
		assert.Equal(t, "Acme", complete.Profile.CompanyName)
		assert.NotNil(t, complete.Contacts)
		assert.Nil(t, complete.Financials)
		assert.NotNil(t, complete.Operations)
		assert.Empty(t, complete.PartialErrors)
	})

	t.Run("one failing part does not hide the rest", func(t *testing.T) {
		f := newFixture()
		profile := company.NewProfile("u1", "Acme")
		f.profiles.On("FindByID", mock.Anything, profile.ID).Return(profile, nil)
		f.contacts.On("FindAll", mock.Anything, mock.Anything).
			Return(nil, shared.NewUpstreamError("failed to list company contacts", errors.New("timeout")))
		f.financials.On("FindAll", mock.Anything, mock.Anything).Return([]company.Financials{}, nil)
		f.operations.On("FindAll", mock.Anything, mock.Anything).Return([]company.Operations{}, nil)

		complete, err := f.svc.CompleteCompany(ctx, profile.ID)

		require.NoError(t, err)
		assert.NotNil(t, complete.Profile)
		assert.Equal(t, "failed to list company contacts", complete.PartialErrors["contacts"])
	})

	t.Run("unknown company", func(t *testing.T) {
		f := newFixture()
		f.profiles.On("FindByID", mock.Anything, "nope").Return(nil, shared.NewNotFoundError("company profile", "nope"))
		f.contacts.On("FindAll", mock.Anything, mock.Anything).Return([]company.Contacts{}, nil)
		f.financials.On("FindAll", mock.Anything, mock.Anything).Return([]company.Financials{}, nil)
		f.operations.On("FindAll", mock.Anything, mock.Anything).Return([]company.Operations{}, nil)

		_, err := f.svc.CompleteCompany(ctx, "nope")

		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("requires id", func(t *testing.T) {
		_, err := newFixture().svc.CompleteCompany(ctx, "")
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestCreateProfileRequest(t *testing.T) {
	size := company.SizeSmall
	req := CreateProfileRequest{UserID: "u1", CompanyName: " Acme ", CompanySize: &size}

	p := req.Entity()

	assert.Equal(t, "Acme", p.CompanyName)
	assert.Equal(t, &size, p.CompanySize)
	assert.Nil(t, p.Website)
	assert.NoError(t, p.Validate())
}

func TestUpdateProfileRequest_Changes(t *testing.T) {
	t.Run("only supplied fields", func(t *testing.T) {
		state := "Gujarat"
		changes, err := UpdateProfileRequest{State: &state}.Changes()
		require.NoError(t, err)
		assert.Equal(t, shared.Changes{"state": "Gujarat"}, changes)
	})

	t.Run("empty request", func(t *testing.T) {
		changes, err := UpdateProfileRequest{}.Changes()
		require.NoError(t, err)
		assert.True(t, changes.IsEmpty())
	})

	t.Run("blank required field", func(t *testing.T) {
		blank := " "
		_, err := UpdateProfileRequest{CompanyName: &blank}.Changes()
		require.Error(t, err)
		assert.Equal(t, "company_name is required", err.Error())
	})

	t.Run("bad size", func(t *testing.T) {
		size := company.Size("huge")
		_, err := UpdateProfileRequest{CompanySize: &size}.Changes()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "company_size must be one of")
	})
}

func TestUpdateContactsRequest_Changes(t *testing.T) {
	email := "a@b.com"
	changes, err := UpdateContactsRequest{ContactEmail: &email}.Changes()
	require.NoError(t, err)
	assert.Equal(t, []string{"contact_email"}, changes.Columns())
}
