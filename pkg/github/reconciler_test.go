package github

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAPIClient is a mock implementation of APIClient for testing
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) Repository() RepositoryIdentity {
	args := m.Called()
	return args.Get(0).(RepositoryIdentity)
}

func (m *MockAPIClient) ListEnvironments() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAPIClient) UpsertEnvironment(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockAPIClient) DeleteEnvironment(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockAPIClient) GetEnvironmentVariable(env, key string) (string, bool, error) {
	args := m.Called(env, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockAPIClient) CreateEnvironmentVariable(env, key, value string) error {
	args := m.Called(env, key, value)
	return args.Error(0)
}

func (m *MockAPIClient) UpdateEnvironmentVariable(env, key, value string) error {
	args := m.Called(env, key, value)
	return args.Error(0)
}

func (m *MockAPIClient) UpsertEnvironmentVariable(env, key, value string) error {
	args := m.Called(env, key, value)
	return args.Error(0)
}

func (m *MockAPIClient) DeleteEnvironmentVariable(env, key string) error {
	args := m.Called(env, key)
	return args.Error(0)
}

func TestNewReconciler(t *testing.T) {
	client := &MockAPIClient{}

	reconciler := NewReconciler(client)

	assert.NotNil(t, reconciler)
	assert.Implements(t, (*Reconciler)(nil), reconciler)
}

func TestReconciler_Sync_AllEnvironments(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	doc := Document{
		"prod":    Variables{"A": "1"},
		"staging": Variables{"B": "2"},
	}

	client.On("UpsertEnvironment", "prod").Return(nil).Once()
	client.On("UpsertEnvironment", "staging").Return(nil).Once()
	client.On("UpsertEnvironmentVariable", "prod", "A", "1").Return(nil).Once()
	client.On("UpsertEnvironmentVariable", "staging", "B", "2").Return(nil).Once()

	err := reconciler.Sync(doc, "")

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestReconciler_Sync_SingleEnvironment(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	doc := Document{
		"prod":    Variables{"A": "1"},
		"staging": Variables{"B": "2"},
	}

	client.On("UpsertEnvironment", "staging").Return(nil).Once()
	client.On("UpsertEnvironmentVariable", "staging", "B", "2").Return(nil).Once()

	err := reconciler.Sync(doc, "staging")

	assert.NoError(t, err)
	client.AssertExpectations(t)
	// prod must receive zero calls
	client.AssertNotCalled(t, "UpsertEnvironment", "prod")
	client.AssertNotCalled(t, "UpsertEnvironmentVariable", "prod", "A", "1")
}

func TestReconciler_Sync_UnknownSelector(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	doc := Document{
		"prod": Variables{"A": "1"},
	}

	err := reconciler.Sync(doc, "staging")

	assert.Error(t, err)
	var ghErr *GitHubError
	assert.ErrorAs(t, err, &ghErr)
	assert.Equal(t, ErrorTypeValidation, ghErr.Type)
	assert.Contains(t, err.Error(), "staging")
	// No remote call may be made before the precondition check.
	client.AssertNotCalled(t, "UpsertEnvironment", mock.Anything)
	client.AssertNotCalled(t, "UpsertEnvironmentVariable", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_Sync_FailFastOnEnvironment(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	doc := Document{
		"alpha": Variables{"A": "1"},
		"beta":  Variables{"B": "2"},
	}

	upsertErr := &GitHubError{
		Type:       ErrorTypePermission,
		Message:    "insufficient permissions",
		StatusCode: http.StatusForbidden,
	}

	// Environments sync in sorted order, so alpha fails first.
	client.On("UpsertEnvironment", "alpha").Return(upsertErr).Once()

	err := reconciler.Sync(doc, "")

	assert.Error(t, err)
	assert.Equal(t, upsertErr, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "UpsertEnvironment", "beta")
	client.AssertNotCalled(t, "UpsertEnvironmentVariable", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_Sync_FailFastOnVariable(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	doc := Document{
		"alpha": Variables{"A": "1", "B": "2"},
		"beta":  Variables{"C": "3"},
	}

	varErr := &GitHubError{
		Type:       ErrorTypeUnknown,
		Message:    "server error",
		StatusCode: http.StatusInternalServerError,
	}

	client.On("UpsertEnvironment", "alpha").Return(nil).Once()
	// Variables sync in sorted key order, so A fails first.
	client.On("UpsertEnvironmentVariable", "alpha", "A", "1").Return(varErr).Once()

	err := reconciler.Sync(doc, "")

	assert.Error(t, err)
	assert.Equal(t, varErr, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "UpsertEnvironmentVariable", "alpha", "B", "2")
	client.AssertNotCalled(t, "UpsertEnvironment", "beta")
}

func TestReconciler_SyncEnvironment_EmptyVariables(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	client.On("UpsertEnvironment", "prod").Return(nil).Once()

	err := reconciler.SyncEnvironment("prod", Variables{})

	assert.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "UpsertEnvironmentVariable", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_Sync_RepeatedSyncIsIdempotent(t *testing.T) {
	client := &MockAPIClient{}
	reconciler := NewReconciler(client)

	doc := Document{
		"prod": Variables{"A": "1"},
	}

	client.On("UpsertEnvironment", "prod").Return(nil).Twice()
	client.On("UpsertEnvironmentVariable", "prod", "A", "1").Return(nil).Twice()

	assert.NoError(t, reconciler.Sync(doc, ""))
	assert.NoError(t, reconciler.Sync(doc, ""))

	client.AssertExpectations(t)
}
