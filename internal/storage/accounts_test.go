package storage

import (
	"encoding/json"
	"testing"

	"spendwise/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// AccountsTestSuite provides a test suite for account operations
type AccountsTestSuite struct {
	suite.Suite
	store    *kv.Memory
	accounts *AccountStore
}

// SetupTest runs before each test
func (suite *AccountsTestSuite) SetupTest() {
	suite.store = kv.NewMemory()
	suite.accounts = NewAccountStore(suite.store)
}

func (suite *AccountsTestSuite) TestRegister() {
	user, err := suite.accounts.Register("  Asha Rao  ", " Asha@Example.COM ", "secret123")
	require.NoError(suite.T(), err)

	assert.NotEmpty(suite.T(), user.ID)
	assert.Equal(suite.T(), "Asha Rao", user.Name, "name should be trimmed")
	assert.Equal(suite.T(), "asha@example.com", user.Email, "email should be normalized")
	assert.False(suite.T(), user.CreatedAt.IsZero())
}

func (suite *AccountsTestSuite) TestRegisterNeverStoresPlaintext() {
	_, err := suite.accounts.Register("Asha", "asha@example.com", "secret123")
	require.NoError(suite.T(), err)

	raw, ok, err := suite.store.Get(kv.UsersSlot)
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)
	assert.NotContains(suite.T(), raw, "secret123", "plaintext password must never be persisted")

	user, err := suite.accounts.FindByEmail("asha@example.com")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), user)
	assert.Len(suite.T(), user.PasswordHash, 64, "expected a 256-bit hex digest")
}

func (suite *AccountsTestSuite) TestRegisterDuplicateEmailCaseInsensitive() {
	_, err := suite.accounts.Register("First", "A@x.com", "secret123")
	require.NoError(suite.T(), err)

	_, err = suite.accounts.Register("Second", "a@x.com", "otherpass")
	assert.ErrorIs(suite.T(), err, ErrDuplicateEmail)
}

func (suite *AccountsTestSuite) TestAuthenticate() {
	registered, err := suite.accounts.Register("Asha", "asha@example.com", "secret123")
	require.NoError(suite.T(), err)

	user, err := suite.accounts.Authenticate("ASHA@example.com", "secret123")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.ID, user.ID)
}

func (suite *AccountsTestSuite) TestAuthenticateDoesNotLeakAccountExistence() {
	_, err := suite.accounts.Register("Asha", "asha@example.com", "secret123")
	require.NoError(suite.T(), err)

	_, wrongPassErr := suite.accounts.Authenticate("asha@example.com", "wrongpass")
	_, unknownErr := suite.accounts.Authenticate("nobody@example.com", "secret123")

	require.Error(suite.T(), wrongPassErr)
	require.Error(suite.T(), unknownErr)
	assert.ErrorIs(suite.T(), wrongPassErr, ErrInvalidCredentials)
	assert.ErrorIs(suite.T(), unknownErr, ErrInvalidCredentials)
	assert.Equal(suite.T(), wrongPassErr.Error(), unknownErr.Error(),
		"wrong password and unknown email must be indistinguishable")
}

func (suite *AccountsTestSuite) TestFindByEmailAbsent() {
	user, err := suite.accounts.FindByEmail("nobody@example.com")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), user)
}

func (suite *AccountsTestSuite) TestMalformedUsersSlotTreatedAsEmpty() {
	require.NoError(suite.T(), suite.store.Set(kv.UsersSlot, "{not json"))

	user, err := suite.accounts.FindByEmail("asha@example.com")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), user)

	// Registration starts over from an empty collection
	created, err := suite.accounts.Register("Asha", "asha@example.com", "secret123")
	require.NoError(suite.T(), err)

	raw, ok, err := suite.store.Get(kv.UsersSlot)
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)
	var persisted []map[string]any
	require.NoError(suite.T(), json.Unmarshal([]byte(raw), &persisted))
	require.Len(suite.T(), persisted, 1)
	assert.Equal(suite.T(), created.ID, persisted[0]["id"])
}

func TestAccountsSuite(t *testing.T) {
	suite.Run(t, new(AccountsTestSuite))
}
