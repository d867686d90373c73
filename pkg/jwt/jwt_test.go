package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/nagane/franchise-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "hq-001"
	testIssuer = "franchise-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, 7, pkgjwt.RoleStore, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, id.UserID)
	assert.Equal(t, int64(7), id.StoreID)
	assert.Equal(t, pkgjwt.RoleStore, id.Role)
}

func TestParse_Expired(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, 0, pkgjwt.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, 0, pkgjwt.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("another-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, 0, pkgjwt.RoleAdmin, testIssuer, 60)
	assert.Error(t, err)
}
