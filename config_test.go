package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsValidate(t *testing.T) {
	assert.NoError(t, testCreds.Validate())

	creds := testCreds
	creds.SessionToken = ""
	assert.NoError(t, creds.Validate(), "session token is optional")

	creds.Region = ""
	assert.EqualError(t, creds.Validate(), "region is not set")

	assert.EqualError(t, Credentials{}.Validate(), "access key id is not set")
}
