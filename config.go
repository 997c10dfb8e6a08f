package graphql

import "github.com/pkg/errors"

// Credentials holds the signing configuration shared by every fetch made
// through a Client. It is read-only once the Client is built.
type Credentials struct {
	AccessKeyID string
	SecretKey   string
	// SessionToken is only needed for temporary credentials.
	SessionToken string
	Region       string
	Service      string
}

// Validate reports the first missing required field.
func (c Credentials) Validate() error {
	switch {
	case c.AccessKeyID == "":
		return errors.New("access key id is not set")
	case c.SecretKey == "":
		return errors.New("secret key is not set")
	case c.Region == "":
		return errors.New("region is not set")
	case c.Service == "":
		return errors.New("service name is not set")
	}
	return nil
}
