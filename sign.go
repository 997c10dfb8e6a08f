package graphql

import (
	"bytes"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws/credentials"
	v4 "github.com/aws/aws-sdk-go/aws/signer/v4"
	"github.com/pkg/errors"
)

// signer adds AWS Signature Version 4 headers to outgoing requests.
type signer struct {
	creds Credentials
	v4    *v4.Signer
	now   func() time.Time
}

func newSigner(creds Credentials, now func() time.Time) *signer {
	return &signer{
		creds: creds,
		v4:    v4.NewSigner(credentials.NewStaticCredentials(creds.AccessKeyID, creds.SecretKey, creds.SessionToken)),
		now:   now,
	}
}

// sign signs r over its method, URL, headers and body. The signer takes
// ownership of r.Body and replaces it with a reader over body.
func (s *signer) sign(r *http.Request, body []byte) error {
	if err := s.creds.Validate(); err != nil {
		return err
	}
	if _, err := s.v4.Sign(r, bytes.NewReader(body), s.creds.Service, s.creds.Region, s.now().UTC()); err != nil {
		return errors.Wrap(err, "sign request")
	}
	return nil
}
