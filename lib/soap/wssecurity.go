package soap

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	random "github.com/mazen160/go-random"
)

const (
	wsseNS = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	wsuNS  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"

	PasswordTextType   = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
	PasswordDigestType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
	base64BinaryType   = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"

	nonceLength = 16
)

// Security is a WS-Security UsernameToken profile.
type Security struct {
	Username string
	Password string
	// Digest sends a PasswordDigest with a nonce instead of the plain text
	// password.
	Digest bool
}

func (s Security) empty() bool {
	return s.Username == "" && s.Password == ""
}

// passwordDigest is Base64(SHA-1(nonce + created + password)).
func passwordDigest(nonce []byte, created, password string) string {
	hash := sha1.New()
	hash.Write(nonce)
	hash.Write([]byte(created))
	hash.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(hash.Sum(nil))
}

// apply appends a wsse:Security header carrying the token to `header`.
func (s Security) apply(header *etree.Element, now time.Time) error {
	security := header.CreateElement("wsse:Security")
	security.CreateAttr("xmlns:wsse", wsseNS)
	security.CreateAttr("xmlns:wsu", wsuNS)

	token := security.CreateElement("wsse:UsernameToken")
	token.CreateAttr("wsu:Id", fmt.Sprintf("UsernameToken-%s", uuid.NewString()))
	token.CreateElement("wsse:Username").SetText(s.Username)

	password := token.CreateElement("wsse:Password")
	if !s.Digest {
		password.CreateAttr("Type", PasswordTextType)
		password.SetText(s.Password)
		return nil
	}

	nonce, err := random.String(nonceLength)
	if err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	created := now.UTC().Format("2006-01-02T15:04:05Z")

	password.CreateAttr("Type", PasswordDigestType)
	password.SetText(passwordDigest([]byte(nonce), created, s.Password))

	nonceEl := token.CreateElement("wsse:Nonce")
	nonceEl.CreateAttr("EncodingType", base64BinaryType)
	nonceEl.SetText(base64.StdEncoding.EncodeToString([]byte(nonce)))
	token.CreateElement("wsu:Created").SetText(created)
	return nil
}
