package services

import (
	"fmt"
	"net"

	"github.com/go-ldap/ldap/v3"
	"github.com/lab-annotate/cataloger-api/internal/config"
)

// LDAPAuthenticator binds against an LDAP directory. A service account
// searches for the user entry, then a second bind with the user's own
// credentials verifies the password.
type LDAPAuthenticator struct {
	cfg *config.Config
}

// NewLDAPAuthenticator creates an LDAPAuthenticator.
func NewLDAPAuthenticator(cfg *config.Config) *LDAPAuthenticator {
	return &LDAPAuthenticator{cfg: cfg}
}

func (a *LDAPAuthenticator) Authenticate(username, password string) (*AccountInfo, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	conn, err := ldap.DialURL("ldap://" + net.JoinHostPort(a.cfg.LDAPHost, a.cfg.LDAPPort))
	if err != nil {
		return nil, fmt.Errorf("ldap dial failed: %w", err)
	}
	defer conn.Close()

	if a.cfg.LDAPBindUserDN != "" {
		if err := conn.Bind(a.cfg.LDAPBindUserDN, a.cfg.LDAPBindUserPassword); err != nil {
			return nil, fmt.Errorf("ldap service bind failed: %w", err)
		}
	}

	searchReq := ldap.NewSearchRequest(
		a.cfg.LDAPBaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		fmt.Sprintf("(%s=%s)", a.cfg.LDAPUserLoginAttr, ldap.EscapeFilter(username)),
		[]string{"dn", "givenName", "sn"},
		nil,
	)

	result, err := conn.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("ldap search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, ErrInvalidCredentials
	}

	entry := result.Entries[0]
	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AccountInfo{
		Username:  username,
		FirstName: entry.GetAttributeValue("givenName"),
		LastName:  entry.GetAttributeValue("sn"),
	}, nil
}
