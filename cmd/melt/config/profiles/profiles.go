package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hectane/go-acl"
	"github.com/strandworks/meltfab/cmd/melt/config/open"
	yaml "gopkg.in/yaml.v3"
)

var ErrProfileStoreNotFound = errors.New("config file is not found")
var ErrCannotCreateConfig = errors.New("cannot create config file")
var ErrCannotUpdateConfig = errors.New("cannot update config file")
var ErrProfileInvalid = errors.New("melt profile is invalid")

// ProfileStore is a map from profile name to MeltProfile.
type ProfileStore map[string]*MeltProfile

type MeltCert struct {
	// base64 encoded CA certificate
	CA string `yaml:"ca,omitempty"`
}

// MeltAuth locates the OAuth2 endpoints of the cloud and
// identifies this CLI against them.
type MeltAuth struct {
	// authorization endpoint. The browser is sent here.
	AuthorizeUrl string `yaml:"authorizeUrl"`

	// token endpoint. The authorization code is exchanged here.
	TokenUrl string `yaml:"tokenUrl"`

	// OAuth2 client id of this CLI. Public client, no secret.
	ClientId string `yaml:"clientId"`

	// scopes requested at login.
	Scopes []string `yaml:"scopes,omitempty"`

	// localhost port the callback listener binds to. 0 means default.
	CallbackPort int `yaml:"callbackPort,omitempty"`
}

// MeltProfile is a connection profile for the meltfab cloud.
type MeltProfile struct {
	// endpoint of the REST API
	ApiRoot string `yaml:"apiRoot"`

	Auth MeltAuth `yaml:"auth"`

	// cert is a certificate for the cloud endpoints.
	Cert MeltCert `yaml:"cert,omitempty"`
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify MeltProfile.
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *MeltProfile) Verify() error {
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: apiRoot is not URL: %s", ErrProfileInvalid, p.ApiRoot)
	}
	if !verifyUrl(p.Auth.AuthorizeUrl) {
		return fmt.Errorf("%w: auth.authorizeUrl is not URL: %s", ErrProfileInvalid, p.Auth.AuthorizeUrl)
	}
	if !verifyUrl(p.Auth.TokenUrl) {
		return fmt.Errorf("%w: auth.tokenUrl is not URL: %s", ErrProfileInvalid, p.Auth.TokenUrl)
	}
	if p.Auth.ClientId == "" {
		return fmt.Errorf("%w: auth.clientId is empty", ErrProfileInvalid)
	}
	if p.Auth.CallbackPort < 0 || 65535 < p.Auth.CallbackPort {
		return fmt.Errorf("%w: auth.callbackPort is out of range: %d", ErrProfileInvalid, p.Auth.CallbackPort)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}

	return nil
}

// LoadProfileStore loads profile store from file.
func LoadProfileStore(filepath string) (ProfileStore, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrProfileStoreNotFound, filepath)
		}
		return nil, err
	}
	return Unmarshall(buf)
}

// Unmarshall profile store from yaml in byte array.
func Unmarshall(buf []byte) (ProfileStore, error) {
	ret := map[string]*MeltProfile{}
	if err := yaml.Unmarshal(buf, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Save profile store to file.
//
// The previous content, if any, is kept aside at path + ".backup" while
// writing, and the backup is removed when the write succeeds.
func (ps *ProfileStore) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}

	bkpath := path + ".backup"
	if prev, err := os.Open(path); err == nil {
		// In case of the existing file with loose permissions,
		// enforce permission to 0600.
		if err := acl.Chmod(path, os.FileMode(0600)); err != nil {
			prev.Close()
			return err
		}

		bk, err := open.NewSafeFile(bkpath)
		if err != nil {
			prev.Close()
			return err
		}
		_, cperr := io.Copy(bk, prev)
		bk.Close()
		prev.Close()
		if cperr != nil {
			return cperr
		}
	} else if os.IsPermission(err) {
		return fmt.Errorf(
			"%w, because no permission to write file at %s",
			ErrCannotUpdateConfig, path,
		)
	} else if !os.IsNotExist(err) {
		return err
	}

	buf, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}

	f, err := open.NewSafeFile(path)
	if err != nil {
		return fmt.Errorf("%w: cannot create a file at %s", ErrCannotCreateConfig, path)
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return err
	}

	os.Remove(bkpath)
	return nil
}
