package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	kprof "github.com/strandworks/meltfab/cmd/melt/config/profiles"
	"github.com/strandworks/meltfab/pkg/api/types/clusters"
	"github.com/strandworks/meltfab/pkg/api/types/files"
	"github.com/strandworks/meltfab/pkg/api/types/jobs"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/strandworks/meltfab/pkg/utils"
	"golang.org/x/oauth2"
)

// MeltClient is the client of the meltfab cloud REST API.
//
// Every call carries the Bearer token of the signed-in user, except the
// upload PUT, which goes to a pre-signed URL.
type MeltClient interface {
	// CreateProject registers a new project.
	CreateProject(ctx context.Context, spec projects.Spec) (projects.Detail, error)

	// FindProjects searches projects by free-text query.
	//
	// An empty query finds every project visible to the user.
	FindProjects(ctx context.Context, query string) ([]projects.Detail, error)

	// AddComment posts a comment on a project.
	AddComment(ctx context.Context, projectId string, spec projects.CommentSpec) (projects.Comment, error)

	// UploadFile stores a file in a project.
	//
	// It requests an upload slot, PUTs the body to the slot's URL and
	// returns the resulting file metadata. body must provide exactly
	// req.Size bytes.
	UploadFile(ctx context.Context, projectId string, req files.UploadRequest, body io.Reader) (files.Detail, error)

	// SubmitPrintJob queues a print job on a cluster.
	SubmitPrintJob(ctx context.Context, clusterId string, spec jobs.Spec) (jobs.Detail, error)

	// FindPrintJobs lists print jobs, optionally filtered by status.
	FindPrintJobs(ctx context.Context, status []string) ([]jobs.Detail, error)

	// GetPrintJob gets one print job by id.
	GetPrintJob(ctx context.Context, jobId string) (jobs.Detail, error)

	// FindClusters lists the user's printer clusters with their
	// online/offline status.
	FindClusters(ctx context.Context) ([]clusters.Detail, error)
}

type client struct {
	// httpclient carries the Bearer token.
	httpclient *http.Client

	// rawclient does not. Used for pre-signed upload URLs.
	rawclient *http.Client

	api string
}

// NewClient creates a MeltClient for the profile, authenticating every
// request from source.
//
// If the profile carries a CA certificate, it is trusted for both the
// API and upload endpoints. If the profile is invalid, ErrProfileInvalid
// is returned.
func NewClient(prof *kprof.MeltProfile, source oauth2.TokenSource) (MeltClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	raw := new(http.Client)
	if prof.Cert.CA != "" {
		hc, err := trustCa(raw, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		raw = hc
	}

	authorized := &http.Client{
		Transport: &oauth2.Transport{Source: source, Base: raw.Transport},
	}

	return &client{
		httpclient: authorized,
		rawclient:  raw,
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
	}, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
