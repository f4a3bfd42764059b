package mock

import (
	"context"
	"io"
	"testing"

	"github.com/strandworks/meltfab/cmd/melt/rest"
	apiclusters "github.com/strandworks/meltfab/pkg/api/types/clusters"
	apifiles "github.com/strandworks/meltfab/pkg/api/types/files"
	apijobs "github.com/strandworks/meltfab/pkg/api/types/jobs"
	apiprojects "github.com/strandworks/meltfab/pkg/api/types/projects"
)

type AddCommentArgs struct {
	ProjectId string
	Spec      apiprojects.CommentSpec
}

type UploadFileArgs struct {
	ProjectId string
	Request   apifiles.UploadRequest
}

type SubmitPrintJobArgs struct {
	ClusterId string
	Spec      apijobs.Spec
}

func New(t *testing.T) *mockMeltClient {
	return &mockMeltClient{t: t}
}

type mockMeltClient struct {
	t    *testing.T
	Impl struct {
		CreateProject  func(ctx context.Context, spec apiprojects.Spec) (apiprojects.Detail, error)
		FindProjects   func(ctx context.Context, query string) ([]apiprojects.Detail, error)
		AddComment     func(ctx context.Context, projectId string, spec apiprojects.CommentSpec) (apiprojects.Comment, error)
		UploadFile     func(ctx context.Context, projectId string, req apifiles.UploadRequest, body io.Reader) (apifiles.Detail, error)
		SubmitPrintJob func(ctx context.Context, clusterId string, spec apijobs.Spec) (apijobs.Detail, error)
		FindPrintJobs  func(ctx context.Context, status []string) ([]apijobs.Detail, error)
		GetPrintJob    func(ctx context.Context, jobId string) (apijobs.Detail, error)
		FindClusters   func(ctx context.Context) ([]apiclusters.Detail, error)
	}
	Calls struct {
		CreateProject  []apiprojects.Spec
		FindProjects   []string
		AddComment     []AddCommentArgs
		UploadFile     []UploadFileArgs
		SubmitPrintJob []SubmitPrintJobArgs
		FindPrintJobs  [][]string
		GetPrintJob    []string
		FindClusters   int
	}
}

var _ rest.MeltClient = &mockMeltClient{}

func (m *mockMeltClient) CreateProject(ctx context.Context, spec apiprojects.Spec) (apiprojects.Detail, error) {
	m.t.Helper()

	m.Calls.CreateProject = append(m.Calls.CreateProject, spec)
	if m.Impl.CreateProject == nil {
		m.t.Fatal("CreateProject is not ready to be called")
	}
	return m.Impl.CreateProject(ctx, spec)
}

func (m *mockMeltClient) FindProjects(ctx context.Context, query string) ([]apiprojects.Detail, error) {
	m.t.Helper()

	m.Calls.FindProjects = append(m.Calls.FindProjects, query)
	if m.Impl.FindProjects == nil {
		m.t.Fatal("FindProjects is not ready to be called")
	}
	return m.Impl.FindProjects(ctx, query)
}

func (m *mockMeltClient) AddComment(ctx context.Context, projectId string, spec apiprojects.CommentSpec) (apiprojects.Comment, error) {
	m.t.Helper()

	m.Calls.AddComment = append(m.Calls.AddComment, AddCommentArgs{ProjectId: projectId, Spec: spec})
	if m.Impl.AddComment == nil {
		m.t.Fatal("AddComment is not ready to be called")
	}
	return m.Impl.AddComment(ctx, projectId, spec)
}

func (m *mockMeltClient) UploadFile(
	ctx context.Context, projectId string, req apifiles.UploadRequest, body io.Reader,
) (apifiles.Detail, error) {
	m.t.Helper()

	m.Calls.UploadFile = append(m.Calls.UploadFile, UploadFileArgs{ProjectId: projectId, Request: req})
	if m.Impl.UploadFile == nil {
		m.t.Fatal("UploadFile is not ready to be called")
	}
	return m.Impl.UploadFile(ctx, projectId, req, body)
}

func (m *mockMeltClient) SubmitPrintJob(ctx context.Context, clusterId string, spec apijobs.Spec) (apijobs.Detail, error) {
	m.t.Helper()

	m.Calls.SubmitPrintJob = append(m.Calls.SubmitPrintJob, SubmitPrintJobArgs{ClusterId: clusterId, Spec: spec})
	if m.Impl.SubmitPrintJob == nil {
		m.t.Fatal("SubmitPrintJob is not ready to be called")
	}
	return m.Impl.SubmitPrintJob(ctx, clusterId, spec)
}

func (m *mockMeltClient) FindPrintJobs(ctx context.Context, status []string) ([]apijobs.Detail, error) {
	m.t.Helper()

	m.Calls.FindPrintJobs = append(m.Calls.FindPrintJobs, status)
	if m.Impl.FindPrintJobs == nil {
		m.t.Fatal("FindPrintJobs is not ready to be called")
	}
	return m.Impl.FindPrintJobs(ctx, status)
}

func (m *mockMeltClient) GetPrintJob(ctx context.Context, jobId string) (apijobs.Detail, error) {
	m.t.Helper()

	m.Calls.GetPrintJob = append(m.Calls.GetPrintJob, jobId)
	if m.Impl.GetPrintJob == nil {
		m.t.Fatal("GetPrintJob is not ready to be called")
	}
	return m.Impl.GetPrintJob(ctx, jobId)
}

func (m *mockMeltClient) FindClusters(ctx context.Context) ([]apiclusters.Detail, error) {
	m.t.Helper()

	m.Calls.FindClusters += 1
	if m.Impl.FindClusters == nil {
		m.t.Fatal("FindClusters is not ready to be called")
	}
	return m.Impl.FindClusters(ctx)
}
