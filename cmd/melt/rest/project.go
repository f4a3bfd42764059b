package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/strandworks/meltfab/pkg/api/types/projects"
)

func (c *client) CreateProject(ctx context.Context, spec projects.Spec) (projects.Detail, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return projects.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("projects"), bytes.NewReader(reqBody),
	)
	if err != nil {
		return projects.Detail{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return projects.Detail{}, err
	}
	defer resp.Body.Close()

	var created projects.Detail
	if err := unmarshalJsonResponse(
		resp, &created,
		MessageFor{
			Status4xx: fmt.Sprintf("creating project is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return projects.Detail{}, err
	}
	return created, nil
}

func (c *client) FindProjects(ctx context.Context, query string) ([]projects.Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("projects"), nil)
	if err != nil {
		return nil, err
	}

	if query != "" {
		q := req.URL.Query()
		q.Add("search", query)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]projects.Detail, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *client) AddComment(ctx context.Context, projectId string, spec projects.CommentSpec) (projects.Comment, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return projects.Comment{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("projects", projectId, "comments"),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return projects.Comment{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return projects.Comment{}, err
	}
	defer resp.Body.Close()

	var posted projects.Comment
	if err := unmarshalJsonResponse(
		resp, &posted,
		MessageFor{
			Status4xx: fmt.Sprintf("projectId:%v is not found or comment is rejected", projectId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return projects.Comment{}, err
	}
	return posted, nil
}
