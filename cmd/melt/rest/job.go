package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/strandworks/meltfab/pkg/api/types/jobs"
)

func (c *client) SubmitPrintJob(ctx context.Context, clusterId string, spec jobs.Spec) (jobs.Detail, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return jobs.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("clusters", clusterId, "jobs"),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return jobs.Detail{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return jobs.Detail{}, err
	}
	defer resp.Body.Close()

	var queued jobs.Detail
	if err := unmarshalJsonResponse(
		resp, &queued,
		MessageFor{
			Status4xx: fmt.Sprintf("clusterId:%v is not found or the job is rejected", clusterId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return jobs.Detail{}, err
	}
	return queued, nil
}

func (c *client) FindPrintJobs(ctx context.Context, status []string) ([]jobs.Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("jobs"), nil)
	if err != nil {
		return nil, err
	}

	if 0 < len(status) {
		q := req.URL.Query()
		q.Add("status", strings.Join(status, ","))
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]jobs.Detail, 0, 5)
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

func (c *client) GetPrintJob(ctx context.Context, jobId string) (jobs.Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("jobs", jobId), nil)
	if err != nil {
		return jobs.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return jobs.Detail{}, err
	}
	defer resp.Body.Close()

	var detail jobs.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("jobId:%v is not found", jobId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return jobs.Detail{}, err
	}
	return detail, nil
}
