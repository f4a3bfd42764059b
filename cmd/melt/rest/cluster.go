package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/strandworks/meltfab/pkg/api/types/clusters"
)

func (c *client) FindClusters(ctx context.Context) ([]clusters.Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("clusters"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]clusters.Detail, 0, 5)
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
