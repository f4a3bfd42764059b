package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/strandworks/meltfab/pkg/api/types/files"
)

func (c *client) UploadFile(
	ctx context.Context, projectId string, upreq files.UploadRequest, body io.Reader,
) (files.Detail, error) {
	slot, err := c.requestUploadSlot(ctx, projectId, upreq)
	if err != nil {
		return files.Detail{}, err
	}

	if err := c.putFileBody(ctx, slot, upreq.Size, body); err != nil {
		return files.Detail{}, err
	}

	return c.getFile(ctx, slot.FileId)
}

func (c *client) requestUploadSlot(
	ctx context.Context, projectId string, upreq files.UploadRequest,
) (files.UploadSlot, error) {
	reqBody, err := json.Marshal(upreq)
	if err != nil {
		return files.UploadSlot{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("projects", projectId, "files"),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return files.UploadSlot{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return files.UploadSlot{}, err
	}
	defer resp.Body.Close()

	var slot files.UploadSlot
	if err := unmarshalJsonResponse(
		resp, &slot,
		MessageFor{
			Status4xx: fmt.Sprintf("upload to projectId:%v is rejected by server", projectId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return files.UploadSlot{}, err
	}
	return slot, nil
}

// putFileBody sends the file content to the pre-signed slot URL.
//
// The slot URL authenticates itself; no Bearer token is attached.
func (c *client) putFileBody(ctx context.Context, slot files.UploadSlot, size int64, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, slot.UploadUrl, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	if slot.ContentType != "" {
		req.Header.Add("Content-Type", slot.ContentType)
	}

	resp, err := c.rawclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("upload of fileId:%v is rejected (status code = %d)", slot.FileId, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error during upload (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) getFile(ctx context.Context, fileId string) (files.Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("files", fileId), nil)
	if err != nil {
		return files.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return files.Detail{}, err
	}
	defer resp.Body.Close()

	var detail files.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("fileId:%v is not found", fileId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return files.Detail{}, err
	}
	return detail, nil
}
