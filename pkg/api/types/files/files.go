package files

import "time"

// UploadRequest asks the cloud for an upload slot.
type UploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`

	// size of the file body in bytes.
	Size int64 `json:"size"`
}

// UploadSlot is the cloud's answer to UploadRequest.
//
// The file body is PUT to UploadUrl with ContentType.
type UploadSlot struct {
	FileId      string `json:"fileId"`
	UploadUrl   string `json:"uploadUrl"`
	ContentType string `json:"contentType"`
}

func (a UploadSlot) Equal(b UploadSlot) bool {
	return a == b
}

// Detail is the metadata of an uploaded file.
type Detail struct {
	FileId     string    `json:"fileId"`
	ProjectId  string    `json:"projectId"`
	FileName   string    `json:"fileName"`
	Size       int64     `json:"size"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (a Detail) Equal(b Detail) bool {
	return a.FileId == b.FileId &&
		a.ProjectId == b.ProjectId &&
		a.FileName == b.FileName &&
		a.Size == b.Size &&
		a.Status == b.Status &&
		a.UploadedAt.Equal(b.UploadedAt)
}
