package jobs

import "time"

// Statuses a print job can be in.
const (
	StatusQueued   string = "queued"
	StatusPrinting string = "printing"
	StatusDone     string = "done"
	StatusFailed   string = "failed"
	StatusAborted  string = "aborted"
)

// Spec is the payload to submit a print job to a cluster.
type Spec struct {
	// display name of the job.
	JobName string `json:"jobName"`

	// file to print. Must be uploaded beforehand.
	FileId string `json:"fileId"`

	// client-generated key. The cloud deduplicates submissions by it.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Detail is the metadata of a print job.
type Detail struct {
	JobId     string     `json:"jobId"`
	JobName   string     `json:"jobName"`
	ClusterId string     `json:"clusterId"`
	FileId    string     `json:"fileId"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

func (a Detail) Equal(b Detail) bool {
	return a.JobId == b.JobId &&
		a.JobName == b.JobName &&
		a.ClusterId == b.ClusterId &&
		a.FileId == b.FileId &&
		a.Status == b.Status &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		timePtrEqual(a.StartedAt, b.StartedAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
