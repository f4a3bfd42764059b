package clusters

import "time"

// Statuses a cluster can report.
const (
	StatusOnline  string = "online"
	StatusOffline string = "offline"
)

// Detail is the metadata of a printer cluster.
type Detail struct {
	ClusterId    string    `json:"clusterId"`
	FriendlyName string    `json:"friendlyName"`
	Status       string    `json:"status"`
	HostVersion  string    `json:"hostVersion,omitempty"`
	PrinterCount int       `json:"printerCount,omitempty"`
	LastSeenAt   time.Time `json:"lastSeenAt,omitempty"`
}

// IsOnline reports whether the cluster host is reachable from the cloud.
func (d Detail) IsOnline() bool {
	return d.Status == StatusOnline
}

func (a Detail) Equal(b Detail) bool {
	return a.ClusterId == b.ClusterId &&
		a.FriendlyName == b.FriendlyName &&
		a.Status == b.Status &&
		a.HostVersion == b.HostVersion &&
		a.PrinterCount == b.PrinterCount &&
		a.LastSeenAt.Equal(b.LastSeenAt)
}
