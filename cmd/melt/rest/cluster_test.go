package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/pkg/api/types/clusters"
	"github.com/strandworks/meltfab/pkg/cmp"
	"github.com/strandworks/meltfab/pkg/utils/try"
)

func TestFindClusters(t *testing.T) {
	t.Run("when server returns clusters, it returns them as is", func(t *testing.T) {
		expected := []clusters.Detail{
			{
				ClusterId:    "cluster-1",
				FriendlyName: "workshop left",
				Status:       clusters.StatusOnline,
				HostVersion:  "5.8.0",
				PrinterCount: 3,
				LastSeenAt:   try.To(time.Parse(time.RFC3339, "2024-05-01T14:00:00Z")).OrFatal(t),
			},
			{
				ClusterId:    "cluster-2",
				FriendlyName: "workshop right",
				Status:       clusters.StatusOffline,
				LastSeenAt:   try.To(time.Parse(time.RFC3339, "2024-04-30T22:00:00Z")).OrFatal(t),
			},
		}

		var gotRequest *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequest = r
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(expected)
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		actual := try.To(testee.FindClusters(context.Background())).OrFatal(t)

		if !cmp.SliceEqWith(actual, expected, clusters.Detail.Equal) {
			t.Errorf("response is not equal (actual, expected): %v, %v", actual, expected)
		}
		if gotRequest.Method != http.MethodGet {
			t.Errorf("request is not GET /clusters (actual method = %s)", gotRequest.Method)
		}
		if !strings.HasSuffix(gotRequest.URL.Path, "/clusters") {
			t.Errorf("request path is wrong: %s", gotRequest.URL.Path)
		}
		if gotRequest.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization header is wrong: %s", gotRequest.Header.Get("Authorization"))
		}
	})

	t.Run("when server responds with error, it returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		if _, err := testee.FindClusters(context.Background()); err == nil {
			t.Errorf("no error occured")
		}
	})
}
