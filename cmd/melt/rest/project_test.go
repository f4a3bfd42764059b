package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	apierr "github.com/strandworks/meltfab/pkg/api/types/errors"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/strandworks/meltfab/pkg/cmp"
	"github.com/strandworks/meltfab/pkg/utils/try"
)

func TestCreateProject(t *testing.T) {
	t.Run("when the server accepts the project spec, it returns the created project", func(t *testing.T) {
		expected := projects.Detail{
			ProjectId:   "proj-1234",
			Name:        "bracket revision",
			Description: "load-bearing bracket, rev B",
			Owner:       "someone@example.com",
			CreatedAt:   try.To(time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")).OrFatal(t),
			UpdatedAt:   try.To(time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")).OrFatal(t),
		}

		var gotSpec projects.Spec
		var gotRequest *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequest = r
			if err := json.NewDecoder(r.Body).Decode(&gotSpec); err != nil {
				t.Fatal(err)
			}

			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(expected)
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		spec := projects.Spec{Name: "bracket revision", Description: "load-bearing bracket, rev B"}
		actual := try.To(testee.CreateProject(context.Background(), spec)).OrFatal(t)

		if !actual.Equal(expected) {
			t.Errorf("response is not equal (actual, expected): %v, %v", actual, expected)
		}
		if gotRequest.Method != http.MethodPost {
			t.Errorf("request is not POST /projects (actual method = %s)", gotRequest.Method)
		}
		if !strings.HasSuffix(gotRequest.URL.Path, "/projects") {
			t.Errorf("request is not POST /projects (actual path = %s)", gotRequest.URL.Path)
		}
		if gotRequest.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization header is wrong: %s", gotRequest.Header.Get("Authorization"))
		}
		if gotSpec != spec {
			t.Errorf("sent spec is wrong (actual, expected): %v, %v", gotSpec, spec)
		}
	})

	t.Run("a server responding with error is given", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
			t.Run(fmt.Sprintf("when server responds with %d, it returns error", status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					buf := try.To(json.Marshal(
						apierr.ErrorMessage{Reason: "something wrong"},
					)).OrFatal(t)
					w.Write(buf)
				}))
				defer server.Close()

				testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

				if _, err := testee.CreateProject(
					context.Background(), projects.Spec{Name: "x"},
				); err == nil {
					t.Errorf("no error occured")
				}
			})
		}
	})
}

func TestFindProjects(t *testing.T) {
	t.Run("when server returns projects, it returns them as is", func(t *testing.T) {
		expected := []projects.Detail{
			{
				ProjectId: "proj-1",
				Name:      "bracket",
				CreatedAt: try.To(time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")).OrFatal(t),
				UpdatedAt: try.To(time.Parse(time.RFC3339, "2024-05-02T10:00:00Z")).OrFatal(t),
			},
			{
				ProjectId: "proj-2",
				Name:      "bracket v2",
				CreatedAt: try.To(time.Parse(time.RFC3339, "2024-05-03T10:00:00Z")).OrFatal(t),
				UpdatedAt: try.To(time.Parse(time.RFC3339, "2024-05-03T10:00:00Z")).OrFatal(t),
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

		actual := try.To(testee.FindProjects(context.Background(), "bracket")).OrFatal(t)

		if !cmp.SliceEqWith(actual, expected, projects.Detail.Equal) {
			t.Errorf("response is not equal (actual, expected): %v, %v", actual, expected)
		}
		if gotRequest.Method != http.MethodGet {
			t.Errorf("request is not GET /projects (actual method = %s)", gotRequest.Method)
		}
		if gotRequest.URL.Query().Get("search") != "bracket" {
			t.Errorf("search query is wrong: %s", gotRequest.URL.RawQuery)
		}
	})

	t.Run("when query is empty, it sends no search parameter", func(t *testing.T) {
		var gotRequest *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequest = r
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		actual := try.To(testee.FindProjects(context.Background(), "")).OrFatal(t)

		if len(actual) != 0 {
			t.Errorf("unexpected projects: %v", actual)
		}
		if gotRequest.URL.Query().Has("search") {
			t.Errorf("request has search query: %s", gotRequest.URL.RawQuery)
		}
	})

	t.Run("when server responds with error, it returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		if _, err := testee.FindProjects(context.Background(), ""); err == nil {
			t.Errorf("no error occured")
		}
	})
}

func TestAddComment(t *testing.T) {
	t.Run("when server accepts the comment, it returns the posted comment", func(t *testing.T) {
		projectId := "proj-1234"
		expected := projects.Comment{
			CommentId: "comment-1",
			ProjectId: projectId,
			Author:    "someone@example.com",
			Body:      "sliced with 0.2mm layers",
			PostedAt:  try.To(time.Parse(time.RFC3339, "2024-05-01T11:00:00Z")).OrFatal(t),
		}

		var gotSpec projects.CommentSpec
		var gotRequest *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequest = r
			if err := json.NewDecoder(r.Body).Decode(&gotSpec); err != nil {
				t.Fatal(err)
			}

			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(expected)
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		spec := projects.CommentSpec{Body: "sliced with 0.2mm layers"}
		actual := try.To(testee.AddComment(context.Background(), projectId, spec)).OrFatal(t)

		if !actual.Equal(expected) {
			t.Errorf("response is not equal (actual, expected): %v, %v", actual, expected)
		}
		if gotRequest.Method != http.MethodPost {
			t.Errorf("request is not POST (actual method = %s)", gotRequest.Method)
		}
		if !strings.HasSuffix(gotRequest.URL.Path, "/projects/"+projectId+"/comments") {
			t.Errorf("request path is wrong: %s", gotRequest.URL.Path)
		}
		if gotSpec != spec {
			t.Errorf("sent spec is wrong (actual, expected): %v, %v", gotSpec, spec)
		}
	})

	t.Run("when server responds with error, it returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			buf := try.To(json.Marshal(
				apierr.ErrorMessage{Reason: "no such project"},
			)).OrFatal(t)
			w.Write(buf)
		}))
		defer server.Close()

		testee := try.To(krst.NewClient(profileFor(server.URL), tokenSource("test-token"))).OrFatal(t)

		if _, err := testee.AddComment(
			context.Background(), "no-such-project", projects.CommentSpec{Body: "hi"},
		); err == nil {
			t.Errorf("no error occured")
		}
	})
}
