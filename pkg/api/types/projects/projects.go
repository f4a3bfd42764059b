package projects

import "time"

// Spec is the payload to create a new project.
type Spec struct {
	// display name of the project.
	Name string `json:"name"`

	Description string `json:"description,omitempty"`
}

// Detail is the metadata of a project as the cloud returns it.
type Detail struct {
	ProjectId   string    `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a Detail) Equal(b Detail) bool {
	return a.ProjectId == b.ProjectId &&
		a.Name == b.Name &&
		a.Description == b.Description &&
		a.Owner == b.Owner &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

// CommentSpec is the payload to post a comment on a project.
type CommentSpec struct {
	Body string `json:"body"`
}

// Comment is a posted comment.
type Comment struct {
	CommentId string    `json:"commentId"`
	ProjectId string    `json:"projectId"`
	Author    string    `json:"author,omitempty"`
	Body      string    `json:"body"`
	PostedAt  time.Time `json:"postedAt"`
}

func (a Comment) Equal(b Comment) bool {
	return a.CommentId == b.CommentId &&
		a.ProjectId == b.ProjectId &&
		a.Author == b.Author &&
		a.Body == b.Body &&
		a.PostedAt.Equal(b.PostedAt)
}
