package models

// Action kinds emitted by the actions endpoint.
const (
	ActionFollow  = "follow"
	ActionLike    = "like"
	ActionComment = "comment"
)

// Action is one engagement task derived from a keyword search: follow the
// creator, like the post or leave a generated comment on it.
type Action struct {
	Action  string `json:"action"`
	URL     string `json:"url"`
	Comment string `json:"comment,omitempty"`
	Caption string `json:"caption,omitempty"`
	ImgURL  string `json:"img_url,omitempty"`
}
