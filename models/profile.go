package models

// CreatorProfile is a scraped creator profile, normalized from the profile
// scraper's record shape.
type CreatorProfile struct {
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	Biography      string `json:"biography"`
	FollowersCount int    `json:"followersCount"`
	FollowsCount   int    `json:"followsCount"`
	PostsCount     int    `json:"postsCount"`
	Private        bool   `json:"private"`
	Verified       bool   `json:"verified"`
	ProfilePicURL  string `json:"profilePicUrl"`
	ExternalURL    string `json:"externalUrl"`
}

// EmergenceScore is the derived 0-100 growth-potential record for a creator.
// The raw inputs are kept alongside the composite for transparency.
type EmergenceScore struct {
	Composite int `json:"emergence_score"`

	EngagementPoints int `json:"engagement_points"`
	RatioPoints      int `json:"ratio_points"`
	FollowerPoints   int `json:"follower_points"`
	ActivityPoints   int `json:"activity_points"`

	EngagementRate float64 `json:"engagement_rate"`
	FollowerRatio  float64 `json:"follower_following_ratio"`
	AvgLikes       float64 `json:"avg_likes"`
	AvgComments    float64 `json:"avg_comments"`
}

// ScoredCreator pairs a profile with its emergence score for ranked output.
type ScoredCreator struct {
	Profile   CreatorProfile  `json:"profile"`
	Emergence *EmergenceScore `json:"emergence,omitempty"`
}
