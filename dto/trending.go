package dto

// TrendingTopicsRequest is the body of POST /trending-topics.
type TrendingTopicsRequest struct {
	NicheKeywords  []string `json:"niche_keywords" binding:"required"`
	Platforms      []string `json:"platforms"`
	TimeframeHours int      `json:"timeframe_hours"`
}

// CreatorsRequest is the body of POST /creators.
type CreatorsRequest struct {
	Keyword          string `json:"keyword" binding:"required"`
	FollowersCountGT *int   `json:"followers_count_gt"`
	FollowersCountLT *int   `json:"followers_count_lt"`
	SortByEmergence  bool   `json:"sort_by_emergence"`
}

// RelatedPostsRequest is the body of POST /related-posts/{platform}.
type RelatedPostsRequest struct {
	Keywords []string `json:"keywords" binding:"required"`
}

// ActionsRequest is the body of POST /actions.
type ActionsRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}
