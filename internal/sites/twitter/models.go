package twitter

// apiTweet is the wire shape of a single tweet.
type apiTweet struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ConversationID string `json:"conversation_id"`
	InReplyToID    string `json:"in_reply_to_status_id"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"`
	FavoriteCount  int    `json:"favorite_count"`
	RetweetCount   int    `json:"retweet_count"`
}

// apiTimelinePage is one page of a user timeline, newest first. An empty
// NextCursor means there are no further pages.
type apiTimelinePage struct {
	Tweets     []apiTweet `json:"tweets"`
	NextCursor string     `json:"next_cursor"`
}

// apiProfile is the wire shape of a user lookup.
type apiProfile struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Biography      string `json:"biography"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	StatusesCount  int    `json:"statuses_count"`
}

// grokChatRequest is the payload for one conversational turn. For a
// follow-up the full accumulated history plus the conversation id is sent.
type grokChatRequest struct {
	ConversationID string     `json:"conversation_id,omitempty"`
	Responses      []grokTurn `json:"responses"`
}

type grokTurn struct {
	Message string `json:"message"`
	Sender  string `json:"sender"` // "user" or "assistant"
}

type grokChatResponse struct {
	ConversationID string          `json:"conversation_id"`
	Message        string          `json:"message"`
	WebResults     []grokWebResult `json:"web_results"`
	RateLimit      *grokRateLimit  `json:"rate_limit"`
}

type grokWebResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type grokRateLimit struct {
	IsRateLimited bool   `json:"is_rate_limited"`
	Message       string `json:"message"`
}
