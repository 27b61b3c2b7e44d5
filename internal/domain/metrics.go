package domain

// VideoStats are the counters of a contestant's official performance video.
type VideoStats struct {
	Views    uint64
	Likes    uint64
	Comments uint64
}

// MetricsRow is the aggregated per-contestant output of one run.
// SpotifyPopularity and YouTube are nil when the source is disabled or the
// track/video was not found; the CSV cells stay empty in that case.
type MetricsRow struct {
	Artist            string
	Song              string
	SpotifyPopularity *int
	YouTube           *VideoStats
	Mentions          int
	Score             int
	TotalComments     int
	SentimentScore    float64
	SentimentLabel    string
	TopComments       []string
}
