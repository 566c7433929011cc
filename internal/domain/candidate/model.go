package candidate

type Candidate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VoteCount int64  `json:"voteCount"`
}
