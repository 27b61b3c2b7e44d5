package domain

// Comment is a single Reddit comment, held in memory for one run only.
type Comment struct {
	ID    string
	Body  string
	Score int
}

// Thread is a fully resolved megathread: the submission itself plus the
// flattened, order-preserving comment corpus.
type Thread struct {
	ID       string
	Title    string
	Score    int
	Comments []Comment
}
