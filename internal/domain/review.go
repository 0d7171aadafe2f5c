package domain

// Review is a published customer review.
type Review struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ReviewSubmission is an incoming review before the access code is redeemed.
type ReviewSubmission struct {
	Name    string
	Email   string
	Rating  int
	Message string
	Code    string
}
