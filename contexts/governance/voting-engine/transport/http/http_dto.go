package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateVoteRequest struct {
	VoteType string `json:"vote_type"`
	Duration uint64 `json:"duration"`
	Payload  string `json:"payload"`
}

type VoteResponse struct {
	VoteID        uint64 `json:"vote_id"`
	Creator       string `json:"creator"`
	VoteType      string `json:"vote_type"`
	CreatedHeight uint64 `json:"created_height"`
	ExpiryHeight  uint64 `json:"expiry_height"`
	Concluded     bool   `json:"concluded"`
	Digest        string `json:"digest,omitempty"`
}

type VoteListResponse struct {
	Items []VoteResponse `json:"items"`
}

type CastBallotRequest struct {
	Side string `json:"side"`
}

type CastLockBallotRequest struct {
	Side     string `json:"side"`
	Deposit  uint64 `json:"deposit"`
	Duration uint64 `json:"duration"`
}

type BallotSetsResponse struct {
	VoteID uint64   `json:"vote_id"`
	Aye    []string `json:"aye"`
	Nay    []string `json:"nay"`
}

type TallyResponse struct {
	VoteID    uint64 `json:"vote_id"`
	AyeWeight uint64 `json:"aye_weight"`
	NayWeight uint64 `json:"nay_weight"`
}

type LockResponse struct {
	VoteID   uint64 `json:"vote_id"`
	Voter    string `json:"voter"`
	Deposit  uint64 `json:"deposit"`
	Duration uint64 `json:"duration"`
	Until    uint64 `json:"until_height"`
}
