package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	votingengine "govledger/contexts/governance/voting-engine"
	governanceerrors "govledger/contexts/governance/voting-engine/domain/errors"
	governancehttp "govledger/contexts/governance/voting-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "govledger/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	governance votingengine.Module
}

func New(governance votingengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		governance: governance,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/governance/votes", s.handleCreateVote)
	s.mux.HandleFunc("GET /v1/governance/votes", s.handleListVotes)
	s.mux.HandleFunc("GET /v1/governance/votes/{vote_id}", s.handleGetVote)
	s.mux.HandleFunc("POST /v1/governance/votes/{vote_id}/ballots", s.handleCastBallot)
	s.mux.HandleFunc("GET /v1/governance/votes/{vote_id}/ballots", s.handleBallotSets)
	s.mux.HandleFunc("POST /v1/governance/votes/{vote_id}/lock-ballots", s.handleCastLockBallot)
	s.mux.HandleFunc("GET /v1/governance/votes/{vote_id}/lock", s.handleGetLock)
	s.mux.HandleFunc("POST /v1/governance/votes/{vote_id}/conclude", s.handleConcludeVote)
	s.mux.HandleFunc("POST /v1/governance/votes/{vote_id}/withdrawals", s.handleWithdraw)
	s.mux.HandleFunc("GET /v1/governance/votes/{vote_id}/tally", s.handleTally)
}

func (s *Server) handleCreateVote(w http.ResponseWriter, r *http.Request) {
	creator := r.Header.Get("X-User-Id")
	if strings.TrimSpace(creator) == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CreateVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CreateVoteHandler(r.Context(), creator, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	creator := r.URL.Query().Get("creator")
	if strings.TrimSpace(creator) == "" {
		writeGovernanceError(w, http.StatusBadRequest, "missing_creator", "creator query parameter is required")
		return
	}

	resp, err := s.governance.Handler.ListByCreatorHandler(r.Context(), creator)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVote(w http.ResponseWriter, r *http.Request) {
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}
	resp, err := s.governance.Handler.GetVoteHandler(r.Context(), voteID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastBallot(w http.ResponseWriter, r *http.Request) {
	voter := r.Header.Get("X-User-Id")
	if strings.TrimSpace(voter) == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}

	var req governancehttp.CastBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.governance.Handler.CastBallotHandler(r.Context(), voter, voteID, req); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleBallotSets(w http.ResponseWriter, r *http.Request) {
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}
	resp, err := s.governance.Handler.BallotSetsHandler(r.Context(), voteID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastLockBallot(w http.ResponseWriter, r *http.Request) {
	voter := r.Header.Get("X-User-Id")
	if strings.TrimSpace(voter) == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}

	var req governancehttp.CastLockBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.governance.Handler.CastLockBallotHandler(r.Context(), voter, voteID, req); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleGetLock(w http.ResponseWriter, r *http.Request) {
	voter := r.Header.Get("X-User-Id")
	if strings.TrimSpace(voter) == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}
	resp, err := s.governance.Handler.LockHandler(r.Context(), voter, voteID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Conclusion is permissionless: any caller, identified or not, may trigger
// the tally once the expiry height has passed.
func (s *Server) handleConcludeVote(w http.ResponseWriter, r *http.Request) {
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}
	if err := s.governance.Handler.ConcludeVoteHandler(r.Context(), voteID); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "concluded"})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	voter := r.Header.Get("X-User-Id")
	if strings.TrimSpace(voter) == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}
	if err := s.governance.Handler.WithdrawHandler(r.Context(), voter, voteID); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	voteID, ok := parseVoteID(w, r)
	if !ok {
		return
	}
	resp, err := s.governance.Handler.TallyHandler(r.Context(), voteID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseVoteID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("vote_id")
	voteID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_vote_id", "vote_id must be an unsigned integer")
		return 0, false
	}
	return voteID, true
}

func writeGovernanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, governanceerrors.ErrInvalidVoteInput),
		errors.Is(err, governanceerrors.ErrInvalidBallotSide),
		errors.Is(err, governanceerrors.ErrUnsupportedVoteType),
		errors.Is(err, governanceerrors.ErrPayloadTooLarge):
		writeGovernanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, governanceerrors.ErrVoteNotFound),
		errors.Is(err, governanceerrors.ErrLockNotFound),
		errors.Is(err, governanceerrors.ErrTallyNotFound):
		writeGovernanceError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, governanceerrors.ErrVoteAlreadyExists),
		errors.Is(err, governanceerrors.ErrVoteAlreadyConcluded),
		errors.Is(err, governanceerrors.ErrVoteNotConcluded),
		errors.Is(err, governanceerrors.ErrVoteExpired),
		errors.Is(err, governanceerrors.ErrVoteNotExpired),
		errors.Is(err, governanceerrors.ErrSameSideBallot),
		errors.Is(err, governanceerrors.ErrDuplicateLock),
		errors.Is(err, governanceerrors.ErrLockNotReleasable),
		errors.Is(err, governanceerrors.ErrVoteTypeMismatch):
		writeGovernanceError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, governanceerrors.ErrSelfVoteForbidden):
		writeGovernanceError(w, http.StatusForbidden, "self_vote_forbidden", err.Error())
	case errors.Is(err, governanceerrors.ErrInsufficientBalance),
		errors.Is(err, governanceerrors.ErrLockTooShort),
		errors.Is(err, governanceerrors.ErrVoteCountOverflow),
		errors.Is(err, governanceerrors.ErrCreatorCountOverflow),
		errors.Is(err, governanceerrors.ErrExpiryOverflow),
		errors.Is(err, governanceerrors.ErrWeightOverflow):
		writeGovernanceError(w, http.StatusUnprocessableEntity, "unprocessable", err.Error())
	default:
		writeGovernanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGovernanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, governancehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
