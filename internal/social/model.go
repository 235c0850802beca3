package social

import "social-service/internal/user"

// Suggestion is a friend-of-friend candidate annotated with the number of
// the viewer's direct follows that also follow the candidate.
type Suggestion struct {
	user.UserResponse
	CommonConnections int64 `json:"common_connections_count"`
}
