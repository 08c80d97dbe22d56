package dto

// UserResponse represents basic user information
type UserResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserWithFollowResponse is a user annotated with whether the
// requesting user follows them.
type UserWithFollowResponse struct {
	UserResponse
	IsFollowed bool `json:"is_followed"`
}

// UserListResponse wraps a list of annotated users
type UserListResponse struct {
	Users []UserWithFollowResponse `json:"users"`
}

// FollowedUsersResponse wraps the users the requester follows
type FollowedUsersResponse struct {
	Users []UserResponse `json:"users"`
}
