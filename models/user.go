package models

// User defines the structure for member accounts. Friends holds friendship
// edges (kept symmetric by the accept flow), FriendRequests the handles of
// users with an unresolved inbound request.
type User struct {
	Nickname       string   `dynamodbav:"nickname" json:"nickname"`
	Username       string   `dynamodbav:"username" json:"username"`
	Password       string   `dynamodbav:"password" json:"-"`
	ProfilePic     string   `dynamodbav:"profilePic,omitempty" json:"profilePic,omitempty"`
	Friends        []string `dynamodbav:"friends,stringset,omitempty" json:"friends"`
	FriendRequests []string `dynamodbav:"friendRequests,stringset,omitempty" json:"friendRequests"`
}

// UsersTable is the DynamoDB table name for user accounts; nickname is the key.
const UsersTable = "Users"

// HasFriend reports whether handle appears in the user's friend set.
func (u *User) HasFriend(handle string) bool {
	for _, f := range u.Friends {
		if f == handle {
			return true
		}
	}
	return false
}

// HasRequestFrom reports whether handle has a pending request to this user.
func (u *User) HasRequestFrom(handle string) bool {
	for _, f := range u.FriendRequests {
		if f == handle {
			return true
		}
	}
	return false
}
