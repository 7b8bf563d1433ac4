package models

import "time"

// User is the authenticated principal for the current session: profile
// fields, the session token, and the user's favorites and own stories as
// value copies of feed records. At most one User is meaningful per running
// client.
type User struct {
	Username  string
	Name      string
	CreatedAt time.Time

	// Token is the opaque credential required for all mutating calls.
	Token string

	Favorites  *StorySet
	OwnStories *StorySet
}

func NewUser(username, name string, createdAt time.Time, token string) *User {
	return &User{
		Username:   username,
		Name:       name,
		CreatedAt:  createdAt,
		Token:      token,
		Favorites:  NewStorySet(),
		OwnStories: NewStorySet(),
	}
}

func (u *User) IsFavorite(storyID string) bool {
	return u.Favorites.Contains(storyID)
}

// Owns reports whether the story was submitted by this user, meaning it is
// eligible for deletion.
func (u *User) Owns(st Story) bool {
	return st.Username == u.Username || u.OwnStories.Contains(st.ID)
}

// ClearFavorites empties the local favorites cache only; the remote
// favorites list is untouched and reloads on the next login. Invoked on
// logout.
func (u *User) ClearFavorites() {
	u.Favorites.Clear()
}
