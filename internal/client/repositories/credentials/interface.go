// Package credentials persists the current session between runs so the
// client can log back in silently at startup.
package credentials

import "context"

// Session is the stored credential pair: the opaque login token and the
// username it belongs to.
type Session struct {
	Token    string
	Username string
}

type Repository interface {
	// Load returns the stored session, or (nil, nil) when none is stored.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
