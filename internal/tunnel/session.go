package tunnel

import (
	"context"
	"errors"
	"sync"
)

// Session is an acquired, validated tunnel. Release must be called once
// scanning is over; extra calls are no-ops.
type Session struct {
	tunnel Tunnel
	exitIP string
	once   sync.Once
	err    error
}

// Acquire starts and validates t. On validation failure the tunnel is
// stopped before returning, so the caller has nothing to release.
func Acquire(ctx context.Context, t Tunnel) (*Session, error) {
	if err := t.Start(ctx); err != nil {
		return nil, err
	}

	ip, err := t.Validate(ctx)
	if err != nil {
		return nil, errors.Join(err, t.Stop(context.WithoutCancel(ctx)))
	}

	return &Session{tunnel: t, exitIP: ip}, nil
}

// ExitIP is the address the check page reported.
func (s *Session) ExitIP() string {
	return s.exitIP
}

// Release stops the tunnel. Cancellation of ctx does not prevent the stop.
func (s *Session) Release(ctx context.Context) error {
	s.once.Do(func() {
		s.err = s.tunnel.Stop(context.WithoutCancel(ctx))
	})
	return s.err
}
