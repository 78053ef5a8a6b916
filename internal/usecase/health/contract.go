package health

import "context"

// DBPinger is the part of the profile store the health check needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}
