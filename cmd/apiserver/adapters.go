package main

import "context"

// pingChecker adapts an infrastructure Ping method to the health handler's
// checker interface.
type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func (p pingChecker) Name() string                    { return p.name }
func (p pingChecker) Check(ctx context.Context) error { return p.ping(ctx) }
