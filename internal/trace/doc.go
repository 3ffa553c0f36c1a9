// Package trace records what pycheck is doing while it checks units.
//
// Spans nest driver → pass → module → node. The level decides how deep a
// tracer looks:
//
//	off     nothing
//	error   nothing but the ring buffer kept for crash dumps
//	phase   the driver run and every sema_check pass
//	detail  plus one span per checked unit
//	debug   plus one span per statement
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "unit:"+path, parent)
//	defer span.End("")
//
// The CLI exposes it as `pycheck check --trace=- --trace-level=detail`.
package trace
