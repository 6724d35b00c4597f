// Package server hosts the JSON API for arrival lookups.
//
// The server owns one immutable schedule index loaded at startup and a TTL
// cache of realtime snapshots keyed by feed endpoint. Handlers construct a
// fresh matcher per request, so concurrent requests never share mutable
// state; two requests inside the same TTL window observe the same snapshot,
// which keeps an arrivals listing and the trip-path drill-down that follows
// it consistent with each other.
//
// Endpoints:
//
//	GET /api/health
//	GET /api/lines
//	GET /api/stops?line=L
//	GET /api/arrivals?line=L&from=NAME&to=NAME[&sort=soonest]
//	GET /api/trip-path?line=L&trip=ID
//
// Validation failures return 400, unknown stations 404, upstream fetch or
// decode failures 502. Error bodies are {"error": "..."} JSON payloads.
package server
