// Package throttle bounds the resources a pool spends on behalf of callers.
//
// A Controller tracks cache memory against an optional hard limit and gates
// calls to remote pools: a weighted semaphore caps how many remote calls are
// in flight and a token bucket caps how many start per second.
//
// A nil *Controller is valid and imposes no limits.
package throttle
