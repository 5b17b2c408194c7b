// Package retention bounds the stored history of each datapoint.
//
// The Manager prunes points older than a maximum age or beyond a
// maximum per-datapoint count, and removes the full history of
// datapoints that are no longer enabled. The Scheduler drives periodic
// passes with an initial delay.
package retention
