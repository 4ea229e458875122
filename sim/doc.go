// Package sim provides the Monte Carlo debt simulation engine.
//
// # Reading Guide
//
//   - params.go: Params, validation and InvalidParameterError
//   - engine.go: the per-year Step and the Run loop
//   - rng.go: seeded, partitioned random sources
//   - batch.go: independent repeated runs with per-year statistics
//
// # Model
//
// A fixed population of villagers starts with zero debt. Every year each
// carried balance grows by the interest rate, each villager borrows the
// loan amount again (also grown by the interest rate), and a fixed pool of
// villagers*loan is handed out in a uniformly random order. Villagers are
// paid in full while the pool lasts; the first one the pool cannot cover
// receives what is left, and everyone unpaid carries the balance forward.
//
// Rendering of results lives in sim/report, which only consumes Result.
package sim
