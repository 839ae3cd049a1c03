// Package models defines the core domain models for TripSplit.
//
// # Models
//
//   - Trip: a named pool of participants and the expenses they share
//   - Participant: one person in a trip, identified by an opaque ID
//   - Expense: one spending event with payers, splitters and adjustments
//
// Derived values (balances, suggested transfers) are not models; they live in
// the calculator package and are recomputed from a Trip on every query.
//
// # Design Principles
//
//  1. **IDs, not pointers**: expenses reference participants by ID string
//  2. **Append-only participants**: participants are never removed from a trip
//  3. **Trip owns everything**: participants and expenses are never shared
//     across trips
//  4. **Tolerant references**: an expense may reference an ID that is not a
//     participant; consumers decide what that means
package models
