// Package models defines the core domain models for divvy.
//
// # Models
//
//   - Participant: A member of the ledger, with derived balance fields
//   - Expense: A single shared expense paid by one participant
//   - Transfer: A suggested peer-to-peer payment that settles debt
//   - LedgerState: The serialized snapshot persisted by the storage layer
//
// Participants are identified by opaque UUID strings; equality is by ID.
// All balance fields on Participant are derived by the ledger engine and
// are never set directly.
//
// # Design Principles
//
//  1. Models are pure data; every invariant is enforced by the engine
//  2. Avoid circular references: expenses reference the payer by ID string
//  3. Amounts are float64 in a single currency unit; the ledger's currency
//     label is cosmetic and never affects arithmetic
package models
