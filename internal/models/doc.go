// Package models defines the core domain records for Splitroom.
//
// # Records
//
//   - User: a registered account (global nickname, avatar, lifecycle status)
//   - Room: a shared ledger joined through a six-character invite code
//   - Member: the membership of one user in one room, with a room-scoped nickname
//   - Transfer: a positive money movement from a payer to a payee inside a room
//   - Settlement / SettlementItem: an immutable snapshot of the unsettled transfers
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers. A Member references its Room
//     and User by ID and is resolved through the store at read time.
//  2. Money is an Amount (integer cents). Floats never touch the ledger.
//  3. Records are plain data. Rules live in the ledger package.
package models
