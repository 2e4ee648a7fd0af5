// Package models defines the domain models for the todo backend.
//
// There are two entities:
//   - User: an account identified by a unique username
//   - Todo: a to-do item that references its owning User by ID
//
// Relationships use integer IDs rather than pointers. The only consistency
// rule between the two is the foreign key from Todo.UserID to User.ID,
// which the store enforces.
package models
