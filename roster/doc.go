// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster stores the set of gift-exchange participants.

Thin collaborator around the person table. The engine only consumes
List; the remaining operations (Add, AddBatch, RemoveByName,
DeleteAll) serve roster management.

Duplicate names are allowed by design - RemoveByName may therefore
delete zero, one, or many rows and reports the count.
*/
package roster
