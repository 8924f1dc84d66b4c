// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines all HTTP routes using Go 1.22+ method routing.

# Routes

Roster management:

	GET    /people              List participants
	POST   /people              Add a batch of participants
	DELETE /people/{name}       Remove a person and their assignments
	DELETE /people              Delete all people and assignments

Picker flow:

	POST /pick/check            Existing assignment or laid-out chits
	POST /pick/reveal           Commit the picked chit

Administration:

	GET    /assignments/count   Committed assignment count
	DELETE /assignments         Reset the ledger for a new cycle

Plus GET /health and GET /.
*/
package router
