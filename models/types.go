// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Conflict reason strings returned to clients on 409 responses
const (
	ReasonAlreadyAssigned = "already_assigned"
	ReasonReceiverTaken   = "receiver_taken"
)

// Request types

type AddPeopleRequest struct {
	Names []string `json:"names"`
}

type CheckRequest struct {
	Name string `json:"name"`
}

type RevealRequest struct {
	Name     string `json:"name"`
	Receiver string `json:"receiver"`
}

// Response types

type PeopleResponse struct {
	People []string `json:"people"`
}

type AddPeopleResponse struct {
	Added int `json:"added"`
}

type RemovePersonResponse struct {
	RemovedPeople      int64 `json:"removed_people"`
	RemovedAssignments int64 `json:"removed_assignments"`
}

// Chit is one entry of the eligible pool, placed for display.
// Positions are percentages of the board; Rot is degrees.
type Chit struct {
	Name string  `json:"name"`
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
	Rot  float64 `json:"rot"`
}

type CheckResponse struct {
	Assigned bool   `json:"assigned"`
	Receiver string `json:"receiver,omitempty"`
	Chits    []Chit `json:"chits,omitempty"`
}

type RevealResponse struct {
	Receiver   string    `json:"receiver"`
	RevealedAt time.Time `json:"revealed_at"`
}

type AssignmentCountResponse struct {
	Count int `json:"count"`
}

type ResetResponse struct {
	Deleted int64 `json:"deleted"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
