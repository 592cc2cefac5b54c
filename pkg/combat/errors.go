package combat

import "errors"

var (
	// ErrNotActive is returned when an operation requires an active
	// encounter that doesn't exist.
	ErrNotActive = errors.New("no active combat for campaign")

	// ErrAlreadyActive is returned by StartCombat when the campaign
	// already has an encounter running.
	ErrAlreadyActive = errors.New("combat already active for campaign")

	// ErrParticipantNotFound is returned when a named participant is
	// not part of the encounter.
	ErrParticipantNotFound = errors.New("participant not found in combat")

	// ErrEncounterExhausted is returned by AdvanceTurn when every
	// participant is at 0 HP.
	ErrEncounterExhausted = errors.New("all combat participants are down")

	// ErrNoParticipants is returned by StartCombat when neither
	// characters nor monsters are given.
	ErrNoParticipants = errors.New("combat requires at least one participant")

	// ErrDuplicateParticipant is returned by StartCombat when the same
	// name appears twice in the requested participants.
	ErrDuplicateParticipant = errors.New("duplicate participant name")

	// ErrNoResult is returned when no combat result is pending for a
	// campaign.
	ErrNoResult = errors.New("no combat result for campaign")
)
