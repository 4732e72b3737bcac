// Package errors provides structured domain errors rendered through the
// i18n catalog.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Undo errors
	CodeNothingToUndo   Code = "NOTHING_TO_UNDO"
	CodeMessageNotFound Code = "MESSAGE_NOT_FOUND"
	CodeTurnAtStart     Code = "TURN_AT_START"

	// Order errors
	CodeOrderEmpty            Code = "ORDER_EMPTY"
	CodeOrderNotFound         Code = "ORDER_NOT_FOUND"
	CodeNoOrders              Code = "NO_ORDERS"
	CodeOrdersAlreadyRevealed Code = "ORDERS_ALREADY_REVEALED"

	// Turn errors
	CodeInvalidYear   Code = "INVALID_YEAR"
	CodeInvalidSeason Code = "INVALID_SEASON"

	// Board errors
	CodeInvalidBoardLink Code = "INVALID_BOARD_LINK"

	// Faction and scoreboard errors
	CodeNoFaction          Code = "NO_FACTION"
	CodeInvalidFaction     Code = "INVALID_FACTION"
	CodeScoreboardDisabled Code = "SCOREBOARD_DISABLED"

	// Target errors
	CodeTargetsNotAssigned Code = "TARGETS_NOT_ASSIGNED"

	// Room errors
	CodeRoomNotConfigured Code = "ROOM_NOT_CONFIGURED"
	CodeRoomMoveFailed    Code = "ROOM_MOVE_FAILED"
	CodeNotInVoice        Code = "NOT_IN_VOICE"
	CodeNotSameRoom       Code = "NOT_SAME_ROOM"

	// Platform errors
	CodePlatformUnavailable Code = "PLATFORM_UNAVAILABLE"
)

// Kind groups codes by how a caller should treat them.
type Kind string

const (
	// KindPrecondition means the command is not valid in the current state.
	KindPrecondition Kind = "precondition"
	// KindInvalidInput means an argument was rejected.
	KindInvalidInput Kind = "invalid_input"
	// KindExternal means a chat platform call failed.
	KindExternal Kind = "external"
	// KindInternal is everything else.
	KindInternal Kind = "internal"
)

// Kind classifies the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeNothingToUndo,
		CodeTurnAtStart,
		CodeOrderNotFound,
		CodeNoOrders,
		CodeOrdersAlreadyRevealed,
		CodeNoFaction,
		CodeScoreboardDisabled,
		CodeTargetsNotAssigned,
		CodeNotInVoice,
		CodeNotSameRoom:
		return KindPrecondition
	case CodeOrderEmpty,
		CodeInvalidYear,
		CodeInvalidSeason,
		CodeInvalidBoardLink,
		CodeInvalidFaction:
		return KindInvalidInput
	case CodeMessageNotFound,
		CodeRoomNotConfigured,
		CodeRoomMoveFailed,
		CodePlatformUnavailable:
		return KindExternal
	default:
		return KindInternal
	}
}
