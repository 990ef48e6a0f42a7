package engine

import (
	"errors"
	"fmt"
)

// ReasonCode classifies a rejected command. Rejections are recovered
// locally: the command is a no-op and game state is unchanged.
type ReasonCode string

const (
	ReasonCellOccupied     ReasonCode = "cell_occupied"
	ReasonWrongSeason      ReasonCode = "wrong_season"
	ReasonInsufficientCash ReasonCode = "insufficient_cash"
	ReasonNoCrop           ReasonCode = "no_crop"
	ReasonNotReady         ReasonCode = "not_ready"
	ReasonPanelActive      ReasonCode = "panel_active"
	ReasonNoPanel          ReasonCode = "no_panel"
	ReasonGameOver         ReasonCode = "game_over"
	ReasonBadCoordinate    ReasonCode = "bad_coordinate"
	ReasonBadCrop          ReasonCode = "bad_crop"
	ReasonBadChoice        ReasonCode = "bad_choice"
	ReasonBadSpeed         ReasonCode = "bad_speed"
	ReasonBadScope         ReasonCode = "bad_scope"
	ReasonEmptyBulk        ReasonCode = "empty_bulk"
)

// CommandError is the typed rejection returned by every command that
// fails a precondition.
type CommandError struct {
	Code ReasonCode
	msg  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

func rejectf(code ReasonCode, format string, args ...any) *CommandError {
	return &CommandError{Code: code, msg: fmt.Sprintf(format, args...)}
}

// Reason extracts the reason code from a command rejection, or ""
// when err is not a CommandError.
func Reason(err error) ReasonCode {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ""
}
