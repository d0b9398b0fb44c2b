package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/steipete/memegrep/internal/model"
)

// Status codes meme-generator uses for its own exceptions.
const (
	StatusEngine           = 520
	StatusNoSuchMeme       = 531
	StatusTextOverLength   = 532
	StatusOpenImageFailed  = 533
	StatusParserExit       = 534
	StatusParamsMismatch   = 540
	StatusImageNumber      = 541
	StatusTextNumber       = 542
	StatusTextOrName       = 543
	StatusArgMismatch      = 550
	StatusArgParserExit    = 551
	StatusArgModelMismatch = 552
	StatusFeedback         = 560
)

var errorKinds = map[int]string{
	StatusEngine:           "engine error",
	StatusNoSuchMeme:       "no such meme",
	StatusTextOverLength:   "text too long",
	StatusOpenImageFailed:  "cannot open image",
	StatusParserExit:       "parser exit",
	StatusParamsMismatch:   "parameter mismatch",
	StatusImageNumber:      "wrong number of images",
	StatusTextNumber:       "wrong number of texts",
	StatusTextOrName:       "not enough texts or names",
	StatusArgMismatch:      "invalid options",
	StatusArgParserExit:    "invalid options",
	StatusArgModelMismatch: "invalid options",
	StatusFeedback:         "engine feedback",
}

// Error is any failure reported by the rendering engine.
type Error struct {
	Status  int
	Kind    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind
	}
	return e.Kind + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	return target == model.ErrTemplateNotFound && (e.Status == StatusNoSuchMeme || e.Status == http.StatusNotFound)
}

func newError(status int, body []byte) *Error {
	kind, ok := errorKinds[status]
	if !ok {
		kind = fmt.Sprintf("http %d", status)
	}
	return &Error{Status: status, Kind: kind, Message: detailMessage(body)}
}

func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil {
			return text
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(body))
}
