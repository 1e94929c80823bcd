package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(CodeParseError, "bad file")
	if plain.Error() != "bad file" {
		t.Errorf("Error() = %q", plain.Error())
	}

	withCause := ParseError("bad file", stderrors.New("zip: not a valid zip file"))
	if withCause.Error() != "bad file: zip: not a valid zip file" {
		t.Errorf("Error() = %q", withCause.Error())
	}
}

func TestWrapPreservesCode(t *testing.T) {
	inner := InvalidColumn("column missing")
	wrapped := Wrap(inner, "building chart")

	if Code(wrapped) != CodeInvalidColumn {
		t.Errorf("Code = %s", Code(wrapped))
	}
	if Message(wrapped) != "building chart" {
		t.Errorf("Message = %q", Message(wrapped))
	}
	if !stderrors.Is(wrapped, inner) {
		t.Error("wrapped error lost its cause chain")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "doing work")
	if Code(wrapped) != CodeInternalError {
		t.Errorf("Code = %s", Code(wrapped))
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "reading %s", "sales.xlsx")
	if Message(wrapped) != "reading sales.xlsx" {
		t.Errorf("Message = %q", Message(wrapped))
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if Code(fmt.Errorf("plain")) != CodeInternalError {
		t.Errorf("Code = %s", Code(fmt.Errorf("plain")))
	}
}

func TestHasCode(t *testing.T) {
	err := UnsupportedChart("radar")
	if !HasCode(err, CodeUnsupportedChart) {
		t.Error("HasCode missed the error's own code")
	}
	if HasCode(err, CodeParseError) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(nil, CodeParseError) {
		t.Error("HasCode matched nil")
	}
}

func TestMessageFallsBackToError(t *testing.T) {
	if Message(stderrors.New("boom")) != "boom" {
		t.Errorf("Message = %q", Message(stderrors.New("boom")))
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		contains string
	}{
		{"parse", ParseError("no rows", nil), CodeParseError, "no rows"},
		{"invalid column", InvalidColumnf("column %q not found", "Sales"), CodeInvalidColumn, `"Sales"`},
		{"unsupported chart", UnsupportedChart("radar"), CodeUnsupportedChart, `"radar"`},
		{"not found", NotFound("table"), CodeNotFound, "table not found"},
		{"config", ConfigInvalid("PORT must not be empty"), CodeConfigInvalid, "PORT"},
		{"internal", Internal("unreachable"), CodeInternalError, "unreachable"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.err.Code != test.code {
				t.Errorf("code = %s, want %s", test.err.Code, test.code)
			}
			if !strings.Contains(test.err.Message, test.contains) {
				t.Errorf("message %q does not contain %q", test.err.Message, test.contains)
			}
		})
	}
}
