package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify_APIErrors(t *testing.T) {
	tests := []struct {
		code      int
		status    string
		want      ErrorKind
		transient bool
	}{
		{400, "INVALID_ARGUMENT", KindInvalidInput, false},
		{429, "RESOURCE_EXHAUSTED", KindResourceExhausted, true},
		{504, "DEADLINE_EXCEEDED", KindDeadlineExceeded, true},
		{500, "INTERNAL", KindServerError, true},
		{503, "UNAVAILABLE", KindServerError, true},
		{403, "PERMISSION_DENIED", KindPermanent, false},
		{404, "NOT_FOUND", KindPermanent, false},
		{0, "RESOURCE_EXHAUSTED", KindResourceExhausted, true},
		{0, "INVALID_ARGUMENT", KindInvalidInput, false},
		{418, "", KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.code, tt.status), func(t *testing.T) {
			err := Classify("m", genai.APIError{Code: tt.code, Status: tt.status, Message: "boom"})
			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, tt.transient, IsTransient(err))
		})
	}
}

func TestClassify_ContextAndPassThrough(t *testing.T) {
	assert.Nil(t, Classify("m", nil))

	err := Classify("m", fmt.Errorf("post: %w", context.DeadlineExceeded))
	assert.Equal(t, KindDeadlineExceeded, KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, KindUnknown, KindOf(Classify("m", context.Canceled)))
	assert.Equal(t, KindUnknown, KindOf(Classify("m", errors.New("weird"))))

	already := &Error{Kind: KindServerError, Model: "m", Err: errors.New("x")}
	assert.Same(t, already, Classify("other", already))
}

func TestError_Messages(t *testing.T) {
	err := &Error{Kind: KindInvalidInput, Model: "gemini", Err: errors.New("bad prompt")}
	assert.Contains(t, err.Error(), "invalid input provided")
	assert.Contains(t, err.Error(), "bad prompt")

	wrapped := fmt.Errorf("page Home: %w", err)
	assert.Equal(t, KindInvalidInput, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, "resource_exhausted", KindResourceExhausted.String())
}
