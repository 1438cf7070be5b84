package generate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid api key",
			err:  errors.New("400 INVALID_ARGUMENT: API key not valid. Please pass a valid API key."),
			want: classifyRules[0].message,
		},
		{
			name: "quota exceeded",
			err:  errors.New("429 RESOURCE_EXHAUSTED: Quota exceeded for requests"),
			want: classifyRules[1].message,
		},
		{
			name: "rate limited",
			err:  errors.New("rate limit reached, slow down"),
			want: classifyRules[1].message,
		},
		{
			name: "model not found",
			err:  errors.New("404 NOT_FOUND: model imagen-9000 is not found"),
			want: classifyRules[2].message,
		},
		{
			name: "billing required",
			err:  errors.New("billing account required for this feature"),
			want: classifyRules[3].message,
		},
		{
			name: "priority order beats substring position",
			err:  errors.New("API key not valid: quota also exceeded"),
			want: classifyRules[0].message,
		},
		{
			name: "generic carries detail",
			err:  errors.New("connection reset by peer"),
			want: genericPrefix + "connection reset by peer",
		},
		{
			name: "no image sentinel",
			err:  ErrNoImage,
			want: MsgNoImage,
		},
		{
			name: "wrapped no image sentinel",
			err:  fmt.Errorf("generating: %w", ErrNoImage),
			want: MsgNoImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Empty(t, Classify(nil))
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, classifyRules[1].message, Classify(errors.New("QUOTA EXCEEDED")))
}
