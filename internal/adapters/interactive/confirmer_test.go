package interactive

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"

	"github.com/agentnft/beaconctl/internal/domain"
)

func TestAnswer(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr error
	}{
		{name: "yes", err: nil, want: true},
		{name: "no", err: promptui.ErrAbort, want: false},
		{name: "ctrl-c", err: promptui.ErrInterrupt, wantErr: domain.ErrAborted},
		{name: "ctrl-d", err: promptui.ErrEOF, wantErr: domain.ErrAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := answer(tt.err)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("terminal failure", func(t *testing.T) {
		ok, err := answer(errors.New("inappropriate ioctl for device"))
		assert.False(t, ok)
		assert.ErrorContains(t, err, "confirmation prompt failed")
	})
}
