package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func fast() Config {
	return Config{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond, Multiplier: 1}
}

func TestDo(t *testing.T) {
	log := logger.NewNop()
	boom := errors.New("boom")

	t.Run("retries then succeeds", func(t *testing.T) {
		attempts := 0
		err := Do(context.Background(), log, "op", func() error {
			attempts++
			if attempts < 3 {
				return boom
			}
			return nil
		}, fast())
		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		err := Do(context.Background(), log, "op", func() error {
			attempts++
			return boom
		}, fast())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, attempts)
	})

	t.Run("permanent stops at once", func(t *testing.T) {
		attempts := 0
		err := Do(context.Background(), log, "op", func() error {
			attempts++
			return Permanent(boom)
		}, fast())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, attempts)
	})
}
