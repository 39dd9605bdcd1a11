package port

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.True(t, Classify("sms", 400, "bad number").Permanent)
	assert.True(t, Classify("sms", 404, "").Permanent)
	assert.False(t, Classify("sms", 429, "slow down").Permanent)
	assert.False(t, Classify("sms", 503, "").Permanent)
}

func TestIsPermanent(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", Classify("whatsapp", 401, "bad token"))
	assert.True(t, IsPermanent(wrapped))
	assert.False(t, IsPermanent(Classify("whatsapp", 500, "")))
	assert.False(t, IsPermanent(errors.New("dial tcp: timeout")))
	assert.Equal(t, "whatsapp: status 401: bad token", Classify("whatsapp", 401, "bad token").Error())
}
