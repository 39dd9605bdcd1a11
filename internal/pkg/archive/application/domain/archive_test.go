package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "archives/w1/e1/1782864000.json", ObjectKey("w1", "e1", at))
}
