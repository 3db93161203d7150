package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "bondsio:admin:activity:42", Key("activity", "42"))
	assert.Equal(t, "bondsio:admin:stats:activities", Key("stats:activities"))
}

func TestFilterKeyCanonicalOrder(t *testing.T) {
	a := FilterKey("stats:top_creators", map[string]string{"kind": "activity", "limit": "10"})
	b := FilterKey("stats:top_creators", map[string]string{"limit": "10", "kind": "activity"})

	assert.Equal(t, a, b)
	assert.Equal(t, "bondsio:admin:stats:top_creators:kind=activity&limit=10", a)
}

func TestFilterKeyEmptyParams(t *testing.T) {
	assert.Equal(t, "bondsio:admin:stats:bonds", FilterKey("stats:bonds", nil))
}
