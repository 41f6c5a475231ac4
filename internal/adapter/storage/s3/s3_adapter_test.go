package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("2004", "Cover.PNG")
	assert.True(t, strings.HasPrefix(key, "products/2004/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, ObjectKey("2004", "Cover.PNG"))
}
