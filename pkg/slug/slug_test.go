package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "repo", Make("R.E.P.O"))
	assert.Equal(t, "call-of-duty", Make("  Call of Duty!! "))
	assert.Equal(t, "phasmophobia", Make("Phasmophobia"))
	assert.Equal(t, "half-life-2", Make("Half_Life  2"))
	assert.Equal(t, "", Make("!!!"))
}

func TestMakeIdempotent(t *testing.T) {
	for _, name := range []string{"R.E.P.O", "  Call of Duty!! ", "already-a-slug", "Ünïcode Name"} {
		once := Make(name)
		assert.Equal(t, once, Make(once), "slugify must be idempotent for %q", name)
	}
}
