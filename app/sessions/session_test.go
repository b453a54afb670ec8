package sessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Flashes(t *testing.T) {
	sess := &Session{}
	assert.Nil(t, sess.PopFlashes())

	sess.AddFlash(FlashDanger, "first")
	sess.AddFlash(FlashSuccess, "second")

	flashes := sess.PopFlashes()
	assert.Equal(t, []Flash{
		{Category: FlashDanger, Message: "first"},
		{Category: FlashSuccess, Message: "second"},
	}, flashes)
	assert.Nil(t, sess.PopFlashes())
}

func TestSession_Context(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	sess := &Session{ID: "abc", UserID: 3}
	ctx := WithSession(context.Background(), sess)
	assert.Same(t, sess, FromContext(ctx))
	assert.True(t, FromContext(ctx).Authenticated())
}
