package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoundsEveryPhase(t *testing.T) {
	h := http.NewServeMux()
	srv := New(":0", h)

	assert.Equal(t, ":0", srv.Addr)
	assert.Same(t, h, srv.Handler)
	assert.Positive(t, srv.ReadHeaderTimeout)
	assert.Positive(t, srv.ReadTimeout)
	assert.Greater(t, srv.WriteTimeout, srv.ReadTimeout)
	assert.Positive(t, srv.IdleTimeout)
	assert.Equal(t, 64<<10, srv.MaxHeaderBytes)
}
