package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "message only",
			err:  New(Config, "base url is empty"),
			want: "config: base url is empty",
		},
		{
			name: "with code",
			err:  WithCode(Server, 500, "internal error"),
			want: "server (code 500): internal error",
		},
		{
			name: "wrapped",
			err:  Wrap(Transport, "GET /api/data", fmt.Errorf("dial tcp: connection refused")),
			want: "transport: GET /api/data: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	root := stderrors.New("boom")
	err := fmt.Errorf("login: %w", Wrap(Transport, "POST /user/login", root))

	assert.Equal(t, Transport, KindOf(err))
	assert.True(t, Is(err, Transport))
	assert.False(t, Is(err, Server))
	require.ErrorIs(t, err, root)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, 600502, CodeOf(WithCode(AuthExpired, 600502, "not logged in")))
	assert.Equal(t, 0, CodeOf(stderrors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.False(t, Is(nil, Server))
}
