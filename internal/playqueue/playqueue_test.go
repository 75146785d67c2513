package playqueue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/log"
	"github.com/mcrews/plexkit/internal/plex"
)

func TestCreateRequiresItems(t *testing.T) {
	srv := plex.NewClient("http://example", "token", log.NullLogger())
	_, err := Create(context.Background(), srv, "video", nil, Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}
