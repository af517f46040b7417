package preference

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/storage/memory"
)

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	svc, err := NewService(memory.NewPreferenceStore(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.Preference{JobTitle: "  Go Developer ", Location: "Pune", RemoteOnly: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, "Go Developer", saved.JobTitle)

	got, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	other, err := svc.Save(ctx, domain.Preference{JobTitle: "SRE"})
	require.NoError(t, err)
	assert.NotEqual(t, saved.ID, other.ID)
}

func TestSaveRequiresTitle(t *testing.T) {
	svc, _ := NewService(memory.NewPreferenceStore(), nil)
	_, err := svc.Save(context.Background(), domain.Preference{JobTitle: "  "})
	assert.Error(t, err)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	svc, _ := NewService(memory.NewPreferenceStore(), nil)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
