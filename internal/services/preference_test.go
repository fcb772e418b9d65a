package services

import (
	"context"
	"testing"

	"eventscheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryNames(p *domain.Preference) []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}

func TestPreferenceService_GetCreatesLazily(t *testing.T) {
	ctx := context.Background()
	repo := newFakePreferenceRepo(newFakeCategoryRepo("Workshop"))
	svc := NewPreferenceService(repo, &lockingTx{})

	got, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
	assert.Equal(t, 1, repo.creates)

	_, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates, "second read reuses the record")
}

func TestPreferenceService_SetCategories(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		initial   []int64
		input     []int64
		wantNames []string
		errIs     error
	}{
		{name: "sets categories", input: []int64{1, 2}, wantNames: []string{"Workshop", "Talk"}},
		{name: "duplicates collapse", input: []int64{2, 2, 1}, wantNames: []string{"Talk", "Workshop"}},
		{name: "replaces previous set", initial: []int64{1}, input: []int64{2}, wantNames: []string{"Talk"}},
		{name: "empty input keeps current set", initial: []int64{1}, input: nil, wantNames: []string{"Workshop"}},
		{name: "unknown category", input: []int64{9}, errIs: domain.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePreferenceRepo(newFakeCategoryRepo("Workshop", "Talk"))
			if tt.initial != nil {
				repo.sets[7] = tt.initial
			}
			svc := NewPreferenceService(repo, &lockingTx{})

			got, err := svc.SetCategories(ctx, 7, tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, categoryNames(got))
		})
	}
}

func TestPreferenceService_ClearCategories(t *testing.T) {
	ctx := context.Background()
	repo := newFakePreferenceRepo(newFakeCategoryRepo("Workshop"))
	repo.sets[7] = []int64{1}
	tx := &lockingTx{}
	svc := NewPreferenceService(repo, tx)

	got, err := svc.ClearCategories(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
	assert.Equal(t, 1, tx.calls)
}
