package browse

import (
	"context"
	"fmt"
	"testing"

	"github.com/mmcdole/barcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailLoader_Ready(t *testing.T) {
	repo := newFakeCatalog()
	repo.details["11007"] = domain.CocktailDetail{
		ID:          "11007",
		Name:        "Margarita",
		Ingredients: []string{"1 1/2 oz Tequila", "Salt"},
	}
	l := NewDetailLoader(repo, "11007")
	assert.Equal(t, StatusIdle, l.State().Status)

	req := l.Begin()
	require.NotNil(t, req)
	assert.True(t, l.State().Loading())
	assert.Nil(t, l.Begin(), "single lookup in flight")

	l.Apply(req.Run(context.Background()))

	require.True(t, l.State().Ready())
	assert.Equal(t, "Margarita", l.State().Value.Name)
	assert.Equal(t, []string{"1 1/2 oz Tequila", "Salt"}, l.State().Value.Ingredients)
	assert.Equal(t, domain.KindUnknown, l.Kind())
}

func TestDetailLoader_NotFound(t *testing.T) {
	repo := newFakeCatalog()
	l := NewDetailLoader(repo, "99999")

	err := l.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, l.State().Failed())
	assert.Equal(t, domain.KindNotFound, l.Kind())
}

func TestDetailLoader_NetworkFailureIsRetryable(t *testing.T) {
	repo := newFakeCatalog()
	repo.lookupErr = fmt.Errorf("%w: down", domain.ErrNetwork)
	repo.details["1"] = detail("1", "One")
	l := NewDetailLoader(repo, "1")
	ctx := context.Background()

	require.Error(t, l.Load(ctx))
	assert.Equal(t, domain.KindNetwork, l.Kind())

	repo.lookupErr = nil
	require.NoError(t, l.Load(ctx))
	assert.True(t, l.State().Ready())
	assert.Equal(t, []domain.CocktailID{"1", "1"}, repo.lookups)
}

func TestDetailLoader_ClosedIgnoresLateResult(t *testing.T) {
	repo := newFakeCatalog()
	repo.details["1"] = detail("1", "One")
	l := NewDetailLoader(repo, "1")

	req := l.Begin()
	l.Close()
	l.Apply(req.Run(context.Background()))

	assert.True(t, l.Closed())
	assert.True(t, l.State().Loading())
	assert.Nil(t, l.Begin())
}

func TestDetailLoader_IgnoresOtherID(t *testing.T) {
	repo := newFakeCatalog()
	l := NewDetailLoader(repo, "1")
	l.Begin()

	l.Apply(DetailResult{ID: "2", Detail: detail("2", "Two")})

	assert.True(t, l.State().Loading())
}
