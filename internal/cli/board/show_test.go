package board

import (
	"context"
	"strings"
	"testing"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	clitest "github.com/pattyalex/brand-journey-tracker/internal/testutil/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	a := clitest.SetupCLITest(t)
	ctx := context.Background()
	for _, req := range []boardservice.CreateItemRequest{
		{Title: "Idea one"},
		{Title: "Idea two"},
		{Title: "Cut", StageID: types.StageEditing},
	} {
		_, err := a.BoardService.CreateItem(ctx, req)
		require.NoError(t, err)
	}

	t.Run("json lists every stage in order", func(t *testing.T) {
		res, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--json"})
		require.NoError(t, err)

		var stages []models.Stage
		clitest.DecodeJSON(t, res.Stdout, "stages", &stages)
		require.Len(t, stages, len(models.StageOrder()))
		assert.Equal(t, types.StageIdeation, stages[0].ID)
		require.Len(t, stages[0].Cards, 2)
		assert.Equal(t, "Idea one", stages[0].Cards[0].Title)
		assert.Equal(t, "Idea two", stages[0].Cards[1].Title)
		assert.Empty(t, stages[1].Cards)
	})

	t.Run("stacked text", func(t *testing.T) {
		res, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--stacked"})
		require.NoError(t, err)
		assert.Contains(t, res.Stdout, "Ideate (2)")
		assert.Contains(t, res.Stdout, "To Edit (1)")
		assert.Contains(t, res.Stdout, "Idea two")
	})

	t.Run("quiet prints ids in board order", func(t *testing.T) {
		res, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(res.Stdout), "\n"), 3)
	})
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
