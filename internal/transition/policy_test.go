package transition

import (
	"errors"
	"testing"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)

func TestCheck_ForwardOnlyFromIdeation(t *testing.T) {
	p := DefaultPolicy()

	for _, from := range models.StageOrder() {
		if from == types.StageIdeation {
			continue
		}
		t.Run(string(from), func(t *testing.T) {
			err := p.Check(from, types.StageIdeation)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBackToIdeation)

			var rejection *RejectionError
			require.True(t, errors.As(err, &rejection))
			assert.NotEmpty(t, rejection.Reason)
			assert.Equal(t, from, rejection.From)
		})
	}

	assert.NoError(t, p.Check(types.StageIdeation, types.StageIdeation))
	assert.NoError(t, p.Check(types.StageEditing, types.StageScripting), "other backward moves are allowed")
}

func TestCheck_UnknownStage(t *testing.T) {
	err := DefaultPolicy().Check(types.StageIdeation, "backlog")
	assert.ErrorIs(t, err, models.ErrUnknownStage)
}

func TestApply_StampsShootingStatus(t *testing.T) {
	p := DefaultPolicy()
	item := models.Item{ID: "a", Title: "A"}

	out, route, err := p.Apply(item, types.StageScripting, types.StageShooting, PlannedChoiceNone, now)
	require.NoError(t, err)
	assert.Equal(t, RouteInsert, route)
	assert.Equal(t, models.DefaultProductionStatus, out.ProductionStatus)
	assert.Empty(t, item.ProductionStatus, "input must not be mutated")

	item.ProductionStatus = models.ProductionFilming
	out, _, err = p.Apply(item, types.StageScripting, types.StageShooting, PlannedChoiceNone, now)
	require.NoError(t, err)
	assert.Equal(t, models.ProductionFilming, out.ProductionStatus, "existing status is kept")
}

func TestApply_StampsSchedulingStatus(t *testing.T) {
	p := DefaultPolicy()

	out, _, err := p.Apply(models.Item{ID: "a", Title: "A"}, types.StageEditing, types.StageScheduling, PlannedChoiceNone, now)
	require.NoError(t, err)
	assert.Equal(t, models.SchedulingToSchedule, out.SchedulingStatus)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	scheduled := models.Item{ID: "b", Title: "B", ScheduledDate: &day, SchedulingStatus: models.SchedulingScheduled}
	out, _, err = p.Apply(scheduled, types.StageEditing, types.StageScheduling, PlannedChoiceNone, now)
	require.NoError(t, err)
	assert.Equal(t, models.SchedulingScheduled, out.SchedulingStatus)
}

func TestApply_PostedRoutesToArchiveAndUnpins(t *testing.T) {
	out, route, err := DefaultPolicy().Apply(models.Item{ID: "a", Title: "A", Pinned: true},
		types.StageScheduling, types.StagePosted, PlannedChoiceNone, now)
	require.NoError(t, err)
	assert.Equal(t, RouteArchive, route)
	assert.False(t, out.Pinned)
}

func TestApply_PlannedDateConflict(t *testing.T) {
	p := DefaultPolicy()
	planned := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	item := models.Item{ID: "a", Title: "A", PlannedDate: &planned}

	t.Run("no choice pauses the move", func(t *testing.T) {
		out, _, err := p.Apply(item, types.StageEditing, types.StageScheduling, PlannedChoiceNone, now)
		assert.ErrorIs(t, err, ErrPlannedDateChoiceRequired)
		assert.Equal(t, item.ID, out.ID)
		require.NotNil(t, item.PlannedDate)
	})

	t.Run("adopt makes the planned date firm", func(t *testing.T) {
		out, _, err := p.Apply(item, types.StageEditing, types.StageScheduling, PlannedChoiceAdopt, now)
		require.NoError(t, err)
		require.NotNil(t, out.ScheduledDate)
		assert.Equal(t, "2025-03-10", models.DateKey(*out.ScheduledDate))
		assert.Equal(t, "09:00", out.StartTime)
		assert.Equal(t, "10:00", out.EndTime)
		assert.Equal(t, models.SchedulingScheduled, out.SchedulingStatus)
		assert.Nil(t, out.PlannedDate)
	})

	t.Run("discard clears the planned date", func(t *testing.T) {
		out, _, err := p.Apply(item, types.StageEditing, types.StageScheduling, PlannedChoiceDiscard, now)
		require.NoError(t, err)
		assert.Nil(t, out.PlannedDate)
		assert.Nil(t, out.ScheduledDate)
		assert.Equal(t, models.SchedulingToSchedule, out.SchedulingStatus)
	})

	t.Run("same stage never asks", func(t *testing.T) {
		assert.False(t, p.RequiresPlannedChoice(item, types.StageScheduling, types.StageScheduling))
	})
}

func TestParsePlannedDateChoice(t *testing.T) {
	c, err := ParsePlannedDateChoice("adopt")
	require.NoError(t, err)
	assert.Equal(t, PlannedChoiceAdopt, c)

	_, err = ParsePlannedDateChoice("maybe")
	assert.Error(t, err)
}
