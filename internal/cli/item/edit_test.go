package item

import (
	"context"
	"testing"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	clitest "github.com/pattyalex/brand-journey-tracker/internal/testutil/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editResult struct {
	Item  models.Item   `json:"item"`
	From  types.StageID `json:"from"`
	Stage types.StageID `json:"stage"`
	Moved bool          `json:"moved"`
}

func TestEdit_DraftGainsScript(t *testing.T) {
	a := clitest.SetupCLITest(t)
	it := createItem(t, a, "--title", "Draft")

	res, err := clitest.ExecuteCLICommand(t, a, EditCmd(), []string{string(it.ID), "--script", "Hello", "--json"})
	require.NoError(t, err, res.Stdout)

	var out editResult
	clitest.DecodeJSON(t, res.Stdout, "edit", &out)
	assert.True(t, out.Moved)
	assert.Equal(t, types.StageIdeation, out.From)
	assert.Equal(t, types.StageScripting, out.Stage)
	assert.Equal(t, "Hello", out.Item.Script)
	assert.Equal(t, types.StageScripting, location(t, a, it.ID))
}

func TestEdit_StaysWhenNothingAdvances(t *testing.T) {
	a := clitest.SetupCLITest(t)
	it := createItem(t, a, "--title", "Idea")

	res, err := clitest.ExecuteCLICommand(t, a, EditCmd(), []string{string(it.ID), "--hook", "Wait for it", "--pinned"})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "Saved")

	loc, err := a.BoardService.FindItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StageIdeation, loc.Stage)
	assert.Equal(t, "Wait for it", loc.Item.Hook)
	assert.True(t, loc.Item.Pinned)
}

func TestEdit_SeveralStepsLandInScheduling(t *testing.T) {
	a := clitest.SetupCLITest(t)
	it := createItem(t, a, "--title", "Full")

	_, err := clitest.ExecuteCLICommand(t, a, EditCmd(), []string{string(it.ID)[:8],
		"--shot", "wide", "--check", "color grade", "--date", "2025-03-05", "--start", "14:00"})
	require.NoError(t, err)

	loc, err := a.BoardService.FindItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StageScheduling, loc.Stage)
	require.Len(t, loc.Item.Shots, 1)
	assert.Equal(t, "wide", loc.Item.Shots[0].Description)
	require.Len(t, loc.Item.EditChecklist, 1)
	require.NotNil(t, loc.Item.ScheduledDate)
	assert.Equal(t, "2025-03-05", models.DateKey(*loc.Item.ScheduledDate))
	assert.Equal(t, "14:00", loc.Item.StartTime)
	assert.Equal(t, "15:00", loc.Item.EndTime)
	assert.Equal(t, models.SchedulingScheduled, loc.Item.SchedulingStatus)
}

func TestEdit_RejectedRelocationClosesWizard(t *testing.T) {
	a := clitest.SetupCLITest(t)
	// An empty item in scripting classifies as ideation, which it cannot return to
	it := createItem(t, a, "--title", "Bare", "--stage", "scripting")

	_, err := clitest.ExecuteCLICommand(t, a, EditCmd(), []string{string(it.ID), "--hook", "New hook"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	loc, err := a.BoardService.FindItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StageScripting, loc.Stage)
	assert.Equal(t, "New hook", loc.Item.Hook, "edits are saved before relocation")

	_, err = clitest.ExecuteCLICommand(t, a, EditCmd(), []string{string(it.ID), "--script", "Now scripted"})
	require.NoError(t, err, "the wizard is free for the next edit")
	assert.Equal(t, types.StageScripting, location(t, a, it.ID))
}

func TestEdit_InvalidDate(t *testing.T) {
	a := clitest.SetupCLITest(t)
	it := createItem(t, a, "--title", "Dated")

	_, err := clitest.ExecuteCLICommand(t, a, EditCmd(), []string{string(it.ID), "--planned-date", "03/05/2025"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataErr, cli.ExitCode(err))
}
