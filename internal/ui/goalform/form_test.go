package goalform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/leetcode-tracker/internal/model"
)

var today = model.NewDate(2024, 5, 20)

func TestParse(t *testing.T) {
	g, err := Parse(Values{
		Type:       "difficulty_count",
		Target:     " 4 ",
		Difficulty: "Hard",
		Deadline:   "2024-06-01",
		Name:       "  Hard mode ",
	}, today)
	require.NoError(t, err)

	assert.Equal(t, model.GoalDifficultyCount, g.Type)
	assert.Equal(t, 4, g.Target)
	assert.Equal(t, model.DifficultyHard, g.Difficulty)
	assert.Equal(t, model.NewDate(2024, 6, 1), g.Deadline)
	assert.Equal(t, "Hard mode", g.Name)
}

func TestParseIgnoresDifficultyForOtherTypes(t *testing.T) {
	g, err := Parse(Values{Type: "total_solved", Target: "10", Difficulty: "Easy"}, today)
	require.NoError(t, err)

	assert.Equal(t, model.GoalTotalSolved, g.Type)
	assert.Empty(t, g.Difficulty)
	assert.True(t, g.Deadline.IsZero())
}

func TestParseErrors(t *testing.T) {
	for _, v := range []Values{
		{Type: "bogus", Target: "1"},
		{Type: "total_solved", Target: "ten"},
		{Type: "difficulty_count", Target: "1", Difficulty: "Extreme"},
		{Type: "weekly_target", Target: "1", Deadline: "06/01/2024"},
	} {
		_, err := Parse(v, today)
		assert.Error(t, err, "%+v", v)
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePositiveInt("3"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("x"))

	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2024-01-31"))
	assert.Error(t, validateOptionalDate("2024-13-01"))
}

func TestNewDefaults(t *testing.T) {
	var v Values
	f := New(&v)

	require.NotNil(t, f)
	assert.Equal(t, string(model.GoalTotalSolved), v.Type)
	assert.Equal(t, string(model.DifficultyEasy), v.Difficulty)
}
