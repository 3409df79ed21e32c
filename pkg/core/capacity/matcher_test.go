package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

var roster = []model.Employee{
	{ID: "1001", Name: "Anand Kumar"},
	{ID: "1002", Name: "Priya Nair"},
	{ID: "1003", Name: "Sivaguru Subramani"},
	{ID: "1004", Name: "Lakshmipathy, R."},
}

func TestMatchEmployee_Exact(t *testing.T) {
	emp, ok := MatchEmployee("Anand Kumar", roster)
	require.True(t, ok)
	assert.Equal(t, "1001", emp.ID)

	emp, ok = MatchEmployee("  priya nair ", roster)
	require.True(t, ok)
	assert.Equal(t, "1002", emp.ID)
}

func TestMatchEmployee_Substring(t *testing.T) {
	// Target contained in roster name.
	emp, ok := MatchEmployee("Priya", roster)
	require.True(t, ok)
	assert.Equal(t, "1002", emp.ID)

	// Roster name contained in target.
	emp, ok = MatchEmployee("Anand Kumar (GCC)", roster)
	require.True(t, ok)
	assert.Equal(t, "1001", emp.ID)
}

func TestMatchEmployee_TokenOverlap(t *testing.T) {
	// "Siva Guru" has no substring relation to "Sivaguru Subramani" as a
	// whole, but the significant token "siva" is contained in "sivaguru".
	emp, ok := MatchEmployee("Siva Guru", roster)
	require.True(t, ok)
	assert.Equal(t, "1003", emp.ID)
}

func TestMatchEmployee_TokenOverlapWithPunctuation(t *testing.T) {
	emp, ok := MatchEmployee("R. Lakshmipathy", roster)
	require.True(t, ok)
	assert.Equal(t, "1004", emp.ID)
}

func TestMatchEmployee_ShortTokensIgnored(t *testing.T) {
	// Tokens of 3 characters or fewer never drive a token-overlap match.
	_, ok := MatchEmployee("Dr Xyz", roster)
	assert.False(t, ok)
}

func TestMatchEmployee_NoMatch(t *testing.T) {
	_, ok := MatchEmployee("Completely Unknown", roster)
	assert.False(t, ok)

	_, ok = MatchEmployee("", roster)
	assert.False(t, ok)

	_, ok = MatchEmployee("Anand Kumar", nil)
	assert.False(t, ok)
}

func TestMatchEmployee_FirstCandidateWins(t *testing.T) {
	dupes := []model.Employee{
		{ID: "2001", Name: "Kumar One"},
		{ID: "2002", Name: "Kumar Two"},
	}
	emp, ok := MatchEmployee("Kumar", dupes)
	require.True(t, ok)
	assert.Equal(t, "2001", emp.ID, "roster order decides ambiguous matches")
}
