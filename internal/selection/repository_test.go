package selection

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examgen/internal/store"
)

func openBank(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	var qs []store.Question
	for i := 1; i <= 12; i++ {
		qs = append(qs, store.Question{
			ID:              fmt.Sprintf("q%02d", i),
			RepoID:          "algebra",
			Type:            int(SingleChoice),
			Level:           (i-1)%3 + 1,
			Stem:            fmt.Sprintf("question %d", i),
			KnowledgePoints: []string{fmt.Sprintf("kp%d", i%4)},
		})
	}
	qs = append(qs, store.Question{ID: "tf1", RepoID: "algebra", Type: int(TrueFalse), Level: 1, Content: "true or false"})
	require.NoError(t, s.QuestionRepo().Upsert(context.Background(), qs...))
	return s
}

func TestStoreRepository(t *testing.T) {
	repo := NewStoreRepository(openBank(t).QuestionRepo())
	ctx := context.Background()

	cs, err := repo.ListByType(ctx, "algebra", SingleChoice, []string{"q01"})
	require.NoError(t, err)
	assert.Len(t, cs, 11)
	assert.NotContains(t, idsOf(cs), "q01")
	for _, c := range cs {
		assert.Equal(t, SingleChoice, c.Type)
		assert.True(t, c.Level >= TierEasy && c.Level <= TierHard)
	}

	cs, err = repo.ListByTypeAndKnowledgePoints(ctx, "algebra", SingleChoice, nil, []string{"kp1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"q01", "q05", "q09"}, idsOf(cs))

	cs, err = repo.ListRandom(ctx, "algebra", SingleChoice, []string{"q02"}, 5)
	require.NoError(t, err)
	assert.Len(t, cs, 5)
	assert.NotContains(t, idsOf(cs), "q02")

	cs, err = repo.ListByType(ctx, "algebra", TrueFalse, nil)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "true or false", cs[0].Summary(DefaultStemLimit))
}

func TestEngine_AgainstStore(t *testing.T) {
	e := newTestEngine(t, NewStoreRepository(openBank(t).QuestionRepo()), failingOracle(errOracleDown), Options{})

	res := e.SelectQuestions(context.Background(), Request{RepoID: "algebra", Type: SingleChoice, Size: 10, EnforceRatio: true})

	assert.Equal(t, StrategyRatio, res.Strategy)
	assert.Equal(t, map[Tier]int{TierEasy: 4, TierMedium: 3, TierHard: 2}, countLevels(res.Candidates),
		"easy runs out one short of its planned 5")
}
