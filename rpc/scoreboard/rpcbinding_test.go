package scoreboard

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	cst "github.com/nspcc-dev/reputation-scoreboard/contracts/scoreboard/scoreboardconst"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err       error
	res       *result.Invoke
	operation string
	params    []any
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.operation = operation
	t.params = params
	return t.res, t.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: "HALT",
		Stack: items,
	}
}

func TestReaderBoard(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.Board()
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State:          "FAULT",
		FaultException: "at instruction 42 (THROW): unhandled exception: \"" + cst.NotInitializedError + "\"",
	}
	_, err = r.Board()
	require.True(t, IsNotInitialized(err))
	require.False(t, IsEntryNotFound(err))

	ti.res = halt(stackitem.Make([]stackitem.Item{stackitem.Make(1)}))
	_, err = r.Board()
	require.Error(t, err)

	authority := util.Uint160{4, 5, 6}
	asset := util.Uint160{7, 8, 9}
	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.NewBuffer(authority.BytesBE()),
		stackitem.Make(60),
		stackitem.NewBuffer(asset.BytesBE()),
		stackitem.Make(-5),
	}))
	b, err := r.Board()
	require.NoError(t, err)
	require.Equal(t, "board", ti.operation)
	require.Equal(t, authority, b.Authority)
	require.Equal(t, asset, b.RequiredAsset)
	require.EqualValues(t, 60, b.Cooldown.Int64())
	require.EqualValues(t, -5, b.Threshold.Int64())
}

func TestReaderEntry(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})
	subject := util.Uint160{9, 9, 9}

	ti.res = &result.Invoke{
		State:          "FAULT",
		FaultException: cst.EntryNotFoundError,
	}
	_, err := r.Entry(subject)
	require.True(t, IsEntryNotFound(err))

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.NewBuffer(subject.BytesBE()),
		stackitem.Make(-3),
		stackitem.NewBool(true),
	}))
	e, err := r.Entry(subject)
	require.NoError(t, err)
	require.Equal(t, []any{subject}, ti.params)
	require.Equal(t, subject, e.Subject)
	require.EqualValues(t, -3, e.Reputation.Int64())
	require.True(t, e.TopContributor)

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.NewBuffer([]byte{1, 2}),
		stackitem.Make(0),
		stackitem.NewBool(false),
	}))
	_, err = r.Entry(subject)
	require.ErrorContains(t, err, "field Subject")

	ti.res = halt(stackitem.NewBool(true))
	ok, err := r.IsTopContributor(subject)
	require.NoError(t, err)
	require.True(t, ok)

	ti.res = halt(stackitem.Make(1700000000))
	last, err := r.LastVote(subject, subject)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1700000000), last)
	require.Equal(t, "lastVote", ti.operation)
}

func TestEventsFromApplicationLog(t *testing.T) {
	voter := util.Uint160{1}
	target := util.Uint160{2}
	authority := util.Uint160{3}

	_, err := UserVotedEventsFromApplicationLog(nil)
	require.Error(t, err)

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: cst.UserVotedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(voter.BytesBE()),
						stackitem.Make(target.BytesBE()),
						stackitem.Make(cst.DirectionDownvote),
						stackitem.Make(-1),
					}),
				},
				{
					Name: cst.ScoreResetEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(authority.BytesBE()),
						stackitem.Make(target.BytesBE()),
					}),
				},
				{
					Name: cst.RoleUnlockedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(target.BytesBE()),
						stackitem.Make(cst.RoleTopContributor),
						stackitem.Make(7),
					}),
				},
				{
					Name: cst.BoardInitializedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(authority.BytesBE()),
						stackitem.Make(60),
						stackitem.Make(voter.BytesBE()),
						stackitem.Make(5),
					}),
				},
			},
		}},
	}

	votes, err := UserVotedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	require.Equal(t, voter, votes[0].Voter)
	require.Equal(t, target, votes[0].Target)
	require.Equal(t, cst.DirectionDownvote, votes[0].Direction)
	require.EqualValues(t, -1, votes[0].NewScore.Int64())

	resets, err := ScoreResetEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, resets, 1)
	require.Equal(t, authority, resets[0].Authority)

	unlocks, err := RoleUnlockedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	require.Equal(t, cst.RoleTopContributor, unlocks[0].Role)
	require.EqualValues(t, 7, unlocks[0].Reputation.Int64())

	inits, err := BoardInitializedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, inits, 1)
	require.Equal(t, voter, inits[0].RequiredAsset)
	require.EqualValues(t, 60, inits[0].Cooldown.Int64())

	t.Run("malformed", func(t *testing.T) {
		log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{
			stackitem.Make(voter.BytesBE()),
		})
		_, err := UserVotedEventsFromApplicationLog(log)
		require.Error(t, err)

		var ev UserVotedEvent
		require.Error(t, ev.FromStackItem(nil))
		require.Error(t, ev.FromStackItem(stackitem.NewArray([]stackitem.Item{
			stackitem.Make(voter.BytesBE()),
			stackitem.Make(target.BytesBE()),
			stackitem.Make([]byte{0xff, 0xfe}),
			stackitem.Make(1),
		})))
	})
}

func TestParseAccount(t *testing.T) {
	h := util.Uint160{1, 2, 3, 4, 5}

	res, err := ParseAccount(address.Uint160ToString(h))
	require.NoError(t, err)
	require.Equal(t, h, res)

	res, err = ParseAccount(h.StringLE())
	require.NoError(t, err)
	require.Equal(t, h, res)

	res, err = ParseAccount("0x" + h.StringLE())
	require.NoError(t, err)
	require.Equal(t, h, res)

	_, err = ParseAccount("not an account")
	require.Error(t, err)
}

func TestIsError(t *testing.T) {
	require.False(t, IsError(nil, cst.CooldownNotPassedError))
	require.True(t, IsError(errors.New("invocation failed: "+cst.CooldownNotPassedError), cst.CooldownNotPassedError))
	require.False(t, IsError(errors.New("something else"), cst.CooldownNotPassedError))
}
