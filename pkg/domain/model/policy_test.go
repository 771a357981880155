package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shears/pkg/domain/model"
)

func TestAccessPolicy_Unbounded(t *testing.T) {
	policy, err := model.NewAccessPolicy(nil)
	gt.NoError(t, err)

	gt.Equal(t, policy.Bounded(), false)
	gt.Equal(t, len(policy.Allowed()), 0)

	ref, err := model.ParseRepoRef("octocat/Hello-World")
	gt.NoError(t, err)
	gt.True(t, policy.Allows(ref))
}

func TestAccessPolicy_Bounded(t *testing.T) {
	policy, err := model.NewAccessPolicy([]string{
		"octocat/Hello-World",
		"https://github.com/torvalds/linux",
	})
	gt.NoError(t, err)

	gt.True(t, policy.Bounded())

	allowed, err := model.ParseRepoRef("octocat/Hello-World")
	gt.NoError(t, err)
	gt.True(t, policy.Allows(allowed))

	denied, err := model.ParseRepoRef("someone/else")
	gt.NoError(t, err)
	gt.Equal(t, policy.Allows(denied), false)
}

func TestAccessPolicy_CaseInsensitiveMatch(t *testing.T) {
	policy, err := model.NewAccessPolicy([]string{"octocat/Hello-World"})
	gt.NoError(t, err)

	ref, err := model.ParseRepoRef("git@github.com:OCTOCAT/hello-world.git")
	gt.NoError(t, err)
	gt.True(t, policy.Allows(ref))
}

func TestAccessPolicy_Deduplication(t *testing.T) {
	policy, err := model.NewAccessPolicy([]string{
		"octocat/Hello-World",
		"https://github.com/octocat/hello-world.git",
		"OCTOCAT/HELLO-WORLD",
	})
	gt.NoError(t, err)

	gt.Equal(t, len(policy.Allowed()), 1)
}

func TestAccessPolicy_SortedOrder(t *testing.T) {
	policy, err := model.NewAccessPolicy([]string{
		"zeta/repo",
		"alpha/repo",
		"Mid/Repo",
	})
	gt.NoError(t, err)

	refs := policy.Allowed()
	gt.Equal(t, len(refs), 3)
	gt.Equal(t, refs[0].Key(), "alpha/repo")
	gt.Equal(t, refs[1].Key(), "mid/repo")
	gt.Equal(t, refs[2].Key(), "zeta/repo")
}

func TestAccessPolicy_InvalidEntry(t *testing.T) {
	_, err := model.NewAccessPolicy([]string{"octocat/Hello-World", "not-a-repo"})
	gt.Error(t, err)
}
