package model

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// AccessPolicy restricts which repositories a session may operate on. An
// empty policy is unbounded: every repository is allowed, but there is no
// finite set to enumerate. The policy is immutable after construction and
// safe for concurrent reads.
type AccessPolicy struct {
	allowed map[string]RepoRef
	order   []RepoRef
}

// NewAccessPolicy parses the configured allow-list entries. Each entry
// accepts the same identifier forms as ParseRepoRef. Duplicates (after
// canonicalization) are collapsed.
func NewAccessPolicy(entries []string) (*AccessPolicy, error) {
	p := &AccessPolicy{
		allowed: make(map[string]RepoRef, len(entries)),
	}

	for _, entry := range entries {
		ref, err := ParseRepoRef(entry)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid repository in allow-list",
				goerr.T(types.ErrTagValidation), goerr.V("entry", entry))
		}
		if _, ok := p.allowed[ref.Key()]; ok {
			continue
		}
		p.allowed[ref.Key()] = ref
		p.order = append(p.order, ref)
	}

	sort.Slice(p.order, func(i, j int) bool {
		return p.order[i].Key() < p.order[j].Key()
	})

	return p, nil
}

// Bounded reports whether the policy has a finite allow-list.
func (p *AccessPolicy) Bounded() bool {
	return len(p.allowed) > 0
}

// Allows reports whether ref may be operated on. An unbounded policy allows
// everything; a bounded one matches on the case-insensitive canonical key.
func (p *AccessPolicy) Allows(ref RepoRef) bool {
	if !p.Bounded() {
		return true
	}
	_, ok := p.allowed[ref.Key()]
	return ok
}

// Allowed returns the allow-list sorted by canonical key. Empty when the
// policy is unbounded.
func (p *AccessPolicy) Allowed() []RepoRef {
	out := make([]RepoRef, len(p.order))
	copy(out, p.order)
	return out
}
