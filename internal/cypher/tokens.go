package cypher

import (
	"fmt"
	"rostergraph/lib/textutil"
)

type CollisionPolicy string

const (
	// COLLISION_SUFFIX gives later owners of a taken token a numeric suffix.
	COLLISION_SUFFIX CollisionPolicy = "suffix"
	// COLLISION_FAIL makes the emitter return a CollisionError.
	COLLISION_FAIL CollisionPolicy = "fail"
)

func ParseCollisionPolicy(value string) (CollisionPolicy, error) {
	switch CollisionPolicy(value) {
	case "":
		return COLLISION_SUFFIX, nil
	case COLLISION_SUFFIX, COLLISION_FAIL:
		return CollisionPolicy(value), nil
	}
	return "", fmt.Errorf("unknown collision policy %q", value)
}

// CollisionError is returned when two display names sanitize to the same token.
type CollisionError struct {
	Token    string
	Existing string
	Incoming string
}

func (e CollisionError) Error() string {
	return fmt.Sprintf("node token %q is used by both %q and %q", e.Token, e.Existing, e.Incoming)
}

type kind int

const (
	kindPlayer kind = iota
	kindSchool
)

type entity struct {
	kind kind
	name string
}

// tokenRegistry hands out one unique node token per entity. Players and schools
// share a namespace since every CREATE of the script is part of one statement.
type tokenRegistry struct {
	policy   CollisionPolicy
	assigned map[entity]string
	owners   map[string]entity
	next     map[string]int
}

func newTokenRegistry(policy CollisionPolicy) *tokenRegistry {
	return &tokenRegistry{
		policy:   policy,
		assigned: map[entity]string{},
		owners:   map[string]entity{},
		next:     map[string]int{},
	}
}

func (r *tokenRegistry) token(k kind, name string) (string, error) {
	e := entity{kind: k, name: name}
	if token, ok := r.assigned[e]; ok {
		return token, nil
	}

	base := textutil.NodeToken(name)
	if base == "" {
		base = "node"
	}

	token := base
	if owner, taken := r.owners[token]; taken {
		if r.policy == COLLISION_FAIL {
			return "", CollisionError{Token: token, Existing: owner.name, Incoming: name}
		}
		n := r.next[base]
		if n == 0 {
			n = 2
		}
		for {
			token = fmt.Sprintf("%s_%d", base, n)
			n++
			if _, taken := r.owners[token]; !taken {
				break
			}
		}
		r.next[base] = n
	}

	r.assigned[e] = token
	r.owners[token] = e
	return token, nil
}
