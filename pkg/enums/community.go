package enums

import (
	"fmt"
	"strings"
)

// CommunityAction maps to the community_action enum in Postgres.
type CommunityAction string

const (
	ActionCreated     CommunityAction = "created"
	ActionCompleted   CommunityAction = "completed"
	ActionShared      CommunityAction = "shared"
	ActionAchievement CommunityAction = "achievement"
	ActionLevelUp     CommunityAction = "level_up"
)

var validCommunityActions = []CommunityAction{
	ActionCreated,
	ActionCompleted,
	ActionShared,
	ActionAchievement,
	ActionLevelUp,
}

// IsValid reports whether the value matches the canonical community_action enum.
func (a CommunityAction) IsValid() bool {
	for _, candidate := range validCommunityActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseCommunityAction converts raw input into CommunityAction.
func ParseCommunityAction(raw string) (CommunityAction, error) {
	candidate := CommunityAction(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid community action %q", raw)
	}
	return candidate, nil
}

// InteractionKind maps to the interaction_kind enum in Postgres.
type InteractionKind string

const (
	InteractionLike    InteractionKind = "like"
	InteractionComment InteractionKind = "comment"
)

// IsValid reports whether the value matches the canonical interaction_kind enum.
func (k InteractionKind) IsValid() bool {
	return k == InteractionLike || k == InteractionComment
}
