package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

const (
	BookingCreate      = "booking.create"
	BookingApprove     = "booking.approve"
	BookingReject      = "booking.reject"
	BookingCancel      = "booking.cancel"
	BookingCheckIn     = "booking.check_in"
	BookingCheckOut    = "booking.check_out"
	RoomCreate         = "room.create"
	RoomUpdateStatus   = "room.update_status"
	NotificationCreate = "notification.create"
)

// Permission lists the roles allowed to perform an action. Owner lets the
// booking's requester through regardless of role.
type Permission struct {
	Action string   `json:"action"`
	Roles  []string `json:"roles"`
	Owner  bool     `json:"owner"`
}

type PermissionData struct {
	Actions []Permission `json:"actions"`
}

func (r *PermissionData) FindPermission(action string) (Permission, bool) {
	idx := slices.IndexFunc(r.Actions, func(p Permission) bool {
		return p.Action == action
	})

	if idx == -1 {
		return Permission{}, false
	}

	return r.Actions[idx], true
}

// Allowed reports whether a caller with role may perform action. Unknown
// actions are denied.
func (r *PermissionData) Allowed(action, role string, isOwner bool) bool {
	permission, ok := r.FindPermission(action)
	if !ok {
		return false
	}

	if permission.Owner && isOwner {
		return true
	}

	return slices.Contains(permission.Roles, role)
}

func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode embedded permissions")
	}

	log.Info().Int("actions", len(permissions.Actions)).Msg("Successfully loaded embedded permissions")

	return permissions
}
