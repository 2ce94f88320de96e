package export

import (
	"fmt"
	"regexp"
)

// MaxInstanceNameLength is the maximum length for an instance name.
const MaxInstanceNameLength = 63

// InstanceNamePattern matches valid instance names: lowercase alphanumeric,
// hyphens allowed but not at start or end. Names never contain the ':' key
// separator.
var InstanceNamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidateInstanceName checks that name can be used as a key namespace.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > MaxInstanceNameLength {
		return fmt.Errorf("instance name too long: %d characters (max: %d)", len(name), MaxInstanceNameLength)
	}

	if !InstanceNamePattern.MatchString(name) {
		return fmt.Errorf("invalid instance name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}

// Redis key pattern helpers
//
// Key pattern: fathom:{instance_name}:{entity}:{id}
// Channel pattern: fathom:{instance_name}:{event_type}_events

// PieceKey returns the Redis key for a piece hash.
// Pattern: fathom:{instance_name}:piece:{piece_id}
func PieceKey(instanceName, pieceID string) string {
	return fmt.Sprintf("fathom:%s:piece:%s", instanceName, pieceID)
}

// PieceIndexKey returns the Redis key for the set of exported piece IDs.
// Pattern: fathom:{instance_name}:pieces
func PieceIndexKey(instanceName string) string {
	return fmt.Sprintf("fathom:%s:pieces", instanceName)
}

// ThemeKey returns the Redis key for a theme hash.
// Pattern: fathom:{instance_name}:theme:{theme_name}
func ThemeKey(instanceName, themeName string) string {
	return fmt.Sprintf("fathom:%s:theme:%s", instanceName, themeName)
}

// ThemesKey returns the Redis key for the theme list in registration order.
// Pattern: fathom:{instance_name}:themes
func ThemesKey(instanceName string) string {
	return fmt.Sprintf("fathom:%s:themes", instanceName)
}

// SnapshotKey returns the Redis key for the snapshot metadata hash.
// Pattern: fathom:{instance_name}:snapshot
func SnapshotKey(instanceName string) string {
	return fmt.Sprintf("fathom:%s:snapshot", instanceName)
}

// SnapshotEventsChannel returns the Pub/Sub channel name for snapshot events.
// Pattern: fathom:{instance_name}:snapshot_events
func SnapshotEventsChannel(instanceName string) string {
	return fmt.Sprintf("fathom:%s:snapshot_events", instanceName)
}
