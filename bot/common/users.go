package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// GetDisplayNameInt64 is a convenience wrapper that accepts int64 user IDs
func GetDisplayNameInt64(s *discordgo.Session, guildID string, userID int64) string {
	return GetDisplayName(s, guildID, strconv.FormatInt(userID, 10))
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// GetUserMention returns a Discord mention for a user
func GetUserMention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// InvokerID returns the id string of the user who triggered the interaction
func InvokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// ParseInteraction extracts the guild and invoking user ids of an interaction
func ParseInteraction(i *discordgo.InteractionCreate) (guildID, userID int64, err error) {
	guildID, err = strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return 0, 0, NewUserError("This command can only be used in a server.", "interaction outside a guild")
	}
	userID, err = ParseUserID(InvokerID(i))
	if err != nil {
		return 0, 0, NewSystemError(err, "Failed to parse invoking user id")
	}
	return guildID, userID, nil
}

// ParseUserOption parses a user option into an id
func ParseUserOption(opts Options, name string) (int64, error) {
	id, err := ParseUserID(opts.UserID(name))
	if err != nil {
		return 0, NewUserError("Please choose a valid user.", "invalid user option "+name)
	}
	return id, nil
}

// IsUserAdmin reports whether the member may run admin commands
func IsUserAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	if HasAdminPermission(i.Member.Permissions) {
		return true
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil {
			log.WithField("roleID", roleID).Debug("Role not found in state")
			continue
		}
		if HasAdminPermission(role.Permissions) {
			return true
		}
	}
	return false
}

// HasAdminPermission reports whether a permission set grants Administrator or Manage Server
func HasAdminPermission(perms int64) bool {
	return perms&discordgo.PermissionAdministrator != 0 || perms&discordgo.PermissionManageServer != 0
}

// ErrNotAdmin is returned to members without admin permissions
var ErrNotAdmin = NewUserError("You need the Manage Server permission to use this command.", "non-admin attempted admin command")
