// Package storekeys builds the prefs keys used by the data layer. The
// scheme matches what the original app wrote, so a store produced by an
// earlier version keeps working:
//
//	user_<email>              stored credential
//	username_<email>          display name
//	logged_user               active session email
//	current_username          cached session username
//	comments_global_<anime>   global feed
//	comments_<email>_<anime>  personal feed
//	profile_img_<email>       profile image blob
package storekeys

import (
	"strconv"
	"strings"
)

const (
	LoggedUser      = "logged_user"
	CurrentUsername = "current_username"

	// PendingOp is the journal slot covering dual feed writes. It did not
	// exist in the original scheme and never collides with the prefixes
	// above.
	PendingOp = "pending_op"
)

func Credential(email string) string {
	return "user_" + email
}

func Username(email string) string {
	return "username_" + email
}

func GlobalFeed(animeID int) string {
	return "comments_global_" + strconv.Itoa(animeID)
}

func PersonalFeed(email string, animeID int) string {
	return "comments_" + email + "_" + strconv.Itoa(animeID)
}

func ProfileImage(email string) string {
	return "profile_img_" + email
}

// ParsePersonalFeed reports whether key is a personal-feed key for email
// and, if so, returns the embedded anime id. Keys with a non-numeric suffix
// are rejected.
func ParsePersonalFeed(key, email string) (int, bool) {
	prefix := "comments_" + email + "_"
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	animeID, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil {
		return 0, false
	}
	return animeID, true
}
