package constants

// Session / context keys
const (
	SessionCookieName = "board_session"
	ContextKeyUserID  = "user_id"
)

// Pagination limits
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ActivityFeedLimit caps the board activity feed at the most recent entries.
const ActivityFeedLimit = 50

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// DefaultListNames are the lists seeded into every new board, in position order.
var DefaultListNames = []string{"To Do", "In Progress", "Done"}

// DefaultLabelColors are the color-only labels seeded into every new board.
var DefaultLabelColors = []string{"emerald", "blue", "purple", "red", "yellow", "orange"}

// LabelPalette is the full set of colors a label may use.
var LabelPalette = []string{
	"emerald", "blue", "purple", "red", "yellow", "orange",
	"pink", "sky", "lime", "gray",
}
