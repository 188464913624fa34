package relocate

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mvvid/internal/config"
)

// ContentType selects the destination library.
type ContentType int

const (
	TV ContentType = iota
	Movie
)

var labelCaser = cases.Title(language.English, cases.NoLower)

// ParseContentType accepts "tv" or "movie" (case-insensitive).
func ParseContentType(value string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "tv", "show", "tv show":
		return TV, nil
	case "movie", "movies", "film":
		return Movie, nil
	default:
		return TV, fmt.Errorf("unknown content type %q", value)
	}
}

func (c ContentType) String() string {
	if c == Movie {
		return "movie"
	}
	return "tv"
}

// Label is the human-readable name shown to the operator.
func (c ContentType) Label() string {
	if c == Movie {
		return labelCaser.String("movie")
	}
	return labelCaser.String("TV show")
}

// DestinationRoot returns the library directory entries of this type move to.
func (c ContentType) DestinationRoot(cfg *config.Config) string {
	if c == Movie {
		return cfg.MoviesPath()
	}
	return cfg.TVPath()
}

// Section returns the Plex library section rescanned for this type.
func (c ContentType) Section(cfg config.Plex) int {
	if c == Movie {
		return cfg.MoviesSection
	}
	return cfg.TVSection
}

// Entry is a selected immediate child of the working directory.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Outcome classifies what happened to one entry.
type Outcome string

const (
	OutcomeMoved         Outcome = "moved"
	OutcomeSkippedExists Outcome = "skipped-exists"
	OutcomeFailed        Outcome = "failed"
)

// MoveRecord reports the result of moving one entry.
type MoveRecord struct {
	Entry       Entry
	Destination string
	Outcome     Outcome
	Bytes       int64
	Err         error
}

// State is a step of the run state machine.
type State int

const (
	StateIdle State = iota
	StateValidated
	StateListed
	StateConfirmed
	StateCancelled
	StateMoved
	StateOwnershipFixed
	StateRefreshed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidated:
		return "validated"
	case StateListed:
		return "listed"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateMoved:
		return "moved"
	case StateOwnershipFixed:
		return "ownership-fixed"
	case StateRefreshed:
		return "refreshed"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Summary collects the records of one run.
type Summary struct {
	ContentType ContentType
	Destination string
	State       State
	Records     []MoveRecord
	Moved       int
	Skipped     int
	Failed      int
	Bytes       int64
	Refreshed   bool
}

func (s *Summary) add(rec MoveRecord) {
	s.Records = append(s.Records, rec)
	switch rec.Outcome {
	case OutcomeMoved:
		s.Moved++
		s.Bytes += rec.Bytes
	case OutcomeSkippedExists:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}
