package domain

import (
	"github.com/google/uuid"
)

// Broadcast command actions. The JSON shapes below are the wire protocol the
// display clients consume; field names and the 1-based verse_index convention
// (0 is the title sub-slide) must not change.
const (
	ActionPresent      = "present"
	ActionPresentImage = "present_image"
	ActionNavigateTo   = "navigate_to"
	ActionBlack        = "black"
)

// TopicFor names the broadcast channel scoped to one schedule.
func TopicFor(scheduleID uuid.UUID) string {
	return "schedule_presenter_" + scheduleID.String()
}

// PresentCommand pushes a text item (song or scripture) with its pre-chunked
// verses. Displays render the title sub-slide first.
type PresentCommand struct {
	Action string   `json:"action"`
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Verses []string `json:"verses"`
}

// PresentImageCommand pushes a single full-screen image slide.
type PresentImageCommand struct {
	Action   string `json:"action"`
	ImageURL string `json:"image_url"`
}

// NavigateCommand moves all displays to a sub-slide. VerseIndex is 1-based on
// the wire: verse_index 0 is the title sub-slide, verse_index N is the Nth
// chunk.
type NavigateCommand struct {
	Action     string `json:"action"`
	VerseIndex int    `json:"verse_index"`
}

// BlackCommand blanks all displays without clearing presenter state.
type BlackCommand struct {
	Action string `json:"action"`
}
