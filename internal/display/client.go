// Package display implements the viewer side of the presentation protocol: a
// WebSocket client that consumes presenter commands and maintains the screen
// state a projector or TV should render.
package display

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lporras/gedeon/internal/domain"
)

// Screen is what a display should currently render. Index 0 is the title
// sub-slide; 1..len(Verses) addresses a verse chunk.
type Screen struct {
	Blank    bool
	Kind     string
	Title    string
	Verses   []string
	ImageURL string
	Index    int
}

// CurrentText returns the text a projector renders right now. Empty when the
// screen is blanked or showing an image.
func (s Screen) CurrentText() string {
	if s.Blank || s.ImageURL != "" {
		return ""
	}
	if s.Index == 0 {
		return s.Title
	}
	if s.Index <= len(s.Verses) {
		return s.Verses[s.Index-1]
	}
	return ""
}

// Client connects a display to the presentation channel and applies incoming
// commands in arrival order.
type Client struct {
	conn     *websocket.Conn
	onUpdate func(Screen)

	mu     sync.Mutex
	screen Screen
}

// Dial connects to a display WebSocket endpoint. onUpdate, if set, fires after
// every applied command with the new screen state.
func Dial(ctx context.Context, url string, onUpdate func(Screen)) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial display endpoint: %w", err)
	}
	return &Client{conn: conn, onUpdate: onUpdate}, nil
}

// Listen consumes commands until the connection closes. It returns the read
// error that terminated the loop.
func (c *Client) Listen() error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("display connection closed: %w", err)
		}
		c.apply(data)
	}
}

// Screen returns a copy of the current screen state.
func (c *Client) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	screen := c.screen
	screen.Verses = append([]string(nil), c.screen.Verses...)
	return screen
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// command is the union of all wire payloads; Action discriminates.
type command struct {
	Action     string   `json:"action"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Verses     []string `json:"verses"`
	ImageURL   string   `json:"image_url"`
	VerseIndex int      `json:"verse_index"`
}

func (c *Client) apply(data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		slog.Warn("Display received malformed payload", "error", err)
		return
	}

	c.mu.Lock()
	switch cmd.Action {
	case domain.ActionPresent:
		c.screen = Screen{
			Kind:   cmd.Type,
			Title:  cmd.Title,
			Verses: cmd.Verses,
			Index:  0,
		}
	case domain.ActionPresentImage:
		c.screen = Screen{
			Kind:     string(domain.KindImage),
			ImageURL: cmd.ImageURL,
		}
	case domain.ActionNavigateTo:
		// A stale or duplicated index must never crash the screen; out of
		// range is ignored.
		if cmd.VerseIndex < 0 || cmd.VerseIndex > len(c.screen.Verses) {
			slog.Warn("Display ignoring out-of-range verse index",
				"verse_index", cmd.VerseIndex, "verses", len(c.screen.Verses))
			c.mu.Unlock()
			return
		}
		c.screen.Index = cmd.VerseIndex
		c.screen.Blank = false
	case domain.ActionBlack:
		c.screen.Blank = true
	default:
		slog.Warn("Display ignoring unknown action", "action", cmd.Action)
		c.mu.Unlock()
		return
	}
	screen := c.screen
	c.mu.Unlock()

	if c.onUpdate != nil {
		c.onUpdate(screen)
	}
}
