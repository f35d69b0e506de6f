package mpd

import (
	"fmt"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

type conn interface {
	Play(pos int) error
	Pause(pause bool) error
	Next() error
	Previous() error
	Seek(pos, time int) error
	Move(start, end, position int) error
	Delete(start, end int) error
	Add(uri string) error
	Clear() error
	Status() (gompd.Attrs, error)
	CurrentSong() (gompd.Attrs, error)
	PlaylistInfo(start, end int) ([]gompd.Attrs, error)
	ListAllInfo(uri string) ([]gompd.Attrs, error)
	Ping() error
	Close() error
}

var dialConn = func(addr Address) (conn, error) {
	if addr.Password != "" {
		return gompd.DialAuthenticated(addr.Network, addr.Addr, addr.Password)
	}
	return gompd.Dial(addr.Network, addr.Addr)
}

// Client is a synchronous MPD connection. It is used from the UI goroutine
// only and performs no retries.
type Client struct {
	addr Address
	conn conn
}

// Dial opens a connection to the MPD server at addr.
func Dial(addr Address) (*Client, error) {
	c, err := dialConn(addr)
	if err != nil {
		return nil, fmt.Errorf("dial mpd %s: %w", addr, err)
	}
	return &Client{addr: addr, conn: c}, nil
}

// Address returns the address the client was dialled with.
func (c *Client) Address() Address {
	return c.addr
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ping checks the connection is alive.
func (c *Client) Ping() error {
	return c.conn.Ping()
}

// SwitchTo starts playback at the given queue position.
func (c *Client) SwitchTo(pos int) error {
	return c.conn.Play(pos)
}

// Swap exchanges the songs at two queue positions.
func (c *Client) Swap(a, b int) error {
	if a == b {
		return nil
	}
	if a > b {
		a, b = b, a
	}
	if err := c.conn.Move(a, a+1, b); err != nil {
		return err
	}
	return c.conn.Move(b-1, b, a)
}

// DeleteAt removes the song at pos from the queue.
func (c *Client) DeleteAt(pos int) error {
	return c.conn.Delete(pos, -1)
}

// Add appends the file at uri to the queue.
func (c *Client) Add(uri string) error {
	return c.conn.Add(uri)
}

// Clear empties the queue.
func (c *Client) Clear() error {
	return c.conn.Clear()
}

// TogglePause pauses a playing player and resumes a paused or stopped one.
func (c *Client) TogglePause(current PlayState) error {
	switch current {
	case StatePlaying:
		return c.conn.Pause(true)
	case StatePaused:
		return c.conn.Pause(false)
	default:
		return c.conn.Play(-1)
	}
}

// Next skips to the next song.
func (c *Client) Next() error {
	return c.conn.Next()
}

// Previous returns to the previous song.
func (c *Client) Previous() error {
	return c.conn.Previous()
}

// SeekTo moves playback of the song at pos to the given offset.
func (c *Client) SeekTo(pos int, offset time.Duration) error {
	if offset < 0 {
		offset = 0
	}
	return c.conn.Seek(pos, int(offset/time.Second))
}

// Status fetches the player status.
func (c *Client) Status() (Status, error) {
	attrs, err := c.conn.Status()
	if err != nil {
		return Status{}, err
	}
	return parseStatus(attrs), nil
}

// CurrentSong fetches the song at the current queue position, if any.
func (c *Client) CurrentSong() (*QueueItem, error) {
	attrs, err := c.conn.CurrentSong()
	if err != nil {
		return nil, err
	}
	if len(attrs) == 0 || attrs["file"] == "" {
		return nil, nil
	}
	item := parseQueueItem(attrs)
	return &item, nil
}

// Queue fetches the whole play queue.
func (c *Client) Queue() ([]QueueItem, error) {
	list, err := c.conn.PlaylistInfo(-1, -1)
	if err != nil {
		return nil, err
	}
	items := make([]QueueItem, 0, len(list))
	for _, attrs := range list {
		items = append(items, parseQueueItem(attrs))
	}
	return items, nil
}

// Library fetches every file in the database.
func (c *Client) Library() ([]Song, error) {
	list, err := c.conn.ListAllInfo("/")
	if err != nil {
		return nil, err
	}
	songs := make([]Song, 0, len(list))
	for _, attrs := range list {
		if attrs["file"] == "" {
			continue
		}
		songs = append(songs, parseSong(attrs))
	}
	return songs, nil
}

// Snapshot fetches library, queue and status in one go.
func (c *Client) Snapshot() (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Library, err = c.Library(); err != nil {
		return Snapshot{}, fmt.Errorf("list library: %w", err)
	}
	if snap.Queue, err = c.Queue(); err != nil {
		return Snapshot{}, fmt.Errorf("list queue: %w", err)
	}
	if snap.Status, err = c.Status(); err != nil {
		return Snapshot{}, fmt.Errorf("fetch status: %w", err)
	}
	if snap.Current, err = c.CurrentSong(); err != nil {
		return Snapshot{}, fmt.Errorf("fetch current song: %w", err)
	}
	return snap, nil
}
