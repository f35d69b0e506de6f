// Package testutil runs an in-process fake MPD server speaking enough of
// the text protocol for client tests.
package testutil

import (
	"bufio"
	"fmt"
	"net"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Track is one song known to the fake server.
type Track struct {
	File        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Track       int
	Duration    time.Duration
}

type queued struct {
	Track
	id int
}

// MPDServer is a fake MPD listening on a loopback TCP port.
type MPDServer struct {
	Addr string

	mu       sync.Mutex
	ln       net.Listener
	library  []Track
	queue    []queued
	nextID   int
	state    string
	song     int
	elapsed  time.Duration
	version  int
	commands []string
	failures map[string]string
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

// StartMPDServer boots a fake server preloaded with library. It is shut
// down when the test finishes.
func StartMPDServer(t *testing.T, library []Track) *MPDServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	s := &MPDServer{
		Addr:     ln.Addr().String(),
		ln:       ln,
		library:  append([]Track(nil), library...),
		nextID:   1,
		state:    "stop",
		song:     -1,
		version:  1,
		failures: map[string]string{},
		conns:    map[net.Conn]struct{}{},
	}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(func() {
		_ = ln.Close()
		s.mu.Lock()
		for c := range s.conns {
			_ = c.Close()
		}
		s.mu.Unlock()
		s.wg.Wait()
	})
	return s
}

// Enqueue appends library files to the play queue.
func (s *MPDServer) Enqueue(files ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range files {
		if t, ok := s.lookup(f); ok {
			s.push(t)
		}
	}
}

// Commands lists every command verb received, in order.
func (s *MPDServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// QueueFiles returns the files in the play queue.
func (s *MPDServer) QueueFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queue))
	for i, q := range s.queue {
		out[i] = q.File
	}
	return out
}

// State returns the player state and current queue position.
func (s *MPDServer) State() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.song
}

// Fail makes the next invocation of verb answer with an ACK carrying msg.
func (s *MPDServer) Fail(verb, msg string) {
	s.mu.Lock()
	s.failures[verb] = msg
	s.mu.Unlock()
}

func (s *MPDServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *MPDServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()
	w := bufio.NewWriter(conn)
	fmt.Fprint(w, "OK MPD 0.23.5\n")
	_ = w.Flush()
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		args := splitArgs(sc.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "close" {
			return
		}
		s.mu.Lock()
		s.commands = append(s.commands, args[0])
		body, err := s.exec(args[0], args[1:])
		s.mu.Unlock()
		if err != nil {
			fmt.Fprintf(w, "ACK [50@0] {%s} %s\n", args[0], err)
		} else {
			w.WriteString(body)
			w.WriteString("OK\n")
		}
		if w.Flush() != nil {
			return
		}
	}
}

func (s *MPDServer) exec(verb string, args []string) (string, error) {
	if msg, ok := s.failures[verb]; ok {
		delete(s.failures, verb)
		return "", fmt.Errorf("%s", msg)
	}
	var b strings.Builder
	switch verb {
	case "ping", "password":
	case "status":
		fmt.Fprintf(&b, "volume: 80\nrepeat: 0\nrandom: 0\nplaylist: %d\nplaylistlength: %d\nstate: %s\n", s.version, len(s.queue), s.state)
		if s.song >= 0 && s.state != "stop" {
			cur := s.queue[s.song]
			fmt.Fprintf(&b, "song: %d\nsongid: %d\nelapsed: %.3f\nduration: %.3f\n", s.song, cur.id, s.elapsed.Seconds(), cur.Duration.Seconds())
		}
	case "currentsong":
		if s.song >= 0 && s.song < len(s.queue) {
			writeQueued(&b, s.queue[s.song], s.song)
		}
	case "playlistinfo":
		for i, q := range s.queue {
			writeQueued(&b, q, i)
		}
	case "listallinfo":
		dirs := map[string]bool{}
		for _, t := range s.library {
			if dir := path.Dir(t.File); dir != "." && !dirs[dir] {
				dirs[dir] = true
				fmt.Fprintf(&b, "directory: %s\n", dir)
			}
			writeTrack(&b, t)
		}
	case "add":
		if len(args) != 1 {
			return "", fmt.Errorf("wrong number of arguments")
		}
		t, ok := s.lookup(args[0])
		if !ok {
			return "", fmt.Errorf("No such directory")
		}
		s.push(t)
	case "clear":
		s.queue = nil
		s.state, s.song, s.elapsed = "stop", -1, 0
		s.version++
	case "delete":
		start, end, err := parseRange(args, len(s.queue))
		if err != nil {
			return "", err
		}
		s.queue = append(s.queue[:start], s.queue[end:]...)
		if s.song >= end {
			s.song -= end - start
		} else if s.song >= start {
			s.state, s.song = "stop", -1
		}
		s.version++
	case "move":
		if len(args) != 2 {
			return "", fmt.Errorf("wrong number of arguments")
		}
		start, end, err := parseRange(args[:1], len(s.queue))
		if err != nil {
			return "", err
		}
		to, err := strconv.Atoi(args[1])
		if err != nil || to < 0 || to+(end-start) > len(s.queue) {
			return "", fmt.Errorf("Bad song index")
		}
		moved := append([]queued(nil), s.queue[start:end]...)
		rest := append(append([]queued(nil), s.queue[:start]...), s.queue[end:]...)
		s.queue = append(append(append([]queued(nil), rest[:to]...), moved...), rest[to:]...)
		s.version++
	case "play":
		pos := s.song
		if len(args) == 1 {
			p, err := strconv.Atoi(args[0])
			if err != nil || p < 0 || p >= len(s.queue) {
				return "", fmt.Errorf("Bad song index")
			}
			pos = p
		}
		if pos < 0 {
			pos = 0
		}
		if len(s.queue) == 0 {
			return "", nil
		}
		s.state, s.song, s.elapsed = "play", pos, 0
	case "pause":
		if s.state == "stop" {
			return "", nil
		}
		if len(args) == 1 && args[0] == "0" {
			s.state = "play"
		} else {
			s.state = "pause"
		}
	case "next", "previous":
		if s.song < 0 {
			return "", nil
		}
		step := 1
		if verb == "previous" {
			step = -1
		}
		next := s.song + step
		if next < 0 || next >= len(s.queue) {
			s.state, s.song = "stop", -1
			return "", nil
		}
		s.song, s.elapsed = next, 0
	case "seek":
		if len(args) != 2 {
			return "", fmt.Errorf("wrong number of arguments")
		}
		pos, err := strconv.Atoi(args[0])
		if err != nil || pos < 0 || pos >= len(s.queue) {
			return "", fmt.Errorf("Bad song index")
		}
		secs, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", fmt.Errorf("Number expected")
		}
		s.song, s.elapsed = pos, time.Duration(secs*float64(time.Second))
		if s.state == "stop" {
			s.state = "play"
		}
	default:
		return "", fmt.Errorf("unknown command %q", verb)
	}
	return b.String(), nil
}

func (s *MPDServer) lookup(file string) (Track, bool) {
	for _, t := range s.library {
		if t.File == file {
			return t, true
		}
	}
	return Track{}, false
}

func (s *MPDServer) push(t Track) {
	s.queue = append(s.queue, queued{Track: t, id: s.nextID})
	s.nextID++
	s.version++
}

func writeTrack(b *strings.Builder, t Track) {
	fmt.Fprintf(b, "file: %s\n", t.File)
	if t.Title != "" {
		fmt.Fprintf(b, "Title: %s\n", t.Title)
	}
	if t.Artist != "" {
		fmt.Fprintf(b, "Artist: %s\n", t.Artist)
	}
	if t.AlbumArtist != "" {
		fmt.Fprintf(b, "AlbumArtist: %s\n", t.AlbumArtist)
	}
	if t.Album != "" {
		fmt.Fprintf(b, "Album: %s\n", t.Album)
	}
	if t.Track > 0 {
		fmt.Fprintf(b, "Track: %d\n", t.Track)
	}
	if t.Duration > 0 {
		fmt.Fprintf(b, "Time: %d\nduration: %.3f\n", int(t.Duration.Seconds()), t.Duration.Seconds())
	}
}

func writeQueued(b *strings.Builder, q queued, pos int) {
	writeTrack(b, q.Track)
	fmt.Fprintf(b, "Pos: %d\nId: %d\n", pos, q.id)
}

// parseRange reads "N" or "START:END" into a half-open range.
func parseRange(args []string, n int) (int, int, error) {
	if len(args) != 1 {
		return 0, 0, fmt.Errorf("wrong number of arguments")
	}
	startText, endText, isRange := strings.Cut(args[0], ":")
	start, err := strconv.Atoi(startText)
	if err != nil {
		return 0, 0, fmt.Errorf("Bad song index")
	}
	end := start + 1
	if isRange && endText != "" {
		if end, err = strconv.Atoi(endText); err != nil {
			return 0, 0, fmt.Errorf("Bad song index")
		}
	}
	if start < 0 || end > n || start >= end {
		return 0, 0, fmt.Errorf("Bad song index")
	}
	return start, end, nil
}

// splitArgs tokenizes a command line, honouring double quotes and
// backslash escapes inside them.
func splitArgs(line string) []string {
	var out []string
	var cur strings.Builder
	inQuote, escaped, have := false, false, false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
			have = true
		case r == ' ' && !inQuote:
			if have {
				out = append(out, cur.String())
				cur.Reset()
				have = false
			}
		default:
			cur.WriteRune(r)
			have = true
		}
	}
	if have {
		out = append(out, cur.String())
	}
	return out
}
