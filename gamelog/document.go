package gamelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"gopkg.in/yaml.v3"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/game"
)

// DocumentVersion is bumped whenever the document layout changes.
const DocumentVersion = 1

var (
	ErrBadDocument = errors.New("invalid match document")
	ErrChecksum    = errors.New("match document checksum mismatch")
)

// DocumentEntry is a history entry in persisted form.
type DocumentEntry struct {
	Ply       int         `json:"ply" yaml:"ply"`
	Color     string      `json:"color" yaml:"color"`
	Position  string      `json:"position" yaml:"position"`
	Pieces    game.Counts `json:"pieces" yaml:"pieces"`
	Mobility  game.Counts `json:"mobility" yaml:"mobility"`
	Flips     int         `json:"flips" yaml:"flips"`
	ElapsedMs int64       `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Document is a saved match. The checksum covers the entries so that a
// hand-edited or truncated file is noticed on load.
type Document struct {
	Version   int             `json:"version" yaml:"version"`
	MatchID   string          `json:"match_id" yaml:"match_id"`
	Size      int             `json:"size" yaml:"size"`
	Black     game.PlayerInfo `json:"black" yaml:"black"`
	White     game.PlayerInfo `json:"white" yaml:"white"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Entries   []DocumentEntry `json:"entries" yaml:"entries"`
	Checksum  string          `json:"checksum" yaml:"checksum"`
}

// NewDocument builds a document for a history.
func NewDocument(m Meta, h game.History) Document {
	doc := Document{
		Version:   DocumentVersion,
		MatchID:   m.MatchID,
		Size:      m.Size,
		Black:     m.Black,
		White:     m.White,
		CreatedAt: m.CreatedAt.UTC(),
		Entries:   make([]DocumentEntry, 0, h.Len()),
	}
	for _, e := range h.Entries() {
		doc.Entries = append(doc.Entries, DocumentEntry{
			Ply:       e.Ply,
			Color:     e.Color.Letter(),
			Position:  e.Position.String(),
			Pieces:    e.Pieces,
			Mobility:  e.Mobility,
			Flips:     e.Flips,
			ElapsedMs: e.Elapsed.Milliseconds(),
		})
	}
	doc.Checksum = doc.computeChecksum()
	return doc
}

// FromGame is NewDocument for a live game.
func FromGame(g *game.Game, createdAt time.Time) Document {
	return NewDocument(MetaOf(g, createdAt), g.History())
}

func (d Document) Meta() Meta {
	return Meta{MatchID: d.MatchID, Size: d.Size, Black: d.Black, White: d.White, CreatedAt: d.CreatedAt}
}

func (d Document) computeChecksum() string {
	h := xxhash.New()
	fmt.Fprintf(h, "%d|%s|%d\n", d.Version, d.MatchID, d.Size)
	for _, e := range d.Entries {
		fmt.Fprintf(h, "%d|%s|%s|%d|%d|%d|%d|%d|%d\n", e.Ply, e.Color, e.Position,
			e.Pieces.Black, e.Pieces.White, e.Mobility.Black, e.Mobility.White, e.Flips, e.ElapsedMs)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// History validates the document at the boundary and converts it back to
// a game history: known version, a legal size, player colours that are B
// or W, in-bounds positions, contiguous 1-based plies and a matching
// checksum. It does not replay the moves; see Verify.
func (d Document) History() (game.History, error) {
	if d.Version != DocumentVersion {
		return game.History{}, fmt.Errorf("%w: unsupported version %d", ErrBadDocument, d.Version)
	}
	if !board.ValidDim(d.Size) {
		return game.History{}, fmt.Errorf("%w: %w", ErrBadDocument, board.ErrInvalidSize)
	}
	if d.Checksum != d.computeChecksum() {
		return game.History{}, ErrChecksum
	}
	entries := make([]game.Entry, 0, len(d.Entries))
	for i, de := range d.Entries {
		if de.Ply != i+1 {
			return game.History{}, fmt.Errorf("%w: entry %d has ply %d", ErrBadDocument, i, de.Ply)
		}
		c, err := board.CellFromLetter(de.Color)
		if err != nil || !c.IsColor() {
			return game.History{}, fmt.Errorf("%w: ply %d: %w", ErrBadDocument, de.Ply, board.ErrNotAColor)
		}
		p, err := board.ParsePosition(de.Position)
		if err != nil {
			return game.History{}, fmt.Errorf("%w: ply %d: %w", ErrBadDocument, de.Ply, err)
		}
		if p.Row >= d.Size || p.Col >= d.Size {
			return game.History{}, fmt.Errorf("%w: ply %d: %w", ErrBadDocument, de.Ply, board.ErrOutOfBounds)
		}
		entries = append(entries, game.Entry{
			Ply:      de.Ply,
			Color:    c,
			Position: p,
			Pieces:   de.Pieces,
			Mobility: de.Mobility,
			Flips:    de.Flips,
			Elapsed:  time.Duration(de.ElapsedMs) * time.Millisecond,
		})
	}
	return game.NewHistory(entries...), nil
}

// Verify replays the document through a new game, move by move, and
// checks that the recorded counts agree with the replay.
func (d Document) Verify() (*game.Game, error) {
	h, err := d.History()
	if err != nil {
		return nil, err
	}
	g, err := game.NewFromHistory(h, d.Size, d.Meta().Players())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	replayed := g.History()
	for i, e := range h.Entries() {
		r := replayed.At(i)
		if r.Pieces != e.Pieces || r.Mobility != e.Mobility || r.Flips != e.Flips {
			return nil, fmt.Errorf("%w: ply %d: recorded %v, replay gives %v", ErrBadDocument, e.Ply, e, r)
		}
	}
	if d.MatchID != "" {
		g.SetID(d.MatchID)
	}
	return g, nil
}

func EncodeJSON(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func DecodeJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	return d, nil
}

func EncodeYAML(w io.Writer, d Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func DecodeYAML(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	return d, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveFile writes the document as YAML for .yaml/.yml paths and as JSON
// otherwise.
func SaveFile(path string, d Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		err = EncodeYAML(f, d)
	} else {
		err = EncodeJSON(f, d)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// LoadFile reads a document saved by SaveFile and verifies it.
func LoadFile(path string) (Document, *game.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, nil, err
	}
	defer f.Close()
	var d Document
	if isYAML(path) {
		d, err = DecodeYAML(f)
	} else {
		d, err = DecodeJSON(f)
	}
	if err != nil {
		return Document{}, nil, err
	}
	g, err := d.Verify()
	if err != nil {
		return Document{}, nil, err
	}
	return d, g, nil
}
