package plan

import (
	"encoding/json"
	"fmt"
	"io"

	"seatplan/pkg/errors"
)

// Encode writes l as a JSON array of rooms. Empty collections are written as
// [] so the file reads back into the same shape.
func Encode(w io.Writer, l Layout) error {
	out := normalize(l.Clone())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// Decode reads a layout written by Encode. Only the JSON shape is checked;
// structural rules such as unique room IDs are the caller's business.
func Decode(r io.Reader) (Layout, error) {
	var l Layout
	dec := json.NewDecoder(r)
	if err := dec.Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "not a layout file")
	}
	// The whole input must be one value; anything after it but whitespace is rejected.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "not a layout file: data after the room list")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "not a layout file")
	}
	return normalize(l), nil
}

func normalize(l Layout) Layout {
	if l == nil {
		return Layout{}
	}
	for i := range l {
		normalizeRoom(&l[i])
	}
	return l
}

func normalizeRoom(r *Room) {
	if r.Walls == nil {
		r.Walls = []Wall{}
	}
	if r.Tables == nil {
		r.Tables = []Table{}
	}
	for i := range r.Tables {
		if r.Tables[i].Chairs == nil {
			r.Tables[i].Chairs = []bool{}
		}
	}
	if r.SubRooms == nil {
		r.SubRooms = []Room{}
	}
	for i := range r.SubRooms {
		normalizeRoom(&r.SubRooms[i])
	}
}
