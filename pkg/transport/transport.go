// Package transport carries the three kinds of message this protocol ever
// sends: a contributor's Submission to each computational party during the
// online phase, an Auxiliary party's offline distribution of a correlation
// Bundle, and a computational party's Reveal of its result share. Payloads
// are CBOR-encoded the way the teacher's
// protocol handler marshals round content with fxamacker/cbor before
// putting it on its message channel.
package transport

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

// Kind distinguishes the three message types the protocol ever puts on the
// wire.
type Kind int

const (
	// KindSubmission carries a contributor's masked value x-a to a
	// computational party.
	KindSubmission Kind = iota
	// KindBundle carries an Auxiliary party's offline correlation shares
	// to a computational party.
	KindBundle
	// KindReveal carries a computational party's final result share to
	// the output collector for reconstruction.
	KindReveal
)

// Message is one envelope on the wire: who sent it, who it's for, what
// kind it is, and its CBOR-encoded payload.
type Message struct {
	From    party.Role
	To      party.Role
	Kind    Kind
	Payload []byte
}

// Encode CBOR-marshals v into a Message addressed from->to.
func Encode(from, to party.Role, kind Kind, v interface{}) (Message, error) {
	const op = "transport.Encode"
	data, err := cbor.Marshal(v)
	if err != nil {
		return Message{}, shuffleerr.Wrap(op, shuffleerr.NetworkError, err)
	}
	return Message{From: from, To: to, Kind: kind, Payload: data}, nil
}

// Decode CBOR-unmarshals a Message's payload into v.
func Decode(msg Message, v interface{}) error {
	const op = "transport.Decode"
	if err := cbor.Unmarshal(msg.Payload, v); err != nil {
		return shuffleerr.Wrap(op, shuffleerr.NetworkError, err)
	}
	return nil
}

// Submission is a contributor's masked value addressed to one computational
// party during the online phase.
type Submission struct {
	UserID       uint32
	MaskedValues []field.Element
}

// Reveal is a computational party's final result share for one output row,
// handed to the reconstruction step.
type Reveal struct {
	Values []field.Element
	Point  field.Element
}

// wireSubmission and wireReveal are what actually goes out over CBOR.
// field.Element carries an unexported saferith.Nat and a back-pointer to
// its Field, neither of which marshal, so Submission and Reveal are carried
// across the wire in their canonical Bytes() form and reattached to a Field
// on decode.
type wireSubmission struct {
	UserID       uint32
	MaskedValues [][]byte
}

type wireReveal struct {
	Values [][]byte
	Point  []byte
}

// EncodeSubmission packages a contributor's masked values for one
// computational party.
func EncodeSubmission(from, to party.Role, s Submission) (Message, error) {
	w := wireSubmission{UserID: s.UserID, MaskedValues: make([][]byte, len(s.MaskedValues))}
	for i, v := range s.MaskedValues {
		w.MaskedValues[i] = v.Bytes()
	}
	return Encode(from, to, KindSubmission, w)
}

// DecodeSubmission recovers a Submission from msg, reattaching every value
// to f.
func DecodeSubmission(f *field.Field, msg Message) (Submission, error) {
	var w wireSubmission
	if err := Decode(msg, &w); err != nil {
		return Submission{}, err
	}
	values := make([]field.Element, len(w.MaskedValues))
	for i, b := range w.MaskedValues {
		values[i] = field.ElementFromBytes(f, b)
	}
	return Submission{UserID: w.UserID, MaskedValues: values}, nil
}

// EncodeReveal packages a computational party's final result share for the
// output collector.
func EncodeReveal(from, to party.Role, r Reveal) (Message, error) {
	w := wireReveal{Values: make([][]byte, len(r.Values)), Point: r.Point.Bytes()}
	for i, v := range r.Values {
		w.Values[i] = v.Bytes()
	}
	return Encode(from, to, KindReveal, w)
}

// DecodeReveal recovers a Reveal from msg, reattaching every value to f.
func DecodeReveal(f *field.Field, msg Message) (Reveal, error) {
	var w wireReveal
	if err := Decode(msg, &w); err != nil {
		return Reveal{}, err
	}
	values := make([]field.Element, len(w.Values))
	for i, b := range w.Values {
		values[i] = field.ElementFromBytes(f, b)
	}
	return Reveal{Values: values, Point: field.ElementFromBytes(f, w.Point)}, nil
}
