// Package midi writes parsed tunes to Standard MIDI Files and reads the
// notes back out of them.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/abcdex/note"
	"github.com/jsphweid/abcdex/tune"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerQuarter = 480

var (
	ErrOutOfRange = errors.New("pitch outside the MIDI key range")
	ErrTimeFormat = errors.New("only metric time is supported")
)

type Options struct {
	// BPM in quarter notes, used when the tune has no Q: field.
	BPM      float64
	Channel  uint8
	Program  uint8
	Velocity uint8
	// MaxNotes, when positive, keeps only the first notes.
	MaxNotes int
}

func DefaultOptions() Options {
	return Options{BPM: 120, Velocity: 80}
}

// ticks converts a length in whole notes.
func ticks(d note.Duration) uint32 {
	return uint32(d.Num() * 4 * TicksPerQuarter / d.Den())
}

// quarterBPM turns a Q: tempo into quarter notes per minute.
func quarterBPM(t *tune.Tune, fallback float64) float64 {
	beat, bpm, ok := t.Tempo()
	if !ok {
		return fallback
	}
	return float64(bpm) * beat.Float() * 4
}

// Build lays the tune out as a single track. Rests become gaps.
func Build(t *tune.Tune, opts Options) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(t.Title()))
	tr.Add(0, smf.MetaTempo(quarterBPM(t, opts.BPM)))
	if num, den, ok := t.Meter(); ok && num < 256 && den < 256 {
		tr.Add(0, smf.MetaMeter(uint8(num), uint8(den)))
	}
	tr.Add(0, midi.ProgramChange(opts.Channel, opts.Program))

	var gap uint32
	for ev := range t.Events() {
		length := ticks(ev.Duration())
		n, ok := ev.(note.Note)
		if !ok {
			gap += length
			continue
		}
		k := n.Pitch().MIDINumber()
		if k < 0 || k > 127 {
			return nil, fmt.Errorf("%w: %s is key %d", ErrOutOfRange, n.Name(), k)
		}
		tr.Add(gap, midi.NoteOn(opts.Channel, uint8(k), opts.Velocity))
		tr.Add(length, midi.NoteOff(opts.Channel, uint8(k)))
		gap = 0
	}
	tr.Close(gap)

	if err := s.Add(tr); err != nil {
		return nil, err
	}
	return s, nil
}

// Export writes the tune as a Standard MIDI File.
func Export(w io.Writer, t *tune.Tune, opts Options) error {
	s, err := Build(t, opts)
	if err != nil {
		return err
	}
	if opts.MaxNotes > 0 {
		s = Sample(s, 0, opts.MaxNotes)
	}
	_, err = s.WriteTo(w)
	return err
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

type keyEvent struct {
	tick  int64
	key   uint8
	isOff bool
}

// Notes pairs note on and off messages from every track into notes,
// ordered by start. A note on with velocity 0 counts as an off.
func Notes(s *smf.SMF) ([]note.Note, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrTimeFormat
	}
	whole := int64(mt.Resolution()) * 4

	var events []keyEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, keyEvent{tick: absTicks, key: key, isOff: velocity == 0})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, keyEvent{tick: absTicks, key: key, isOff: true})
			}
		}
	}

	// offs first so a repeated key can start where the last one stopped
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isOff && !events[j].isOff
	})

	type started struct {
		tick  int64
		index int
	}
	var (
		notes    []note.Note
		released []bool
		pressed  = make(map[uint8]started)
	)
	for _, evt := range events {
		if !evt.isOff {
			pressed[evt.key] = started{tick: evt.tick, index: len(notes)}
			notes = append(notes, note.Note{})
			released = append(released, false)
			continue
		}
		on, ok := pressed[evt.key]
		if !ok {
			continue
		}
		delete(pressed, evt.key)
		d, err := note.NewDuration(int(evt.tick-on.tick), int(whole))
		if err != nil {
			return nil, err
		}
		notes[on.index] = note.FromValue(int(evt.key)-12, d)
		released[on.index] = true
	}

	// notes never released are dropped
	res := make([]note.Note, 0, len(notes))
	for i, n := range notes {
		if released[i] {
			res = append(res, n)
		}
	}
	return res, nil
}

// ReadNotes reads a Standard MIDI File and returns its notes.
func ReadNotes(r io.Reader) ([]note.Note, error) {
	s, err := Read(r)
	if err != nil {
		return nil, err
	}
	return Notes(s)
}
