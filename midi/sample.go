package midi

import "gitlab.com/gomidi/midi/v2/smf"

// Sample copies s from ticksOffset on, keeping at most maxNotes notes per
// track. Other messages up to the offset are moved to its start so tempo
// and meter still apply.
func Sample(s *smf.SMF, ticksOffset uint64, maxNotes int) *smf.SMF {
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		var (
			newTrack   smf.Track
			absTicks   uint64
			lastTicks  = ticksOffset
			numNoteOns int
			open       = make(map[uint8]bool)
		)
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			key, isOn, isNote := noteKey(evt.Message)
			switch {
			case isNote && isOn:
				if absTicks < ticksOffset {
					continue
				}
				if numNoteOns >= maxNotes {
					if len(open) == 0 {
						break TrackEventLoop
					}
					continue
				}
				newTrack.Add(uint32(absTicks-lastTicks), evt.Message)
				lastTicks = absTicks
				open[key] = true
				numNoteOns++
			case isNote:
				if !open[key] {
					continue
				}
				newTrack.Add(uint32(absTicks-lastTicks), evt.Message)
				lastTicks = absTicks
				delete(open, key)
				if numNoteOns >= maxNotes && len(open) == 0 {
					break TrackEventLoop
				}
			case isEndOfTrack(evt.Message):
			case absTicks <= ticksOffset:
				newTrack.Add(0, evt.Message)
			}
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}
	return res
}

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

func noteKey(msg smf.Message) (key uint8, isOn, ok bool) {
	var channel, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return key, velocity > 0, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return key, false, true
	}
	return 0, false, false
}
