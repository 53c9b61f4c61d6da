package game

// Phase is the server-announced hand phase. There are no derived
// transitions: the phase only changes when a state packet names one.
type Phase int

const (
	PhaseNull Phase = iota
	PhaseBlindAnte
	PhasePreFlop
	PhaseFlop
	PhaseThird
	PhaseTurn
	PhaseFourth
	PhaseRiver
	PhaseFifth
	PhaseMuck
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseNull:      "null",
	PhaseBlindAnte: "blindAnte",
	PhasePreFlop:   "pre-flop",
	PhaseFlop:      "flop",
	PhaseThird:     "third",
	PhaseTurn:      "turn",
	PhaseFourth:    "fourth",
	PhaseRiver:     "river",
	PhaseFifth:     "fifth",
	PhaseMuck:      "muck",
	PhaseEnd:       "end",
}

// String returns the wire name of the phase.
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// PhaseFromString maps a wire name to a Phase. Unrecognized names map
// to PhaseNull.
func PhaseFromString(s string) Phase {
	for p, name := range phaseNames {
		if name == s {
			return p
		}
	}
	return PhaseNull
}
