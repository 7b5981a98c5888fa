// =============================================================================
// X12 EDI Parser - Interchanges
// =============================================================================

package x12

// Envelope marker abbreviations.
const (
	InterchangeStart = "ISA"
	InterchangeEnd   = "IEA"
)

// interchangeHeaderElements is the number of ISA elements needed to reach
// ISA13, the interchange control number.
const interchangeHeaderElements = 13

// Interchange is one transmission between two trading partners, bounded by
// ISA and IEA. Fixed-width ISA fields are trimmed.
type Interchange struct {
	AuthorizationQualifier   string // ISA01
	AuthorizationInformation string // ISA02
	SecurityQualifier        string // ISA03
	SecurityInformation      string // ISA04
	SenderQualifier          string // ISA05
	SenderID                 string // ISA06
	ReceiverQualifier        string // ISA07
	ReceiverID               string // ISA08
	Date                     string // ISA09
	Time                     string // ISA10
	RepetitionSeparator      string // ISA11 (standards identifier before 4020)
	Version                  string // ISA12
	ControlNumber            string // ISA13
	AcknowledgmentRequested  string // ISA14
	UsageIndicator           string // ISA15

	// FunctionalGroups holds the interchange's groups in arrival order.
	FunctionalGroups []FunctionalGroup

	// Trailer holds IEA01 and IEA02.
	Trailer Trailer
}

// interchangeAssembler folds ISA ... IEA into Interchanges.
type interchangeAssembler struct {
	state   assemblerState
	current Interchange
	groups  groupAssembler
}

func newInterchangeAssembler(names NameLookup) interchangeAssembler {
	return interchangeAssembler{groups: newGroupAssembler(names)}
}

func (a *interchangeAssembler) isOpen() bool {
	return a.state == open
}

// start handles an ISA segment.
func (a *interchangeAssembler) start(tokens SegmentTokens) error {
	if a.state == open {
		return newParseError(ErrStructural, LevelInterchange, tokens,
			"interchange %s opened while interchange %s is still open",
			tokenAt(tokens, 13), a.current.ControlNumber)
	}
	if len(tokens) < interchangeHeaderElements+1 {
		return newParseError(ErrMalformedSegment, LevelInterchange, tokens,
			"ISA segment requires %d elements, got %d", interchangeHeaderElements, len(tokens)-1)
	}

	a.current = Interchange{
		AuthorizationQualifier:   tokens[1],
		AuthorizationInformation: tokens[2],
		SecurityQualifier:        tokens[3],
		SecurityInformation:      tokens[4],
		SenderQualifier:          tokens[5],
		SenderID:                 tokens[6],
		ReceiverQualifier:        tokens[7],
		ReceiverID:               tokens[8],
		Date:                     tokens[9],
		Time:                     tokens[10],
		RepetitionSeparator:      tokens[11],
		Version:                  tokens[12],
		ControlNumber:            tokens[13],
		AcknowledgmentRequested:  tokenAt(tokens, 14),
		UsageIndicator:           tokenAt(tokens, 15),
		FunctionalGroups:         []FunctionalGroup{},
	}
	a.state = open
	return nil
}

// route passes a segment inside the interchange to the group assembler.
func (a *interchangeAssembler) route(kind segmentKind, tokens SegmentTokens) error {
	if a.state != open {
		return newParseError(ErrStructural, LevelInterchange, tokens,
			"segment appears outside of an interchange")
	}

	switch kind {
	case kindGroupStart:
		return a.groups.start(tokens)
	case kindGroupEnd:
		group, err := a.groups.end(tokens)
		if err != nil {
			return err
		}
		a.current.FunctionalGroups = append(a.current.FunctionalGroups, group)
		return nil
	default:
		return a.groups.route(kind, tokens)
	}
}

// end handles an IEA segment and returns the finished interchange.
func (a *interchangeAssembler) end(tokens SegmentTokens) (Interchange, error) {
	if a.state != open {
		return Interchange{}, newParseError(ErrStructural, LevelInterchange, tokens,
			"IEA segment without an open interchange")
	}
	if a.groups.isOpen() {
		return Interchange{}, newParseError(ErrStructural, LevelFunctionalGroup, tokens,
			"interchange %s closed while functional group %s is still open",
			a.current.ControlNumber, a.groups.current.ControlNumber)
	}

	finished := a.current
	finished.Trailer = Trailer{
		Count:         tokenAt(tokens, 1),
		ControlNumber: tokenAt(tokens, 2),
	}
	a.current = Interchange{}
	a.state = awaitingStart
	return finished, nil
}

// openLevel returns the innermost envelope level that is still open, or
// LevelNone when every assembler is awaiting a start segment.
func (a *interchangeAssembler) openLevel() Level {
	switch {
	case a.groups.transactions.isOpen():
		return LevelTransaction
	case a.groups.isOpen():
		return LevelFunctionalGroup
	case a.isOpen():
		return LevelInterchange
	default:
		return LevelNone
	}
}
