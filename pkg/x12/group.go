// =============================================================================
// X12 EDI Parser - Functional Groups
// =============================================================================
//
// A functional group is opened by GS and closed by GE. Everything in between
// is handed to the group's transaction assembler.
//
//   GS*PO*SENDERGS*007326879*20020226*1534*1*X*004010~
//      |  |        |         |        |    | | +- GS08 version
//      |  |        |         |        |    | +--- GS07 responsible agency
//      |  |        |         |        |    +----- GS06 control number
//      |  |        |         |        +---------- GS05 time
//      |  |        |         +------------------- GS04 date
//      |  |        +----------------------------- GS03 application receiver
//      |  +-------------------------------------- GS02 application sender
//      +----------------------------------------- GS01 functional identifier
//
// =============================================================================

package x12

// Envelope marker abbreviations.
const (
	GroupStart = "GS"
	GroupEnd   = "GE"
)

// groupHeaderElements is the number of GS elements needed to reach GS06.
const groupHeaderElements = 6

// FunctionalGroup groups transaction sets of one functional type.
type FunctionalGroup struct {
	FunctionalIdentifierCode string // GS01
	ApplicationSenderCode    string // GS02
	ApplicationReceiverCode  string // GS03
	Date                     string // GS04
	Time                     string // GS05
	ControlNumber            string // GS06
	ResponsibleAgencyCode    string // GS07
	Version                  string // GS08

	// Transactions holds the group's transaction sets in arrival order.
	Transactions []Transaction

	// Trailer holds GE01 and GE02.
	Trailer Trailer
}

// groupAssembler folds GS ... GE into FunctionalGroups.
type groupAssembler struct {
	state        assemblerState
	current      FunctionalGroup
	transactions transactionAssembler
}

func newGroupAssembler(names NameLookup) groupAssembler {
	return groupAssembler{transactions: newTransactionAssembler(names)}
}

func (a *groupAssembler) isOpen() bool {
	return a.state == open
}

// start handles a GS segment.
func (a *groupAssembler) start(tokens SegmentTokens) error {
	if a.state == open {
		return newParseError(ErrStructural, LevelFunctionalGroup, tokens,
			"functional group %s opened while group %s is still open",
			tokenAt(tokens, 6), a.current.ControlNumber)
	}
	if len(tokens) < groupHeaderElements+1 {
		return newParseError(ErrMalformedSegment, LevelFunctionalGroup, tokens,
			"GS segment requires %d elements, got %d", groupHeaderElements, len(tokens)-1)
	}

	a.current = FunctionalGroup{
		FunctionalIdentifierCode: tokens[1],
		ApplicationSenderCode:    tokens[2],
		ApplicationReceiverCode:  tokens[3],
		Date:                     tokens[4],
		Time:                     tokens[5],
		ControlNumber:            tokens[6],
		ResponsibleAgencyCode:    tokenAt(tokens, 7),
		Version:                  tokenAt(tokens, 8),
		Transactions:             []Transaction{},
	}
	a.state = open
	return nil
}

// route passes a segment inside the group to the transaction assembler.
func (a *groupAssembler) route(kind segmentKind, tokens SegmentTokens) error {
	if a.state != open {
		return newParseError(ErrStructural, LevelFunctionalGroup, tokens,
			"segment appears outside of a functional group")
	}

	switch kind {
	case kindTransactionStart:
		return a.transactions.start(tokens)
	case kindTransactionEnd:
		transaction, err := a.transactions.end(tokens)
		if err != nil {
			return err
		}
		a.current.Transactions = append(a.current.Transactions, transaction)
		return nil
	default:
		return a.transactions.add(tokens)
	}
}

// end handles a GE segment and returns the finished group.
func (a *groupAssembler) end(tokens SegmentTokens) (FunctionalGroup, error) {
	if a.state != open {
		return FunctionalGroup{}, newParseError(ErrStructural, LevelFunctionalGroup, tokens,
			"GE segment without an open functional group")
	}
	if a.transactions.isOpen() {
		return FunctionalGroup{}, newParseError(ErrStructural, LevelTransaction, tokens,
			"functional group %s closed while transaction %s is still open",
			a.current.ControlNumber, a.transactions.current.ControlNumber)
	}

	finished := a.current
	finished.Trailer = Trailer{
		Count:         tokenAt(tokens, 1),
		ControlNumber: tokenAt(tokens, 2),
	}
	a.current = FunctionalGroup{}
	a.state = awaitingStart
	return finished, nil
}
