// =============================================================================
// X12 EDI Parser - Transactions
// =============================================================================
//
// A transaction set is opened by an ST segment and closed by an SE segment:
//
//   ST*850*000000001~      <- open: code 850, control number 000000001
//   BEG*00*SA*A99999-01~   <- generic segments, kept in arrival order
//   ...
//   SE*35*000000001~       <- close: trailer captured verbatim
//
// The transaction name is resolved through an injected NameLookup; unknown
// codes resolve to "unidentified".
//
// =============================================================================

package x12

// UnidentifiedTransaction is the name given to transaction codes that the
// lookup does not know.
const UnidentifiedTransaction = "unidentified"

// Envelope marker abbreviations.
const (
	TransactionStart = "ST"
	TransactionEnd   = "SE"
)

// =============================================================================
// NAME LOOKUP
// =============================================================================

// NameLookup maps transaction set codes (e.g. "850") to display names
// (e.g. "Purchase Order"). Lookups are exact-match; a miss is not an error.
type NameLookup interface {
	Name(code string) (string, bool)
}

// MapLookup adapts a plain map to NameLookup.
type MapLookup map[string]string

// Name implements NameLookup.
func (m MapLookup) Name(code string) (string, bool) {
	name, ok := m[code]
	return name, ok
}

// resolveName returns the display name for code, or UnidentifiedTransaction.
func resolveName(names NameLookup, code string) string {
	if names == nil {
		return UnidentifiedTransaction
	}
	if name, ok := names.Name(code); ok {
		return name
	}
	return UnidentifiedTransaction
}

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// Trailer holds the values declared by a closing envelope segment (SE, GE or
// IEA). They are recorded as-is and never cross-checked by the parser.
type Trailer struct {
	// Count is the declared count: segments for SE, transactions for GE,
	// functional groups for IEA.
	Count string

	// ControlNumber is the declared control number.
	ControlNumber string
}

// Transaction is one transaction set.
type Transaction struct {
	// Code is the transaction set identifier code (ST01).
	Code string

	// Name is the display name resolved from Code.
	Name string

	// ControlNumber is the transaction set control number (ST02).
	ControlNumber string

	// ImplementationConventionReference is ST03, empty when absent.
	ImplementationConventionReference string

	// Segments holds every non-envelope segment between ST and SE.
	Segments []GenericSegment

	// Trailer holds SE01 and SE02.
	Trailer Trailer
}

// =============================================================================
// TRANSACTION ASSEMBLER
// =============================================================================

type assemblerState int

const (
	awaitingStart assemblerState = iota
	open
)

// transactionAssembler folds ST, generic and SE segments into Transactions.
type transactionAssembler struct {
	names   NameLookup
	state   assemblerState
	current Transaction
}

func newTransactionAssembler(names NameLookup) transactionAssembler {
	return transactionAssembler{names: names}
}

func (a *transactionAssembler) isOpen() bool {
	return a.state == open
}

// start handles an ST segment.
func (a *transactionAssembler) start(tokens SegmentTokens) error {
	if a.state == open {
		return newParseError(ErrStructural, LevelTransaction, tokens,
			"transaction %s opened while transaction %s is still open",
			tokenAt(tokens, 2), a.current.ControlNumber)
	}
	if len(tokens) < 3 {
		return newParseError(ErrMalformedTransactionStart, LevelTransaction, tokens,
			"ST segment requires a code and a control number, got %d tokens", len(tokens))
	}

	code := tokens[1]
	a.current = Transaction{
		Code:                              code,
		Name:                              resolveName(a.names, code),
		ControlNumber:                     tokens[2],
		ImplementationConventionReference: tokenAt(tokens, 3),
		Segments:                          []GenericSegment{},
	}
	a.state = open
	return nil
}

// add appends a generic segment to the open transaction.
func (a *transactionAssembler) add(tokens SegmentTokens) error {
	if a.state != open {
		return newParseError(ErrStructural, LevelTransaction, tokens,
			"segment appears outside of a transaction")
	}
	segment, err := ParseSegment(tokens)
	if err != nil {
		return err
	}
	a.current.Segments = append(a.current.Segments, segment)
	return nil
}

// end handles an SE segment and returns the finished transaction.
func (a *transactionAssembler) end(tokens SegmentTokens) (Transaction, error) {
	if a.state != open {
		return Transaction{}, newParseError(ErrStructural, LevelTransaction, tokens,
			"SE segment without an open transaction")
	}

	finished := a.current
	finished.Trailer = Trailer{
		Count:         tokenAt(tokens, 1),
		ControlNumber: tokenAt(tokens, 2),
	}
	a.current = Transaction{}
	a.state = awaitingStart
	return finished, nil
}
