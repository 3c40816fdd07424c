package apperrors

// LedgerCode identifies a ledger engine failure.
type LedgerCode string

const (
	CodeEntryNotFound     LedgerCode = "ENTRY_NOT_FOUND"
	CodeAccountNotFound   LedgerCode = "ACCOUNT_NOT_FOUND"
	CodeAlreadyPosted     LedgerCode = "ALREADY_POSTED"
	CodeAlreadyVoided     LedgerCode = "ALREADY_VOIDED"
	CodeCannotVoidDraft   LedgerCode = "CANNOT_VOID_DRAFT"
	CodeInvalidTransition LedgerCode = "INVALID_TRANSITION"
	CodeUnbalanced        LedgerCode = "UNBALANCED"
)

// LedgerError is a deterministic, caller-recoverable ledger failure.
// It unwraps to its category (ErrNotFound, ErrConflict or ErrValidation)
// so callers can match either the specific error or the category.
type LedgerError struct {
	Code    LedgerCode
	Kind    error
	Message string
}

func (e *LedgerError) Error() string {
	return e.Message
}

func (e *LedgerError) Unwrap() error {
	return e.Kind
}

// Is matches any LedgerError carrying the same code, so wrapped copies
// with extra detail still satisfy errors.Is against the sentinels below.
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of e whose message carries detail.
func (e *LedgerError) WithDetail(detail string) *LedgerError {
	return &LedgerError{Code: e.Code, Kind: e.Kind, Message: e.Message + ": " + detail}
}

var (
	ErrEntryNotFound     = &LedgerError{Code: CodeEntryNotFound, Kind: ErrNotFound, Message: "journal entry not found"}
	ErrAccountNotFound   = &LedgerError{Code: CodeAccountNotFound, Kind: ErrNotFound, Message: "account not found"}
	ErrAlreadyPosted     = &LedgerError{Code: CodeAlreadyPosted, Kind: ErrConflict, Message: "journal entry already posted"}
	ErrAlreadyVoided     = &LedgerError{Code: CodeAlreadyVoided, Kind: ErrConflict, Message: "journal entry already voided"}
	ErrCannotVoidDraft   = &LedgerError{Code: CodeCannotVoidDraft, Kind: ErrConflict, Message: "cannot void a draft journal entry"}
	ErrInvalidTransition = &LedgerError{Code: CodeInvalidTransition, Kind: ErrConflict, Message: "cannot post a voided journal entry"}
	ErrUnbalanced        = &LedgerError{Code: CodeUnbalanced, Kind: ErrValidation, Message: "journal entry is not balanced"}
)
