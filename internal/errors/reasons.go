package errors

// Reason narrows a Code down to the domain condition that produced it
type Reason string

// Domain reasons
const (
	ReasonInvalidClass     Reason = "INVALID_CLASS"
	ReasonEmptyName        Reason = "EMPTY_NAME"
	ReasonDuplicateName    Reason = "DUPLICATE_NAME"
	ReasonConnection       Reason = "CONNECTION_ERROR"
	ReasonIntegrity        Reason = "INTEGRITY_ERROR"
	ReasonStorage          Reason = "STORAGE_ERROR"
	ReasonOnCooldown       Reason = "ON_COOLDOWN"
	ReasonInsufficientMana Reason = "INSUFFICIENT_MANA"
	ReasonIndexOutOfRange  Reason = "INDEX_OUT_OF_RANGE"
	ReasonNotYourTurn      Reason = "NOT_YOUR_TURN"
	ReasonEncounterOver    Reason = "ENCOUNTER_OVER"
	ReasonNotInCombat      Reason = "NOT_IN_COMBAT"
	ReasonDuplicateTitle   Reason = "DUPLICATE_TITLE"
	ReasonQuestNotFound    Reason = "QUEST_NOT_FOUND"
	ReasonAlreadyComplete  Reason = "ALREADY_COMPLETE"
	ReasonEmptyQueue       Reason = "EMPTY_QUEUE"
	ReasonWrongPhase       Reason = "WRONG_PHASE"
	ReasonNoPotion         Reason = "NO_POTION"
)

// Sentinels for errors.Is checks. Each matches any *Error with the same
// code and reason regardless of message.
var (
	ErrInvalidClass     = New(CodeInvalidArgument, "invalid class").WithReason(ReasonInvalidClass)
	ErrEmptyName        = New(CodeInvalidArgument, "name is required").WithReason(ReasonEmptyName)
	ErrDuplicateName    = New(CodeAlreadyExists, "duplicate name").WithReason(ReasonDuplicateName)
	ErrConnection       = New(CodeUnavailable, "storage unreachable").WithReason(ReasonConnection)
	ErrIntegrity        = New(CodeAborted, "integrity violation").WithReason(ReasonIntegrity)
	ErrStorage          = New(CodeInternal, "storage failure").WithReason(ReasonStorage)
	ErrOnCooldown       = New(CodeFailedPrecondition, "ability on cooldown").WithReason(ReasonOnCooldown)
	ErrInsufficientMana = New(CodeFailedPrecondition, "insufficient mana").WithReason(ReasonInsufficientMana)
	ErrIndexOutOfRange  = New(CodeOutOfRange, "index out of range").WithReason(ReasonIndexOutOfRange)
	ErrNotYourTurn      = New(CodeFailedPrecondition, "not your turn").WithReason(ReasonNotYourTurn)
	ErrEncounterOver    = New(CodeFailedPrecondition, "encounter is over").WithReason(ReasonEncounterOver)
	ErrNotInCombat      = New(CodeFailedPrecondition, "not in combat").WithReason(ReasonNotInCombat)
	ErrDuplicateTitle   = New(CodeAlreadyExists, "duplicate quest title").WithReason(ReasonDuplicateTitle)
	ErrQuestNotFound    = New(CodeNotFound, "quest not found").WithReason(ReasonQuestNotFound)
	ErrAlreadyComplete  = New(CodeFailedPrecondition, "quest already complete").WithReason(ReasonAlreadyComplete)
	ErrEmptyQueue       = New(CodeFailedPrecondition, "dialogue queue is empty").WithReason(ReasonEmptyQueue)
	ErrWrongPhase       = New(CodeFailedPrecondition, "wrong phase").WithReason(ReasonWrongPhase)
	ErrNoPotion         = New(CodeFailedPrecondition, "no potion left").WithReason(ReasonNoPotion)
)
