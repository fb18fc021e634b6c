package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each one is published after the session that produced
// it was saved successfully.
const (
	// Session events
	EventSessionStarted EventType = "session.started"

	// Quiz events
	EventQuizCompleted EventType = "quiz.completed"

	// Progress events
	EventModuleCompleted   EventType = "progress.module_completed"
	EventScenarioCompleted EventType = "progress.scenario_completed"
	EventBadgeUnlocked     EventType = "progress.badge_unlocked"
	EventProgressReset     EventType = "progress.reset"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Session & Quiz Events
// ═══════════════════════════════════════════════════════════════════════════

// SessionStartedEvent is emitted when a new session is created.
type SessionStartedEvent struct {
	BaseEvent
	Mode string `json:"mode"`
}

// Payload implements Event interface.
func (e SessionStartedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"mode": e.Mode,
	}
}

// NewSessionStartedEvent creates a new SessionStartedEvent.
func NewSessionStartedEvent(sessionID, mode string) SessionStartedEvent {
	return SessionStartedEvent{
		BaseEvent: NewBaseEvent(EventSessionStarted, sessionID),
		Mode:      mode,
	}
}

// QuizCompletedEvent is emitted once per quiz run, when the answers seed progress.
type QuizCompletedEvent struct {
	BaseEvent
	AgeBracket  string `json:"age_bracket"`
	Goal        string `json:"goal"`
	HealthScore int    `json:"health_score"`
	Emotion     string `json:"emotion,omitempty"`
}

// Payload implements Event interface.
func (e QuizCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"age_bracket":  e.AgeBracket,
		"goal":         e.Goal,
		"health_score": e.HealthScore,
		"emotion":      e.Emotion,
	}
}

// NewQuizCompletedEvent creates a new QuizCompletedEvent.
func NewQuizCompletedEvent(sessionID, ageBracket, goal string, score int, emotion string) QuizCompletedEvent {
	return QuizCompletedEvent{
		BaseEvent:   NewBaseEvent(EventQuizCompleted, sessionID),
		AgeBracket:  ageBracket,
		Goal:        goal,
		HealthScore: score,
		Emotion:     emotion,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// ActivityCompletedEvent is emitted when a module or scenario is completed
// for the first time in a session.
type ActivityCompletedEvent struct {
	BaseEvent
	ActivityID  string `json:"activity_id"`
	ScoreBefore int    `json:"score_before"`
	ScoreAfter  int    `json:"score_after"`
	Completed   int    `json:"completed"`
}

// Payload implements Event interface.
func (e ActivityCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"activity_id":  e.ActivityID,
		"score_before": e.ScoreBefore,
		"score_after":  e.ScoreAfter,
		"completed":    e.Completed,
	}
}

// ScoreDelta returns how much the health score moved.
func (e ActivityCompletedEvent) ScoreDelta() int {
	return e.ScoreAfter - e.ScoreBefore
}

// NewModuleCompletedEvent creates an ActivityCompletedEvent for a module.
func NewModuleCompletedEvent(sessionID, moduleID string, before, after, completed int) ActivityCompletedEvent {
	return ActivityCompletedEvent{
		BaseEvent:   NewBaseEvent(EventModuleCompleted, sessionID),
		ActivityID:  moduleID,
		ScoreBefore: before,
		ScoreAfter:  after,
		Completed:   completed,
	}
}

// NewScenarioCompletedEvent creates an ActivityCompletedEvent for a scenario.
func NewScenarioCompletedEvent(sessionID, scenarioID string, before, after, completed int) ActivityCompletedEvent {
	return ActivityCompletedEvent{
		BaseEvent:   NewBaseEvent(EventScenarioCompleted, sessionID),
		ActivityID:  scenarioID,
		ScoreBefore: before,
		ScoreAfter:  after,
		Completed:   completed,
	}
}

// BadgeUnlockedEvent is emitted for every badge that appears in progress.
type BadgeUnlockedEvent struct {
	BaseEvent
	Badge string `json:"badge"`
	// Trigger is the activity (or "quiz") that caused the unlock.
	Trigger string `json:"trigger"`
}

// Payload implements Event interface.
func (e BadgeUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"badge":   e.Badge,
		"trigger": e.Trigger,
	}
}

// NewBadgeUnlockedEvent creates a new BadgeUnlockedEvent.
func NewBadgeUnlockedEvent(sessionID, badge, trigger string) BadgeUnlockedEvent {
	return BadgeUnlockedEvent{
		BaseEvent: NewBaseEvent(EventBadgeUnlocked, sessionID),
		Badge:     badge,
		Trigger:   trigger,
	}
}

// ProgressResetEvent is emitted when a session retakes the quiz.
type ProgressResetEvent struct {
	BaseEvent
	PreviousScore  int `json:"previous_score"`
	PreviousBadges int `json:"previous_badges"`
}

// Payload implements Event interface.
func (e ProgressResetEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"previous_score":  e.PreviousScore,
		"previous_badges": e.PreviousBadges,
	}
}

// NewProgressResetEvent creates a new ProgressResetEvent.
func NewProgressResetEvent(sessionID string, previousScore, previousBadges int) ProgressResetEvent {
	return ProgressResetEvent{
		BaseEvent:      NewBaseEvent(EventProgressReset, sessionID),
		PreviousScore:  previousScore,
		PreviousBadges: previousBadges,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope (for serialization and transport)
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for transport.
type EventEnvelope struct {
	ID          string          `json:"id"`
	InstanceID  string          `json:"instance_id"`
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
}

// IsRemote reports whether the event was received from another instance
// through a distributed bus rather than published locally.
func IsRemote(e Event) bool {
	r, ok := e.(interface{ Remote() bool })
	return ok && r.Remote()
}
