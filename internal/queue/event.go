// Package queue defines message payloads exchanged over the broker and the
// background consumer that turns them into a notification trail.
package queue

// FeedbackCreatedEvent is published when a villager files a complaint. The
// consumer uses it to build the notification line; fields mirror the
// feedback row plus enough context to act on without another lookup.
type FeedbackCreatedEvent struct {
	FeedbackID  uint64 `json:"feedback_id"`
	HouseNo     uint64 `json:"house_no"`
	OperatorID  uint64 `json:"pump_operator_id"`
	Description string `json:"description"`
	IssuedAt    string `json:"issued_at"`
}
