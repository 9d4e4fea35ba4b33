package events

// Event is a notification published to a pub/sub topic. Key selects the topic
// partition, so events sharing a key are delivered in publish order.
type Event interface {
	Key() string
}
