package mqtt

import "fmt"

// Topic prefixes for the Woods MQTT hierarchy.
const (
	// TopicPrefix is the root of every Woods topic.
	TopicPrefix = "woods"

	// TopicPrefixConfig is the base for configuration loader topics.
	TopicPrefixConfig = "woods/config"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "woods/system"
)

// Topics provides builders for Woods MQTT topics.
//
//	topic := mqtt.Topics{}.ComponentStatus("camera")
//	// Returns: "woods/config/camera/status"
type Topics struct{}

// ComponentStatus returns the retained status topic for one component.
//
// Example: woods/config/camera/status
func (Topics) ComponentStatus(component string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixConfig, component)
}

// Summary returns the retained topic carrying the last load pass summary.
//
// Example: woods/config/summary
func (Topics) Summary() string {
	return TopicPrefixConfig + "/summary"
}

// Request returns the topic on which status requests are received.
//
// Example: woods/config/request
func (Topics) Request() string {
	return TopicPrefixConfig + "/request"
}

// SystemStatus returns the service online/offline topic.
//
// Example: woods/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// AllComponentStatus returns a pattern matching every component status topic.
//
// Pattern: woods/config/+/status
func (Topics) AllComponentStatus() string {
	return TopicPrefixConfig + "/+/status"
}

// AllTopics returns a pattern matching all Woods topics.
//
// Pattern: woods/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
