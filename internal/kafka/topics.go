package kafka

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/zherujiang/spotlight/internal/logger"
)

// Booking event types.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ArtistDeleted = "artist.deleted"
	ShowCreated   = "show.created"
)

// EventTypes lists every event type the service publishes.
var EventTypes = []string{
	VenueCreated, VenueUpdated, VenueDeleted,
	ArtistCreated, ArtistUpdated, ArtistDeleted,
	ShowCreated,
}

// TopicName joins prefix and event type, e.g. "spotlight.show.created".
func TopicName(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

// EnsureTopicsExist creates Kafka topics if they don't already exist
func EnsureTopicsExist(brokers []string, topics []string, log *logger.Logger) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	// Connect to the first broker to find the controller
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	var failed []string
	for _, topic := range topics {
		err = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		switch {
		case err == nil:
			log.LogKafka("CREATE", topic, "topic created")
		case errors.Is(err, kafka.TopicAlreadyExists):
			log.LogKafka("CREATE", topic, "topic already exists")
		default:
			// keep going; one bad topic should not block the others
			log.Warn("KAFKA", fmt.Sprintf("Error creating topic %s: %v", topic, err))
			failed = append(failed, topic)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to create topics %v", failed)
	}
	return nil
}
