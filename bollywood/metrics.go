package bollywood

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	dropReasonStopping = "stopping"
	dropReasonNotFound = "not_found"
	dropReasonFull     = "mailbox_full"
	dropReasonClosed   = "mailbox_closed"
)

var (
	actorsSpawned = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "bollywood_actors_spawned_total",
		Help: "The total number of actors spawned",
	})

	actorsStopped = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "bollywood_actors_stopped_total",
		Help: "The total number of actors whose goroutine exited",
	})

	messagesDelivered = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "bollywood_messages_delivered_total",
		Help: "The total number of messages enqueued into a mailbox",
	})

	messagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "bollywood_messages_dropped_total",
		Help: "The total number of messages dropped before reaching a mailbox",
	}, []string{"reason"})

	actorPanics = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "bollywood_actor_panics_total",
		Help: "The total number of panics recovered while an actor handled a message",
	})
)
