package rabbitmq_test

import (
	"testing"

	"logistics/internal/adapters/out/rabbitmq"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingKeyForLeg(t *testing.T) {
	cases := []struct {
		leg order.Leg
		key string
	}{
		{order.CMS, "cms.routing.key"},
		{order.WMS, "wms.routing.key"},
		{order.ROS, "ros.routing.key"},
	}

	for _, tc := range cases {
		key, err := rabbitmq.RoutingKeyForLeg(tc.leg)
		require.NoError(t, err)
		assert.Equal(t, tc.key, key)
	}

	_, err := rabbitmq.RoutingKeyForLeg(order.UnknownLeg)
	require.Error(t, err)
}

func TestConfirmationQueueForLeg(t *testing.T) {
	cases := []struct {
		leg   order.Leg
		queue string
	}{
		{order.CMS, "cms-confirmation"},
		{order.WMS, "wms-confirmation"},
		{order.ROS, "ros-confirmation"},
	}

	for _, tc := range cases {
		queue, err := rabbitmq.ConfirmationQueueForLeg(tc.leg)
		require.NoError(t, err)
		assert.Equal(t, tc.queue, queue)
	}

	_, err := rabbitmq.ConfirmationQueueForLeg(order.UnknownLeg)
	require.Error(t, err)
}
